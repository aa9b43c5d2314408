package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"auracare/middleware"
	"auracare/models"
	"auracare/services/apperr"
	"auracare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps service errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error envelope. Internal errors are logged and their
// details withheld from the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		getLogger(c).Error("request failed", zap.Error(err))
	}
	utils.JSONError(c, status, apperr.Message(err))
}

func respondOK(c *gin.Context, data any) {
	utils.JSONSuccess(c, http.StatusOK, data, "")
}

func respondCreated(c *gin.Context, data any, message string) {
	utils.JSONSuccess(c, http.StatusCreated, data, message)
}

// bindJSON decodes the body into dest and answers 400 on failure.
func bindJSON(c *gin.Context, dest any) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		getLogger(c).Debug("invalid request body", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return false
	}
	return true
}

// pageQuery reads ?page and ?limit. Bad values fall back to the defaults.
func pageQuery(c *gin.Context) models.PageQuery {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return models.PageQuery{Page: page, Limit: limit}.Normalize()
}

// queryTime parses an optional RFC 3339 or YYYY-MM-DD query parameter.
func queryTime(c *gin.Context, key string) (time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, apperr.Validation("%s must be RFC 3339 or YYYY-MM-DD", key)
	}
	return t, nil
}

func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserID)
}

func currentRole(c *gin.Context) string {
	return c.GetString(middleware.CtxRole)
}
