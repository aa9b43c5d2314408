package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"auracare/services/forecast"
	"auracare/utils"

	"github.com/gin-gonic/gin"
)

type ForecastHandler struct {
	Service forecast.ForecastService
}

// SalonForecast handles GET /api/salon/forecast?horizon=.
func (h *ForecastHandler) SalonForecast(c *gin.Context) {
	horizon := 0
	if raw := c.Query("horizon"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "horizon must be a number")
			return
		}
		horizon = n
	}
	fc, err := h.Service.SalonForecast(c.Request.Context(), currentUserID(c), horizon)
	if err != nil {
		var upstream *forecast.UpstreamError
		if errors.As(err, &upstream) {
			utils.JSONError(c, http.StatusBadGateway, "Forecast service is unavailable")
			return
		}
		respondError(c, err)
		return
	}
	respondOK(c, fc)
}
