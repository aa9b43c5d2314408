package middleware

import (
	"net/http"
	"strings"

	"auracare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by JWTAuthMiddleware.
const (
	CtxUserID    = "userID"
	CtxRole      = "role"
	CtxEmail     = "email"
	CtxToken     = "token"
	CtxExpiresAt = "tokenExpiresAt"
)

// JWTAuthMiddleware validates the bearer token and rejects tokens revoked by logout.
// A Redis failure while checking revocation is logged and the token is accepted.
func JWTAuthMiddleware(jwtManager *utils.JWTManager, revoker *utils.TokenRevoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.AbortWithError(c, http.StatusUnauthorized, "Missing or invalid Authorization header")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			utils.AbortWithError(c, http.StatusUnauthorized, "Missing or invalid Authorization header")
			return
		}

		claims, err := jwtManager.ParseToken(tokenString)
		if err != nil {
			utils.AbortWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		revoked, err := revoker.IsRevoked(c.Request.Context(), utils.HashToken(tokenString))
		if err != nil {
			utils.GetLogger().Warn("token revocation check failed", zap.String("userID", claims.UserID), zap.Error(err))
		} else if revoked {
			utils.AbortWithError(c, http.StatusUnauthorized, "Token has been revoked")
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxToken, tokenString)
		c.Set(CtxExpiresAt, claims.ExpiresAt)
		c.Next()
	}
}
