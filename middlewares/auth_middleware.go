package middlewares

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-management/services"
	"github.com/yeremiapane/restaurant-management/utils"
)

// Context keys set by the auth middlewares.
const (
	ContextUserID      = "user_id"
	ContextEmail       = "email"
	ContextToken       = "token"
	ContextTokenExpiry = "token_expiry"
)

// AuthMiddleware accepts "Authorization: Bearer <access token>" headers whose
// token has not been revoked.
func AuthMiddleware(blacklist services.TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Authorization header missing"))
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Invalid authorization format"))
			c.Abort()
			return
		}

		authenticate(c, strings.TrimPrefix(authHeader, "Bearer "), blacklist)
	}
}

func authenticate(c *gin.Context, tokenString string, blacklist services.TokenBlacklist) {
	claims, err := utils.ParseToken(tokenString, utils.TokenTypeAccess)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("Invalid or expired token"))
		c.Abort()
		return
	}

	if blacklist != nil {
		revoked, err := blacklist.IsRevoked(c.Request.Context(), tokenString)
		if err != nil {
			utils.ErrorLogger.WithError(err).Error("Failed to check token blacklist")
			utils.RespondError(c, http.StatusServiceUnavailable, errors.New("Unable to verify token"))
			c.Abort()
			return
		}
		if revoked {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Token has been revoked"))
			c.Abort()
			return
		}
	}

	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextEmail, claims.Email)
	c.Set(ContextToken, tokenString)
	if claims.ExpiresAt != nil {
		c.Set(ContextTokenExpiry, claims.ExpiresAt.Time)
	} else {
		c.Set(ContextTokenExpiry, time.Time{})
	}
	c.Next()
}
