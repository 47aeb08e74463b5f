package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-management/services"
)

// WebSocketAuthMiddleware reads the access token from the "token" query
// parameter, since browsers cannot set headers on websocket upgrades.
func WebSocketAuthMiddleware(blacklist services.TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		authenticate(c, token, blacklist)
	}
}
