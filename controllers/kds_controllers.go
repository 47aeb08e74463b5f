package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-management/kds"
	"github.com/yeremiapane/restaurant-management/middlewares"
	"github.com/yeremiapane/restaurant-management/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// KDSHandler upgrades an authenticated request and streams entity events until the client disconnects.
func KDSHandler(hub *kds.Hub) gin.HandlerFunc {
	if hub == nil {
		hub = kds.Default()
	}
	return func(c *gin.Context) {
		userID := c.GetString(middlewares.ContextUserID)
		if userID == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			utils.ErrorLogger.WithError(err).Warn("websocket upgrade failed")
			return
		}

		hub.Register(ws, userID)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}
		hub.Unregister(ws)
	}
}
