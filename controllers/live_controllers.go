package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/menuport/portal-app/live"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveHandler upgrades a staff dashboard connection and subscribes it
// to the portal's order events.
func LiveHandler(c *gin.Context) {
	roleInterface, exists := c.Get("role")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	role := roleInterface.(string)

	if role != "owner" && role != "cashier" && role != "kitchen" {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	portalID, err := strconv.Atoi(c.Param("portal_id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	live.RegisterClient(ws, uint(portalID), role)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	live.UnregisterClient(ws)
}
