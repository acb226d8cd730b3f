package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"attendanceportal/internal/auth"
	"attendanceportal/internal/middleware"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins; rely on JWT auth.
		return true
	},
}

// ActivityHandler upgrades staff/admin dashboard connections onto the hub.
func ActivityHandler(hub *ActivityHub) gin.HandlerFunc {
	return func(c *gin.Context) {
		acct, ok := middleware.CurrentAccount(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if err := auth.AuthorizeStaffArea(auth.RoleOf(acct)); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		client := newActivityClient(hub, conn)
		hub.register <- client

		go client.writePump()
		client.readPump()
	}
}
