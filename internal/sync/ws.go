package sync

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // OK for demo; restrict in production
	},
}

type wsWelcome struct {
	Type      string `json:"type"`
	Transport string `json:"transport"`
	Watchers  int    `json:"watchers"`
}

// WSHandler returns the gin route that upgrades a request and parks the
// watcher on the hub until it disconnects. Watchers only receive; anything
// they send is drained and dropped.
func (h *Hub) WSHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[ws] upgrade failed: %v", err)
			return
		}

		h.AddWS(ws)
		defer func() {
			h.RemoveWS(ws)
			log.Printf("[ws] watcher %s disconnected", ws.RemoteAddr())
		}()
		log.Printf("[ws] watcher %s connected", ws.RemoteAddr())

		stats := h.Stats()
		_ = ws.WriteJSON(wsWelcome{
			Type:      "welcome",
			Transport: "websocket",
			Watchers:  stats.WSClients,
		})

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}
}
