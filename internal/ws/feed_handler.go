package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins; the admin key gate runs before the upgrade.
		return true
	},
}

func FeedHandler(hub *FeedHub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		client := &feedClient{hub: hub, conn: conn, send: make(chan []byte, sendBufferSize)}
		if !hub.add(client) {
			conn.Close()
			return
		}

		go client.writePump()
		client.readPump()
	}
}
