package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Dashboard and API share the origin; cross-origin clients get the
		// same read-only summaries either way.
		return true
	},
}

// LiveHandler upgrades the connection and registers it with the hub. Clients
// only receive pushes; inbound messages are drained and ignored.
func LiveHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Hub == nil {
			respondError(w, http.StatusServiceUnavailable, "live updates are not available")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			d.Logger.Error("Websocket upgrade failed: %v", err)
			return
		}

		d.Hub.Register(conn)
		defer d.Hub.Unregister(conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
