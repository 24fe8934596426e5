package notify

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RegisterRoutes mounts the toast websocket stream. resolve picks the
// center for the request's session, so one session's toasts never show
// up on another session's page.
func RegisterRoutes(r chi.Router, resolve func(*http.Request) *Center) {
	r.Get("/ws/notifications", handleSocket(resolve))
}

func handleSocket(resolve func(*http.Request) *Center) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("notify: websocket upgrade: %v", err)
			return
		}
		defer conn.Close()

		c := resolve(r)
		id, toasts := c.Subscribe()
		defer c.Unsubscribe(id)

		// Read pump: drains client frames and signals disconnect.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
						log.Printf("notify: websocket read: %v", err)
					}
					return
				}
			}
		}()

		for {
			select {
			case t, ok := <-toasts:
				if !ok {
					return
				}
				if err := conn.WriteJSON(t); err != nil {
					log.Printf("notify: websocket write: %v", err)
					return
				}
			case <-done:
				return
			case <-r.Context().Done():
				return
			}
		}
	}
}
