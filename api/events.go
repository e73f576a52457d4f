package api

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleEvents streams a storage.ChangeSet as JSON for every write made through the
// notifier, so other open views know to re-read. Client frames are ignored.
func (h *handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WS upgrade error: %v", err)
		return
	}
	defer conn.Close()

	id, changes := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(id)

	// Reader goroutine: only there to notice the client going away.
	connDone := make(chan struct{})
	go func() {
		defer close(connDone)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case cs, ok := <-changes:
			if !ok {
				return
			}
			if err := conn.WriteJSON(cs); err != nil {
				log.Printf("WS write error: %v", err)
				return
			}
		case <-connDone:
			return
		}
	}
}
