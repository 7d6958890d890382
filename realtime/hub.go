package realtime

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/code-with-geo/POSServer/config"
	"github.com/code-with-geo/POSServer/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is already CORS-open; the websocket endpoint follows suit.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub relays domain events to every connected websocket client. Events arrive
// on the Redis topics written by utils.Broadcast, so a multi-instance
// deployment fans out from whichever instance performed the mutation.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]bool)}
}

// Run subscribes to every entity topic and broadcasts each message to all
// clients until ctx is cancelled. Without Redis the hub still accepts
// connections but has nothing to relay.
func (h *Hub) Run(ctx context.Context) {
	if config.RedisClient == nil {
		return
	}
	sub := config.RedisClient.PSubscribe(ctx, utils.ChannelPrefix+"*")
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			h.broadcast([]byte(msg.Payload))
		}
	}
}

func (h *Hub) broadcast(payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// Serve upgrades the request and keeps the connection registered until the
// client goes away. Inbound messages are discarded; the channel is push-only.
func (h *Hub) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
