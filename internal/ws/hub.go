// Package ws pushes completed-scan summaries to connected dashboard clients.
package ws

import (
	"sync"

	"github.com/gorilla/websocket"

	"infrawatch/internal/logger"
	"infrawatch/internal/metrics"
)

// Hub fans scan summaries out to every connected dashboard client.
type Hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.RWMutex
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

// NewHub creates a hub. Run must be started on its own goroutine.
func NewHub(log *logger.Logger, m *metrics.Metrics) *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		logger:     log,
		metrics:    m,
	}
}

// Run processes register/unregister/broadcast events until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.metrics.LiveClients.Set(float64(count))
			h.logger.Info("Dashboard client connected. Total: %d", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.metrics.LiveClients.Set(float64(count))
			h.logger.Info("Dashboard client disconnected. Total: %d", count)

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
					h.logger.Error("Failed to push scan summary: %v", err)
					delete(h.clients, client)
					client.Close()
				}
			}
			h.metrics.LiveClients.Set(float64(len(h.clients)))
			h.mu.Unlock()
		}
	}
}

// Register adds a client connection.
func (h *Hub) Register(client *websocket.Conn) {
	h.register <- client
}

// Unregister removes a client connection.
func (h *Hub) Unregister(client *websocket.Conn) {
	h.unregister <- client
}

// Broadcast queues a message for all clients. The send never blocks the scan
// path; if the queue is full the message is dropped.
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warning("Broadcast queue full, dropping scan summary")
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
