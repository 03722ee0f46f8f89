// Package hub fans refreshed trend generations out to connected
// WebSocket clients. It follows the register/unregister/broadcast
// channel pattern: one goroutine owns the client set transitions,
// slow clients get disconnected rather than blocking the rest.
package hub

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/XavierBriggs/vantage/internal/client"
	"github.com/XavierBriggs/vantage/pkg/models"
)

// Hub maintains the set of active clients and broadcasts refresh
// updates to them
type Hub struct {
	clients   map[*client.Client]bool
	clientsMu sync.RWMutex

	broadcast  chan models.RefreshUpdate
	register   chan *client.Client
	unregister chan *client.Client

	totalConnections int64
	totalMessages    int64
	metricsMu        sync.Mutex
}

func New() *Hub {
	return &Hub{
		clients:    make(map[*client.Client]bool),
		broadcast:  make(chan models.RefreshUpdate, 256),
		register:   make(chan *client.Client),
		unregister: make(chan *client.Client),
	}
}

// Run starts the hub's main loop; it returns when ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	log.Println("hub started")

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case c := <-h.register:
			h.registerClient(c)

		case c := <-h.unregister:
			h.unregisterClient(c)

		case update := <-h.broadcast:
			h.broadcastUpdate(update)
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(c *client.Client) {
	h.register <- c
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(c *client.Client) {
	h.unregister <- c
}

// Broadcast queues a refresh update for all matching clients. Drops the
// update when the hub is saturated; clients poll the API as a fallback.
func (h *Hub) Broadcast(update models.RefreshUpdate) {
	select {
	case h.broadcast <- update:
	default:
		log.Println("broadcast buffer full, dropping update")
	}
}

// Metrics returns hub counters for the health endpoint
func (h *Hub) Metrics() map[string]interface{} {
	h.clientsMu.RLock()
	activeClients := len(h.clients)
	h.clientsMu.RUnlock()

	h.metricsMu.Lock()
	totalConnections := h.totalConnections
	totalMessages := h.totalMessages
	h.metricsMu.Unlock()

	return map[string]interface{}{
		"active_clients":    activeClients,
		"total_connections": totalConnections,
		"total_messages":    totalMessages,
	}
}

func (h *Hub) registerClient(c *client.Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	h.clients[c] = true

	h.metricsMu.Lock()
	h.totalConnections++
	h.metricsMu.Unlock()

	log.Printf("client %s connected (total: %d)", c.ID, len(h.clients))
}

func (h *Hub) unregisterClient(c *client.Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.Send)
		log.Printf("client %s disconnected (total: %d)", c.ID, len(h.clients))
	}
}

func (h *Hub) broadcastUpdate(update models.RefreshUpdate) {
	h.clientsMu.RLock()
	clients := make([]*client.Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clientsMu.RUnlock()

	message := models.ServerMessage{
		Type:      models.MessageTypeRefresh,
		Payload:   update,
		Timestamp: time.Now(),
	}

	sent := 0
	for _, c := range clients {
		if !c.MatchesFilter(update) {
			continue
		}

		if c.TrySend(message) {
			sent++
			continue
		}

		// Full buffer means the client can't keep up
		log.Printf("client %s buffer full, disconnecting", c.ID)
		go h.Unregister(c)
	}

	if sent > 0 {
		h.metricsMu.Lock()
		h.totalMessages++
		h.metricsMu.Unlock()
	}
}

func (h *Hub) shutdown() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	log.Printf("shutting down hub (%d active clients)", len(h.clients))

	for c := range h.clients {
		close(c.Send)
		delete(h.clients, c)
	}
}
