// Package events pushes catalog change notifications to connected admin
// dashboards so they can refetch stale data without polling.
package events

import (
	"encoding/json"
	"sync"

	"github.com/casepix/casepix-backend/pkg/logger"
)

// Event names an entity whose cached representation is now stale.
type Event struct {
	Entity string `json:"entity"` // brands, models, compatibility, products, content, categories
	Action string `json:"action"` // created, updated, deleted, imported
}

// Hub fans events out to every connected client. Unlike a chat hub there is
// no addressing: every dashboard gets every invalidation.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan []byte, 256),
	}
}

// Run processes registrations and broadcasts. Call in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			logger.Info("Event client connected", map[string]interface{}{
				"total_clients": h.ClientCount(),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			logger.Info("Event client disconnected", map[string]interface{}{
				"total_clients": h.ClientCount(),
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Send buffer full; drop the client rather than block
					// the broadcast loop.
					go h.Unregister(client)
					logger.Warn("Event client send buffer full, disconnecting")
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Publish broadcasts an invalidation event to all connected clients.
func (h *Hub) Publish(entity, action string) {
	event := Event{Entity: entity, Action: action}
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to encode event", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		logger.Warn("Event broadcast buffer full, dropping event", map[string]interface{}{
			"entity": entity,
			"action": action,
		})
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
