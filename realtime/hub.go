package realtime

import (
	"encoding/json"
	"sync"

	"luggage-link/logger"
)

// Hub tracks connected clients grouped by user so events can be
// delivered to every open connection of a given user.
type Hub struct {
	clients map[uint]map[string]*Client
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[uint]map[string]*Client),
	}
}

func (h *Hub) AddClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[string]*Client)
	}
	h.clients[c.UserID][c.ID] = c
}

func (h *Hub) RemoveClient(userID uint, clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[userID]; ok {
		if c, ok := conns[clientID]; ok {
			close(c.Send)
			delete(conns, clientID)
		}
		if len(conns) == 0 {
			delete(h.clients, userID)
		}
	}
}

// Publish marshals event once and queues it to every connection of the
// given users. Slow clients whose send buffer is full are skipped.
func (h *Hub) Publish(event interface{}, userIDs ...uint) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal realtime event", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, userID := range userIDs {
		for _, client := range h.clients[userID] {
			select {
			case client.Send <- payload:
			default:
			}
		}
	}
}

// ConnectionCount reports the number of open connections for a user.
func (h *Hub) ConnectionCount(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
