package ws

import (
	"encoding/json"
	"sync"

	"rpsduel/internal/domain"
	"rpsduel/internal/logger"
)

// Hub fans engine events out to connected spectator sockets. It implements
// the engine's event sink; Emit only queues, the pump goroutine does the
// actual writes.
type Hub struct {
	mu        sync.RWMutex
	clients   map[*Client]bool
	broadcast chan []byte
	done      chan struct{}
}

func NewHub() *Hub {
	h := &Hub{
		clients:   make(map[*Client]bool),
		broadcast: make(chan []byte, 256),
		done:      make(chan struct{}),
	}
	go h.run()
	return h
}

// Emit queues an engine event for broadcast. Drops when the queue is full
// rather than stalling the engine.
func (h *Hub) Emit(e domain.Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		logger.Error("ws: marshal event", "error", err)
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		logger.Warn("ws: broadcast queue full, dropping event", "type", string(e.Type))
	}
}

func (h *Hub) run() {
	for {
		select {
		case msg := <-h.broadcast:
			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// slow consumer, disconnect it
					go h.Unregister(c)
				}
			}
			h.mu.RUnlock()
		case <-h.done:
			return
		}
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	n := len(h.clients)
	h.mu.Unlock()
	logger.Debug("ws: client connected", "clients", n)
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Close stops the broadcast pump and drops all clients.
func (h *Hub) Close() {
	close(h.done)
	h.mu.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}
