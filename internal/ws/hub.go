package ws

import (
	"context"
	"sync"

	"listings-console/internal/pkg/logging"
)

// Hub fans console events out to every connected websocket client.
type Hub struct {
	clients    map[*Client]bool
	stopped    bool
	broadcast  chan []byte
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
	logger     *logging.Logger
}

func NewHub(logger *logging.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 1024),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger.With("component", "ws"),
	}
}

// Run serves unregistrations and broadcasts until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			h.stopped = true
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mutex.Unlock()
			return

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.drop(client)

		case message := <-h.broadcast:
			h.mutex.RLock()
			snapshot := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				snapshot = append(snapshot, c)
			}
			h.mutex.RUnlock()

			for _, client := range snapshot {
				select {
				case client.send <- message:
				default:
					h.drop(client)
				}
			}
			h.logger.Debug("ws broadcast", "clients", len(snapshot))
		}
	}
}

func (h *Hub) drop(client *Client) {
	h.mutex.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mutex.Unlock()
	h.logger.Debug("ws disconnected", "total_clients", total)
}

// Register adds client to the fan-out. Once Run has stopped the client's queue is
// closed straight away.
func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	h.mutex.Lock()
	if h.stopped {
		h.mutex.Unlock()
		close(client.send)
		return
	}
	h.clients[client] = true
	total := len(h.clients)
	h.mutex.Unlock()
	h.logger.Debug("ws connected", "total_clients", total)
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues message for every client. It never blocks; a full queue drops it.
func (h *Hub) Broadcast(message []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("ws broadcast dropped", "reason", "buffer_full")
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
