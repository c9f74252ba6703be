package ws

import (
	"encoding/json"
	"time"

	"listings-console/internal/usecase"
)

type eventMessage struct {
	Type      string `json:"type"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Publish broadcasts e to every client as JSON.
func (h *Hub) Publish(e usecase.Event) {
	if h == nil {
		return
	}
	b, err := json.Marshal(eventMessage{
		Type:      e.Type,
		Data:      e.Data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		h.logger.Warn("ws event encode failed", "type", e.Type, "error", err)
		return
	}
	h.Broadcast(b)
}

var _ usecase.Publisher = (*Hub)(nil)
