package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/dukerupert/calboard/internal/model"
)

// Kind names a grid notification. Pages switch on it.
type Kind string

const (
	KindEventCreated     Kind = "event_created"
	KindEventUpdated     Kind = "event_updated"
	KindEventDeleted     Kind = "event_deleted"
	KindSelectionCleared Kind = "selection_cleared"
)

// Message is a notification pushed to every open calendar page. Event is set
// for created and updated notifications, ID for all event notifications.
type Message struct {
	Type  Kind         `json:"type"`
	ID    string       `json:"id,omitempty"`
	Event *model.Event `json:"event,omitempty"`
}

func EventCreated(ev model.Event) Message {
	return Message{Type: KindEventCreated, ID: ev.ID, Event: &ev}
}

func EventUpdated(ev model.Event) Message {
	return Message{Type: KindEventUpdated, ID: ev.ID, Event: &ev}
}

func EventDeleted(id string) Message {
	return Message{Type: KindEventDeleted, ID: id}
}

func SelectionCleared() Message {
	return Message{Type: KindSelectionCleared}
}

// Hub tracks connected pages and fans messages out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	dropped atomic.Int64
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug("page connected", "clients", n)
}

// Unregister removes c and closes its send channel. Safe to call twice.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug("page disconnected", "clients", n)
}

// Broadcast queues msg for every page. A page with a full buffer misses it
// and the drop is counted.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal notification", "type", msg.Type, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.dropped.Add(1)
			h.logger.Warn("page buffer full, dropping notification", "type", msg.Type, "id", msg.ID)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Dropped reports how many notifications were discarded for slow pages.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}
