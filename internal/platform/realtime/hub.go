package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub fans message events out to websocket subscribers keyed by
// conversation. A subscriber joins one conversation at a time and is removed
// when its socket closes, matching the teardown-on-conversation-change
// behavior of the client.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[*subscriber]struct{}
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

type Event struct {
	Type           string          `json:"type"`
	ConversationID string          `json:"conversation_id"`
	Payload        json.RawMessage `json:"payload"`
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		channels: make(map[string]map[*subscriber]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Subscribe upgrades the request and pumps events for one conversation until
// the peer disconnects.
func (h *Hub) Subscribe(w http.ResponseWriter, r *http.Request, conversationID string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	sub := &subscriber{conn: conn, send: make(chan []byte, 64)}
	h.mu.Lock()
	if h.channels[conversationID] == nil {
		h.channels[conversationID] = make(map[*subscriber]struct{})
	}
	h.channels[conversationID][sub] = struct{}{}
	h.mu.Unlock()

	go h.writePump(conversationID, sub)
	go h.readPump(conversationID, sub)
	return nil
}

// Publish delivers the event to every live subscriber of the conversation.
// Slow subscribers are dropped rather than blocking the sender.
func (h *Hub) Publish(_ context.Context, event Event) {
	raw, err := json.Marshal(event)
	if err != nil {
		return
	}

	// Sends stay under the read lock; remove closes send channels under the
	// write lock, so a send can never hit a closed channel.
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.channels[event.ConversationID] {
		select {
		case sub.send <- raw:
		default:
			h.logger.Warn("dropping realtime event for slow subscriber",
				"event", "realtime_publish_drop",
				"module", "internal/platform/realtime",
				"layer", "platform",
				"conversation_id", event.ConversationID,
			)
		}
	}
}

func (h *Hub) writePump(conversationID string, sub *subscriber) {
	defer func() {
		h.remove(conversationID, sub)
		_ = sub.conn.Close()
	}()
	for raw := range sub.send {
		if err := sub.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			return
		}
	}
}

func (h *Hub) readPump(conversationID string, sub *subscriber) {
	defer func() {
		h.remove(conversationID, sub)
		_ = sub.conn.Close()
	}()
	for {
		// Subscribers are read-only; discard inbound frames until close.
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) remove(conversationID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.channels[conversationID]
	if subs == nil {
		return
	}
	if _, ok := subs[sub]; ok {
		delete(subs, sub)
		close(sub.send)
	}
	if len(subs) == 0 {
		delete(h.channels, conversationID)
	}
}
