package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser origin checks are handled by the CORS middleware upstream
	CheckOrigin: func(r *http.Request) bool { return true },
}

// watchRequest is the message clients send to replace their watch set.
// The full set is sent every time; the hub computes the diff.
type watchRequest struct {
	EventIDs []uuid.UUID `json:"eventIds"`
}

// session is one connected websocket client
type session struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
}

// Hub tracks which sessions watch which events and fans change notices out
// to them. The registry is reconciled on every watch-set change so stale
// subscriptions are released before new ones are added.
type Hub struct {
	logger *zap.Logger

	mu          sync.RWMutex
	subscribers map[uuid.UUID]map[*session]struct{}
	watchSets   map[*session]map[uuid.UUID]struct{}
}

// NewHub creates a new Hub
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:      logger,
		subscribers: make(map[uuid.UUID]map[*session]struct{}),
		watchSets:   make(map[*session]map[uuid.UUID]struct{}),
	}
}

// Publish delivers a change to local subscribers, letting the hub double as
// a Publisher when no Redis fan-out is configured.
func (h *Hub) Publish(ctx context.Context, change Change) error {
	h.Broadcast(change)
	return nil
}

// Run consumes change notices from Redis pub/sub and fans them out locally.
// It returns when the context is cancelled. A nil client means no Redis is
// configured; the hub then only carries changes published to it directly.
func (h *Hub) Run(ctx context.Context, client *redis.Client) {
	if client == nil {
		return
	}
	sub := client.Subscribe(ctx, ChangeChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var change Change
			if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
				h.logger.Warn("Dropping malformed change notice", zap.Error(err))
				continue
			}
			h.Broadcast(change)
		}
	}
}

// Broadcast sends a change to every session watching its event
func (h *Hub) Broadcast(change Change) {
	payload, err := json.Marshal(change)
	if err != nil {
		h.logger.Error("Failed to marshal change notice", zap.Error(err))
		return
	}

	h.mu.RLock()
	sessions := make([]*session, 0, len(h.subscribers[change.EventID]))
	for s := range h.subscribers[change.EventID] {
		sessions = append(sessions, s)
	}
	h.mu.RUnlock()

	for _, s := range sessions {
		select {
		case s.send <- payload:
		default:
			// Slow consumer; it will be cleaned up when its write pump exits
			h.logger.Debug("Dropping change notice for slow subscriber",
				zap.String("event_id", change.EventID.String()),
			)
		}
	}
}

// SetWatchSet replaces a session's watched event ids, unsubscribing removed
// ids before subscribing added ones.
func (h *Hub) SetWatchSet(s *session, eventIDs []uuid.UUID) {
	next := make(map[uuid.UUID]struct{}, len(eventIDs))
	for _, id := range eventIDs {
		next[id] = struct{}{}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	current := h.watchSets[s]

	for id := range current {
		if _, keep := next[id]; !keep {
			delete(h.subscribers[id], s)
			if len(h.subscribers[id]) == 0 {
				delete(h.subscribers, id)
			}
		}
	}

	for id := range next {
		if _, had := current[id]; !had {
			if h.subscribers[id] == nil {
				h.subscribers[id] = make(map[*session]struct{})
			}
			h.subscribers[id][s] = struct{}{}
		}
	}

	h.watchSets[s] = next
}

// WatcherCount returns how many sessions currently watch an event
func (h *Hub) WatcherCount(eventID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[eventID])
}

// remove detaches a session from the registry entirely
func (h *Hub) remove(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id := range h.watchSets[s] {
		delete(h.subscribers[id], s)
		if len(h.subscribers[id]) == 0 {
			delete(h.subscribers, id)
		}
	}
	delete(h.watchSets, s)
}

// HandleWS upgrades the request and serves a subscription session until the
// client disconnects.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}

	s := &session{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}

	go h.writePump(s)
	h.readPump(s)
}

func (h *Hub) readPump(s *session) {
	defer func() {
		h.remove(s)
		close(s.done)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var req watchRequest
		if err := json.Unmarshal(message, &req); err != nil {
			h.logger.Debug("Ignoring malformed watch request", zap.Error(err))
			continue
		}
		h.SetWatchSet(s, req.EventIDs)
	}
}

func (h *Hub) writePump(s *session) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case <-s.done:
			s.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case payload := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
