package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 5 * time.Second

type streamEvent struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Hub pushes triggered-alert notifications to connected dashboard sessions
// over WebSocket. It implements the dispatcher's notifier interface;
// delivery to a session that went away is dropped silently.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *zap.Logger

	mu      sync.Mutex
	clients map[string]map[*websocket.Conn]struct{}
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			// Cross-origin policy is enforced by the CORS layer and the
			// bearer token, not by the Origin header.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger:  logger,
		clients: make(map[string]map[*websocket.Conn]struct{}),
	}
}

func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r.Context())
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.String("user_id", userID), zap.Error(err))
		return
	}

	h.add(userID, conn)
	h.logger.Debug("ws session opened", zap.String("user_id", userID))

	// Reader loop only detects the peer going away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.remove(userID, conn)
				_ = conn.Close()
				h.logger.Debug("ws session closed", zap.String("user_id", userID))
				return
			}
		}
	}()
}

// Send implements the notifier contract for live sessions.
func (h *Hub) Send(ctx context.Context, userID, title, body string) error {
	event := streamEvent{Type: "notification", Title: title, Body: body}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients[userID] {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(event); err != nil {
			h.logger.Debug("ws write failed, dropping session",
				zap.String("user_id", userID), zap.Error(err))
			delete(h.clients[userID], conn)
			_ = conn.Close()
		}
	}
	return nil
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, conns := range h.clients {
		for conn := range conns {
			_ = conn.Close()
		}
	}
	h.clients = make(map[string]map[*websocket.Conn]struct{})
}

func (h *Hub) add(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*websocket.Conn]struct{})
	}
	h.clients[userID][conn] = struct{}{}
}

func (h *Hub) remove(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients[userID], conn)
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
}
