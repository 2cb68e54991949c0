package handlers

import (
	"net/http"
	"sync"
	"time"

	jwtutil "github.com/Dias221467/Habit_Manager/pkg/jwt"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// FeedEvent is one live update pushed to a user's open dashboards.
type FeedEvent struct {
	Type      string `json:"type"` // "habit_completed", "streak_milestone"
	HabitID   string `json:"habit_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Streak    int    `json:"streak,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// FeedHandler maintains one WebSocket feed per user so every open tab sees
// a completion the moment it lands.
type FeedHandler struct {
	JWTSecret string

	mu      sync.Mutex
	clients map[string][]*websocket.Conn
}

var feedUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewFeedHandler(jwtSecret string) *FeedHandler {
	return &FeedHandler{
		JWTSecret: jwtSecret,
		clients:   make(map[string][]*websocket.Conn),
	}
}

// FeedWebSocketHandler upgrades the connection and registers it under the
// authenticated user. The token travels as a query parameter because
// browsers cannot set headers on WebSocket dials.
func (h *FeedHandler) FeedWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}
	claims, err := jwtutil.ValidateToken(token, h.JWTSecret)
	if err != nil {
		logrus.WithError(err).Warn("WebSocket auth failed")
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}
	userID := claims.UserID

	conn, err := feedUpgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.clients[userID] = append(h.clients[userID], conn)
	h.mu.Unlock()

	logrus.WithField("userID", userID).Info("Habit feed connected")

	// The feed is push-only; reads just detect the close.
	go func() {
		defer h.drop(userID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *FeedHandler) drop(userID string, conn *websocket.Conn) {
	conn.Close()
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.clients[userID]
	for i, c := range conns {
		if c == conn {
			h.clients[userID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
}

// Publish sends an event to every connection the user has open. Connections
// that fail to write are dropped.
func (h *FeedHandler) Publish(userID string, event FeedEvent) {
	if event.Timestamp == "" {
		event.Timestamp = time.Now().Format(time.RFC3339)
	}

	h.mu.Lock()
	conns := append([]*websocket.Conn(nil), h.clients[userID]...)
	h.mu.Unlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(event); err != nil {
			logrus.WithError(err).Warn("Dropping dead feed connection")
			h.drop(userID, conn)
		}
	}
}
