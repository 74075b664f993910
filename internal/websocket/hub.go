package websocket

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"mathexpert-backend/internal/models"
	"mathexpert-backend/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type tokenParser interface {
	Parse(token string) (uuid.UUID, error)
}

// subscriber delivers the payloads published on a channel until ctx ends.
// Subscribe returns only once the subscription is live.
type subscriber interface {
	Subscribe(ctx context.Context, channel string) (<-chan string, error)
}

type redisSubscriber struct {
	client *redis.Client
}

func (s redisSubscriber) Subscribe(ctx context.Context, channel string) (<-chan string, error) {
	pubsub := s.client.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- msg.Payload:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Hub relays a session's progress messages from Redis to its open sockets.
type Hub struct {
	mu          sync.RWMutex
	connections map[uuid.UUID][]*websocket.Conn
	subscriber  subscriber
	tokens      tokenParser
	cancelFuncs map[uuid.UUID]context.CancelFunc
}

func NewHub(redisClient *redis.Client, tokens tokenParser) *Hub {
	return newHub(redisSubscriber{client: redisClient}, tokens)
}

func newHub(sub subscriber, tokens tokenParser) *Hub {
	return &Hub{
		connections: make(map[uuid.UUID][]*websocket.Conn),
		subscriber:  sub,
		tokens:      tokens,
		cancelFuncs: make(map[uuid.UUID]context.CancelFunc),
	}
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	// Browsers cannot set headers on the upgrade, so the token rides in the query
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sessionID, err := h.tokens.Parse(tokenStr)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	if err := h.registerConnection(sessionID, conn); err != nil {
		log.Printf("WebSocket subscribe failed: session %s: %v", sessionID, err)
		conn.Close()
		return
	}

	go func() {
		defer h.unregisterConnection(sessionID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

// registerConnection adds conn and tells the client it is subscribed.
// The first socket of a session opens the Redis subscription.
func (h *Hub) registerConnection(sessionID uuid.UUID, conn *websocket.Conn) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.connections[sessionID]) == 0 {
		ctx, cancel := context.WithCancel(context.Background())
		updates, err := h.subscriber.Subscribe(ctx, session.UpdatesChannel(sessionID))
		if err != nil {
			cancel()
			return err
		}
		h.cancelFuncs[sessionID] = cancel
		go h.relay(sessionID, updates)
	}

	h.connections[sessionID] = append(h.connections[sessionID], conn)
	conn.WriteJSON(models.WSMessage{
		Type:    "subscribed",
		Payload: models.SubscribedEvent{SessionID: sessionID},
	})

	log.Printf("WebSocket connected: session %s (total: %d)", sessionID, len(h.connections[sessionID]))
	return nil
}

func (h *Hub) unregisterConnection(sessionID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn.Close()

	conns := h.connections[sessionID]
	for i, c := range conns {
		if c == conn {
			h.connections[sessionID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}

	if len(h.connections[sessionID]) == 0 {
		delete(h.connections, sessionID)
		if cancel, ok := h.cancelFuncs[sessionID]; ok {
			cancel()
			delete(h.cancelFuncs, sessionID)
		}
	}

	log.Printf("WebSocket disconnected: session %s (remaining: %d)", sessionID, h.connectionCount(sessionID))
}

func (h *Hub) relay(sessionID uuid.UUID, updates <-chan string) {
	for payload := range updates {
		h.broadcast(sessionID, []byte(payload))
	}
}

// broadcast holds the write lock: gorilla connections allow one writer at a time.
func (h *Hub) broadcast(sessionID uuid.UUID, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, conn := range h.connections[sessionID] {
		conn.WriteMessage(websocket.TextMessage, data)
	}
}

// connectionCount expects h.mu to be held.
func (h *Hub) connectionCount(sessionID uuid.UUID) int {
	return len(h.connections[sessionID])
}
