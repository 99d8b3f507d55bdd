package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/playmatatu/puttputt/internal/logger"
	"github.com/playmatatu/puttputt/internal/round"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are checked by middleware.WebSocketCORSCheck before the upgrade.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one WebSocket watching one round.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	roundID string
	send    chan []byte
}

// Hub tracks connected clients per round.
type Hub struct {
	rooms      map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	log        *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run serves registrations until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			room, ok := h.rooms[c.roundID]
			if !ok {
				room = make(map[*Client]struct{})
				h.rooms[c.roundID] = room
			}
			room[c] = struct{}{}
			size := len(room)
			h.mu.Unlock()
			h.log.Debugw("client connected", "round", c.roundID, "room_size", size)

		case c := <-h.unregister:
			h.mu.Lock()
			if room, ok := h.rooms[c.roundID]; ok {
				if _, ok := room[c]; ok {
					delete(room, c)
					close(c.send)
					if len(room) == 0 {
						delete(h.rooms, c.roundID)
					}
				}
			}
			h.mu.Unlock()
			h.log.Debugw("client disconnected", "round", c.roundID)

		case <-ctx.Done():
			h.mu.Lock()
			for id, room := range h.rooms {
				for c := range room {
					close(c.send)
				}
				delete(h.rooms, id)
			}
			h.mu.Unlock()
			return nil
		}
	}
}

// join registers c. It reports false once the hub has stopped.
func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// RoomSize reports how many clients watch a round.
func (h *Hub) RoomSize(roundID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roundID])
}

// BroadcastToRound sends a message to every client watching a round.
func (h *Hub) BroadcastToRound(roundID string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		h.log.Errorw("marshal broadcast", "round", roundID, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[roundID] {
		select {
		case c.send <- data:
		default:
			h.log.Warnw("client send buffer full, dropping message", "round", roundID)
		}
	}
}

// Publish lets the hub stand in for Redis pub/sub on a single instance.
func (h *Hub) Publish(_ context.Context, u round.Update) error {
	h.BroadcastToRound(u.RoundID, u)
	return nil
}

// Message is the envelope for client messages.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.hub.log.Debugw("websocket write failed", "round", c.roundID, "error", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.hub.log.Debugw("websocket ping failed", "round", c.roundID, "error", err)
				return
			}
		}
	}
}

// sendJSON queues a message for this client only.
func (c *Client) sendJSON(message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		c.hub.log.Errorw("marshal message", "round", c.roundID, "error", err)
		return
	}

	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if _, live := c.hub.rooms[c.roundID][c]; !live {
		return
	}
	select {
	case c.send <- data:
	default:
		c.hub.log.Warnw("client send buffer full, dropping message", "round", c.roundID)
	}
}

func (c *Client) sendError(message string) {
	c.sendJSON(map[string]interface{}{
		"type":    "error",
		"message": message,
	})
}
