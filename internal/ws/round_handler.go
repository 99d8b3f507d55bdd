package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/playmatatu/puttputt/internal/physics"
	"github.com/playmatatu/puttputt/internal/round"
)

// Message types
const (
	TypeHit      = "hit"
	TypeGetState = "get_state"
	TypeState    = "round_state"
)

// Rounds is the part of the round manager the socket needs.
type Rounds interface {
	Get(ctx context.Context, id string) (round.Snapshot, error)
	Hit(ctx context.Context, id string, v physics.Vec2, now time.Time) (round.Snapshot, error)
}

// HitData is the payload of a hit message.
type HitData struct {
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
}

type stateMessage struct {
	Type string         `json:"type"`
	Data round.Snapshot `json:"data"`
}

type Handler struct {
	hub    *Hub
	rounds Rounds
}

func NewHandler(hub *Hub, rounds Rounds) *Handler {
	return &Handler{hub: hub, rounds: rounds}
}

// ServeRound upgrades the connection and streams updates for the round
// named by :id. Callers must have authorised the round already.
func (h *Handler) ServeRound(c *gin.Context) {
	id := c.Param("id")
	snap, err := h.rounds.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "round not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.hub.log.Warnw("websocket upgrade failed", "round", id, "error", err)
		return
	}

	client := &Client{
		hub:     h.hub,
		conn:    conn,
		roundID: id,
		send:    make(chan []byte, sendBuffer),
	}
	// Queued before joining so it is the first thing the client sees.
	if data, err := json.Marshal(stateMessage{Type: TypeState, Data: snap}); err == nil {
		client.send <- data
	}
	if !h.hub.join(client) {
		conn.Close()
		return
	}

	go client.writePump()
	go h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.hub.log.Debugw("websocket closed unexpectedly", "round", c.roundID, "error", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError("malformed message")
			continue
		}
		h.handleMessage(c, msg)
	}
}

func (h *Handler) handleMessage(c *Client, msg Message) {
	switch msg.Type {
	case TypeGetState:
		snap, err := h.rounds.Get(context.Background(), c.roundID)
		if err != nil {
			c.sendError("round not found")
			return
		}
		c.sendJSON(stateMessage{Type: TypeState, Data: snap})

	case TypeHit:
		var hit HitData
		if err := json.Unmarshal(msg.Data, &hit); err != nil {
			c.sendError("invalid hit data")
			return
		}
		// The resulting round_update reaches this client through the publisher.
		_, err := h.rounds.Hit(context.Background(), c.roundID, physics.NewVec2(hit.VX, hit.VY), time.Now())
		switch {
		case err == nil:
		case errors.Is(err, round.ErrRoundDone):
			c.sendError("round already finished")
		case errors.Is(err, round.ErrInvalidHit):
			c.sendError(err.Error())
		default:
			c.sendError("hit failed")
		}

	default:
		c.sendError("unknown message type")
	}
}
