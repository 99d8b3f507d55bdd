package ws

import (
	"context"
	"encoding/json"

	"github.com/playmatatu/puttputt/internal/round"
	"github.com/redis/go-redis/v9"
)

// Subscribe relays round updates published on Redis to the hub until ctx is
// cancelled. It lets any server instance serve watchers for any round.
func (h *Hub) Subscribe(ctx context.Context, rdb *redis.Client) error {
	pubsub := rdb.Subscribe(ctx, round.EventsChannel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	h.log.Infow("round event subscriber started", "channel", round.EventsChannel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			h.relay([]byte(msg.Payload))
		}
	}
}

func (h *Hub) relay(payload []byte) {
	var u round.Update
	if err := json.Unmarshal(payload, &u); err != nil {
		h.log.Warnw("invalid round event payload", "error", err)
		return
	}
	if u.Type != round.UpdateType || u.RoundID == "" {
		h.log.Debugw("ignoring round event", "type", u.Type)
		return
	}
	h.BroadcastToRound(u.RoundID, u)
}
