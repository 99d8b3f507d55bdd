package round

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// EventsChannel carries every published round update.
const EventsChannel = "round_events"

func stateKey(roundID string) string {
	return fmt.Sprintf("round:%s:state", roundID)
}

// RedisStore keeps snapshots under round:<id>:state with a TTL, and
// publishes updates on EventsChannel.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, stateKey(snap.RoundID), data, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, roundID string) error {
	return s.rdb.Del(ctx, stateKey(roundID)).Err()
}

// Load reads a stored snapshot.
func (s *RedisStore) Load(ctx context.Context, roundID string) (Snapshot, error) {
	var snap Snapshot
	data, err := s.rdb.Get(ctx, stateKey(roundID)).Bytes()
	if err == redis.Nil {
		return snap, fmt.Errorf("%w: %s", ErrRoundNotFound, roundID)
	}
	if err != nil {
		return snap, err
	}
	err = json.Unmarshal(data, &snap)
	return snap, err
}

func (s *RedisStore) Publish(ctx context.Context, u Update) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.rdb.Publish(ctx, EventsChannel, data).Err()
}
