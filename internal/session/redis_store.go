package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "lunashop:session:"

// RedisStore keeps sessions in Redis as JSON values with a TTL, so carts
// survive process restarts but still expire with the session.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore creates a Store backed by the given Redis client.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		rdb: rdb,
		ttl: ttl,
	}
}

// Get fetches and unmarshals the session with the given id.
func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	val, err := s.rdb.Get(ctx, keyPrefix+id).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return &sess, nil
}

// Save stores the session and refreshes its TTL.
func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", sess.ID, err)
	}
	if err := s.rdb.Set(ctx, keyPrefix+sess.ID, b, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session %s: %w", sess.ID, err)
	}
	return nil
}

// Delete removes the session.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}
