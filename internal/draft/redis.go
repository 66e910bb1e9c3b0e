package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces draft keys away from anything else on the instance.
const keyPrefix = "resume_studio:draft:"

// DefaultTTL bounds how long an abandoned draft survives.
const DefaultTTL = 7 * 24 * time.Hour

// RedisStore backs the draft cache with Redis, one JSON value per session.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, addr, password string, db int, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

// Close releases the underlying connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Get fetches the draft for a session, reporting ok=false when none exists.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (Draft, bool, error) {
	raw, err := s.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return Draft{}, false, nil
	}
	if err != nil {
		return Draft{}, false, fmt.Errorf("failed to read draft: %w", err)
	}
	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		// A corrupt draft is unrecoverable; treat it as absent.
		return Draft{}, false, nil
	}
	return d, true, nil
}

// Set writes the draft with the store's TTL.
func (s *RedisStore) Set(ctx context.Context, sessionID string, d Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+sessionID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write draft: %w", err)
	}
	return nil
}

// Clear removes the draft; clearing a missing draft is not an error.
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}
