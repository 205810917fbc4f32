package view

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Redis-backed Store for multi-instance deployments.
// Views expire server-side via Redis TTLs.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisConfig configures the Redis connection.
type RedisConfig struct {
	// Addr is the host:port of the Redis server.
	Addr string

	// Password is optional.
	Password string

	// DB selects the Redis database number.
	DB int

	// TTL is the view lifetime. Non-positive means [DefaultTTL].
	TTL time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

// key converts a session ID to a Redis key.
func (s *RedisStore) key(sessionID string) string {
	return "view:" + sessionID
}

// Get retrieves the view for a session.
// Missing and undecodable entries read as the empty view.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (View, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Empty(), nil
	}
	if err != nil {
		return Empty(), err
	}

	var v View
	if err := json.Unmarshal(data, &v); err != nil {
		_ = s.client.Del(ctx, s.key(sessionID)).Err()
		return Empty(), nil
	}
	return v, nil
}

// Put replaces the view for a session.
func (s *RedisStore) Put(ctx context.Context, sessionID string, v View) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err()
}

// Reset restores the empty view for a session.
func (s *RedisStore) Reset(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}

// Cleanup is a no-op: Redis expires views on its own.
func (s *RedisStore) Cleanup(ctx context.Context) error {
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
