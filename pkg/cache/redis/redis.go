// Package redis implements pkg/cache's Store against a Redis backend.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/primefold/ragd/pkg/cache"
)

const (
	// DefaultAddr is the default Redis address.
	DefaultAddr = "localhost:6379"

	// connectTimeout bounds the startup ping. An unreachable Redis must
	// not block startup; the caller falls back to the nop store.
	connectTimeout = 5 * time.Second
)

// Store implements cache.Store using go-redis.
type Store struct {
	client *redis.Client
	logger *zap.Logger
}

// Config holds configuration for the Redis store.
type Config struct {
	// Addr is the Redis address (host:port). Defaults to DefaultAddr if empty.
	Addr string

	// Password is the optional Redis AUTH password.
	Password string

	// DB selects the Redis logical database.
	DB int
}

// NewStore connects to Redis and verifies the connection with a bounded
// ping. On any failure it returns an error so the caller can degrade to
// the nop store instead of carrying a dead client.
func NewStore(cfg Config, logger *zap.Logger) (*Store, error) {
	addr := cfg.Addr
	if addr == "" {
		addr = DefaultAddr
	}

	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: connectTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis at %s: %w", addr, err)
	}

	logger.Info("connected to Redis",
		zap.String("addr", addr),
	)

	return &Store{
		client: client,
		logger: logger,
	}, nil
}

// Get returns the cached value for key, reporting a miss for absent keys.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return val, true, nil
}

// Set stores value under key with the given TTL.
func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

var _ cache.Store = (*Store)(nil)
