// Package redis implements the key-value store port on Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"healthstate/internal/domain"

	goredis "github.com/go-redis/redis/v8"
)

// Store keeps every value as a plain Redis string under prefix+key.
type Store struct {
	client *goredis.Client
	prefix string
}

var _ domain.KVStore = (*Store)(nil)

// Open connects to addr and pings.
func Open(addr string, db int, prefix string) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr, DB: db})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return New(client, prefix), nil
}

// New wraps an existing client.
func New(client *goredis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

// Close closes the client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return v, true, nil
}

// Set stores value under key without expiry.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
