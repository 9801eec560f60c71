// Package memory implements an in-memory key-value store for development and testing.
package memory

import (
	"context"
	"sync"

	"healthstate/internal/domain"
)

// DB implements an in-memory key-value store.
type DB struct {
	mu   sync.Mutex
	data map[string]string
}

// New creates a new in-memory store.
func New() *DB {
	return &DB{data: make(map[string]string)}
}

// Ensure interfaces are met.
var _ domain.KVStore = (*DB)(nil)

// Get returns the value stored under key.
func (db *DB) Get(ctx context.Context, key string) (string, bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	v, ok := db.data[key]
	return v, ok, nil
}

// Set stores value under key, replacing any previous value.
func (db *DB) Set(ctx context.Context, key, value string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.data[key] = value
	return nil
}

// Snapshot returns a copy of every key and value.
func (db *DB) Snapshot() map[string]string {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make(map[string]string, len(db.data))
	for k, v := range db.data {
		out[k] = v
	}
	return out
}
