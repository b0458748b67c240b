package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// Keys under which the app persists its state. Values are JSON blobs.
const (
	KeyCriteria       = "spellbound.criteria"
	KeyCurrentSession = "spellbound.currentSession"
	KeyHistory        = "spellbound.history"
)

// ErrNotFound is returned by Get when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// KeyValueStore persists JSON blobs under namespaced keys. Implementations
// back it with SQL, Redis, or process memory; core logic only ever sees this
// interface.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// AllKeys lists every key the app writes, in the order ClearAll removes them.
func AllKeys() []string {
	return []string{KeyCriteria, KeyCurrentSession, KeyHistory}
}

// SaveJSON marshals v and stores it under key.
func SaveJSON(ctx context.Context, s KeyValueStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal value for %s: %w", key, err)
	}
	if err := s.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

// LoadJSON reads and decodes the value stored at key. A missing key, a
// failed read, or a corrupt value all yield the caller's fallback; corruption
// is logged as a warning and never surfaced.
func LoadJSON[T any](ctx context.Context, s KeyValueStore, key string, fallback T) T {
	data, err := s.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("Warning: failed to read %s: %v", key, err)
		}
		return fallback
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		log.Printf("Warning: discarding corrupt value at %s: %v", key, err)
		return fallback
	}
	return v
}

// ClearAll deletes every key the app owns. Irreversible; callers must have
// obtained explicit user confirmation first.
func ClearAll(ctx context.Context, s KeyValueStore) error {
	if err := s.Delete(ctx, AllKeys()...); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	return nil
}
