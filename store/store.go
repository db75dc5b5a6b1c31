package store

import (
	"context"
	"errors"
)

// Common errors returned by store operations.
var (
	// ErrKeyNotFound is returned when a requested key does not exist in the store.
	ErrKeyNotFound = errors.New("store: key not found")

	// ErrInvalidKey is returned when a key is empty or otherwise invalid.
	ErrInvalidKey = errors.New("store: invalid key")

	// ErrSlotNotFound is returned when a named slot has never been written.
	ErrSlotNotFound = errors.New("store: slot not found")

	// ErrStorageFailed is returned when the underlying storage backend fails.
	ErrStorageFailed = errors.New("store: storage operation failed")
)

// BlobStore is the abstract key-value blob store pipeline graphs are
// persisted to. Implementations must be safe for concurrent use.
type BlobStore interface {
	// Get retrieves the blob stored under key.
	// Returns ErrKeyNotFound if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a blob under key, replacing any prior value.
	// Returns ErrInvalidKey if the key is empty.
	Set(ctx context.Context, key string, blob []byte) error

	// Delete removes the blob stored under key.
	// Returns ErrKeyNotFound if the key does not exist.
	Delete(ctx context.Context, key string) error

	// Keys returns all keys currently in the store.
	// The returned slice may be empty if no keys exist.
	Keys(ctx context.Context) ([]string, error)
}
