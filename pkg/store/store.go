package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists for the key.
var ErrNotFound = errors.New("store: key not found")

// Store is durable key-value storage for the terminal. Values are opaque
// blobs; a Set replaces the whole value atomically so a reader never
// observes a partial write.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Well-known keys shared by the session and cart components.
const (
	KeyTokenPair = "token_pair"
	KeyCart      = "cart"
)
