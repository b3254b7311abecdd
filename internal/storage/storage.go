// Package storage holds key/value blob stores. Each key maps to one opaque
// document that is always read and written whole, the way a browser's
// localStorage behaves.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: key not found")

type Store interface {
	// Get returns ErrNotFound when nothing was ever written under key.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the value under key. Readers never observe a partial value.
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
