// Package kv is the persistence substrate: a flat key-value preference store
// plus typed, size-bounded JSON logs and single values layered on top of it.
package kv

import "context"

// Store holds whole serialized values. Writes replace the previous value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
