package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Log is an append-only JSON array stored under one key and trimmed to the
// most recent limit entries on every write.
type Log[T any] struct {
	store  Store
	key    string
	limit  int
	logger *zap.Logger
}

func NewLog[T any](store Store, key string, limit int, logger *zap.Logger) *Log[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log[T]{store: store, key: key, limit: limit, logger: logger}
}

func (l *Log[T]) Key() string { return l.key }
func (l *Log[T]) Limit() int  { return l.limit }

// ReadAll returns the entries oldest first. A value that no longer decodes is
// treated as an empty log.
func (l *Log[T]) ReadAll(ctx context.Context) ([]T, error) {
	raw, ok, err := l.store.Get(ctx, l.key)
	if err != nil {
		return nil, err
	}
	if !ok || len(raw) == 0 {
		return []T{}, nil
	}
	entries := []T{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		l.logger.Warn("discarding unreadable log", zap.String("key", l.key), zap.Error(err))
		return []T{}, nil
	}
	return entries, nil
}

func (l *Log[T]) Append(ctx context.Context, entry T) error {
	entries, err := l.ReadAll(ctx)
	if err != nil {
		return err
	}
	return l.Replace(ctx, append(entries, entry))
}

// Replace overwrites the whole log, keeping only the newest entries.
func (l *Log[T]) Replace(ctx context.Context, entries []T) error {
	payload, err := json.Marshal(Trim(entries, l.limit))
	if err != nil {
		return fmt.Errorf("encode %s: %w", l.key, err)
	}
	return l.store.Put(ctx, l.key, payload)
}

// Trim keeps the last keep entries. keep <= 0 keeps everything.
func Trim[T any](entries []T, keep int) []T {
	if keep <= 0 || len(entries) <= keep {
		return entries
	}
	out := make([]T, keep)
	copy(out, entries[len(entries)-keep:])
	return out
}
