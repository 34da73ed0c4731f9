package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Value is a single JSON document stored under one key.
type Value[T any] struct {
	store  Store
	key    string
	logger *zap.Logger
}

func NewValue[T any](store Store, key string, logger *zap.Logger) *Value[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Value[T]{store: store, key: key, logger: logger}
}

// Load reports ok=false when nothing is stored or the stored value is unreadable.
func (v *Value[T]) Load(ctx context.Context) (T, bool, error) {
	var zero T
	raw, ok, err := v.store.Get(ctx, v.key)
	if err != nil {
		return zero, false, err
	}
	if !ok || len(raw) == 0 {
		return zero, false, nil
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		v.logger.Warn("discarding unreadable value", zap.String("key", v.key), zap.Error(err))
		return zero, false, nil
	}
	return out, true, nil
}

func (v *Value[T]) Save(ctx context.Context, value T) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", v.key, err)
	}
	return v.store.Put(ctx, v.key, payload)
}

func (v *Value[T]) Clear(ctx context.Context) error {
	return v.store.Delete(ctx, v.key)
}
