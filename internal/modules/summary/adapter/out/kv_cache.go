package out

import (
	"context"

	"go.uber.org/zap"

	"ritual/internal/modules/summary/domain"
	summaryout "ritual/internal/modules/summary/port/out"
	"ritual/internal/platform/kv"
)

const summariesKey = "daily_summaries"

type KVCache struct {
	value *kv.Value[map[string]domain.DaySummary]
}

func NewKVCache(store kv.Store, logger *zap.Logger) summaryout.Cache {
	return &KVCache{value: kv.NewValue[map[string]domain.DaySummary](store, summariesKey, logger)}
}

func (c *KVCache) Load(ctx context.Context) (map[string]domain.DaySummary, error) {
	cached, ok, err := c.value.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !ok || cached == nil {
		return map[string]domain.DaySummary{}, nil
	}
	return cached, nil
}

func (c *KVCache) Save(ctx context.Context, summaries map[string]domain.DaySummary) error {
	return c.value.Save(ctx, summaries)
}
