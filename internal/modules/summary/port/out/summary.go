package out

import (
	"context"

	"ritual/internal/modules/summary/domain"
)

type Cache interface {
	Load(ctx context.Context) (map[string]domain.DaySummary, error)
	Save(ctx context.Context, summaries map[string]domain.DaySummary) error
}

type UnlockSource interface {
	UnlockEvents(ctx context.Context) ([]domain.UnlockEvent, error)
}

type UsageSource interface {
	UsageForDay(ctx context.Context, dayStartMs, dayEndMs int64) (domain.Usage, error)
}

type InstagramSource interface {
	InstagramEvents(ctx context.Context) ([]domain.InstagramEvent, error)
	InstagramInstalled(ctx context.Context) (bool, error)
}

type Exporter interface {
	Export(ctx context.Context, summary domain.DaySummary) (string, error)
}
