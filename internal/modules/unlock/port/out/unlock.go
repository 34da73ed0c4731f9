package out

import (
	"context"
	"time"

	"ritual/internal/modules/unlock/domain"
)

type StateStore interface {
	Load(ctx context.Context) (domain.State, error)
	Save(ctx context.Context, state domain.State) error
}

type EventLog interface {
	Append(ctx context.Context, event domain.Event) error
	ReadAll(ctx context.Context) ([]domain.Event, error)
}

type NotificationLog interface {
	Append(ctx context.Context, n domain.Notification) error
	ReadAll(ctx context.Context) ([]domain.Notification, error)
}

type ForegroundLookup interface {
	FirstForeground(ctx context.Context, startMs, endMs int64) (domain.FirstApp, bool, error)
}

type AlertToggles struct {
	Impulsive bool
	Reactive  bool
}

type SettingsReader interface {
	AlertToggles(ctx context.Context) (AlertToggles, error)
}

type Notifier interface {
	Notify(ctx context.Context, key, title, body string, minGap time.Duration, atMs int64) (bool, error)
}

type TrainingBreaker interface {
	MarkBreak(ctx context.Context, ts int64) error
}
