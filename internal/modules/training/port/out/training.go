package out

import (
	"context"
	"time"

	"ritual/internal/modules/training/domain"
)

type TimerStore interface {
	Load(ctx context.Context) (domain.Timer, error)
	Save(ctx context.Context, timer domain.Timer) error
}

type SessionLog interface {
	Append(ctx context.Context, session domain.Session) error
	ReadAll(ctx context.Context) ([]domain.Session, error)
}

type SettingsReader interface {
	TrainingEnabled(ctx context.Context) (bool, error)
}

type Notifier interface {
	Notify(ctx context.Context, key, title, body string, minGap time.Duration, atMs int64) (bool, error)
}
