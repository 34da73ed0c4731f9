package out

import (
	"context"

	"ritual/internal/modules/instagram/domain"
)

type EventLog interface {
	Append(ctx context.Context, event domain.Event) error
	ReadAll(ctx context.Context) ([]domain.Event, error)
	Replace(ctx context.Context, events []domain.Event) error
}

type DetectionToggle interface {
	DetectionEnabled(ctx context.Context) (bool, error)
}
