package in

import (
	"context"

	"ritual/internal/modules/unlock/dto"
)

type Usecase interface {
	HandleUnlocked(ctx context.Context, ts int64) (dto.SignalOutput, error)
	HandleLocked(ctx context.Context, ts int64) (dto.SignalOutput, error)
	RecordNotification(ctx context.Context, input dto.NotificationInput) (bool, error)
	ListEvents(ctx context.Context) ([]dto.EventOutput, error)
	Pending(ctx context.Context) (dto.PendingOutput, error)
}
