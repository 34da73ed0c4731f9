package in

import (
	"context"

	"ritual/internal/modules/training/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.TimerOutput, error)
	MarkBreak(ctx context.Context, input dto.BreakInput) (dto.TimerOutput, error)
	FinalizeIfEnded(ctx context.Context, ts int64) (dto.FinalizeOutput, error)
	Stats(ctx context.Context) (dto.StatsOutput, error)
	ListSessions(ctx context.Context) ([]dto.SessionOutput, error)
}
