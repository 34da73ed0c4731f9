package in

import (
	"context"

	"ritual/internal/modules/usage/dto"
)

type Usecase interface {
	Record(ctx context.Context, input dto.RecordInput) error
	UsageForDay(ctx context.Context, dayStartMs, dayEndMs int64) (dto.DayUsageOutput, error)
	FirstForegroundAfterUnlock(ctx context.Context, unlockMs, endMs int64) (dto.ForegroundOutput, error)
}
