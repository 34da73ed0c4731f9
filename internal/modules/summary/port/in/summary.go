package in

import (
	"context"

	"ritual/internal/modules/summary/dto"
)

type Usecase interface {
	GetDailySummaries(ctx context.Context, input dto.RangeInput) ([]dto.DaySummaryOutput, error)
	ExportDay(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
