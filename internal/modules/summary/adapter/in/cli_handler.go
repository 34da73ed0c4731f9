package in

import (
	"context"

	summarydto "ritual/internal/modules/summary/dto"
	summaryin "ritual/internal/modules/summary/port/in"
)

type CLIHandler struct {
	usecase summaryin.Usecase
}

func NewCLIHandler(usecase summaryin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Range(ctx context.Context, startMs, endMs int64) ([]summarydto.DaySummaryOutput, error) {
	return h.usecase.GetDailySummaries(ctx, summarydto.RangeInput{StartMs: startMs, EndMs: endMs})
}

func (h CLIHandler) Export(ctx context.Context, dayKey string) (summarydto.ExportOutput, error) {
	return h.usecase.ExportDay(ctx, summarydto.ExportInput{DayKey: dayKey})
}
