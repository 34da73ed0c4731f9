package usecase

import (
	"context"

	"ritual/internal/modules/summary/dto"
	summaryin "ritual/internal/modules/summary/port/in"
	"ritual/internal/modules/summary/service"
)

type Interactor struct {
	svc *service.SummaryService
}

func NewInteractor(svc *service.SummaryService) summaryin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) GetDailySummaries(ctx context.Context, input dto.RangeInput) ([]dto.DaySummaryOutput, error) {
	summaries, err := i.svc.DailySummaries(ctx, input.StartMs, input.EndMs)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DaySummaryOutput, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, dto.DaySummaryOutput(s))
	}
	return out, nil
}

func (i *Interactor) ExportDay(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	summary, path, err := i.svc.ExportDay(ctx, input.DayKey)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{DayKey: summary.DayKey, Path: path}, nil
}
