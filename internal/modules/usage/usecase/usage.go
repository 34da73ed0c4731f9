package usecase

import (
	"context"

	"ritual/internal/modules/usage/domain"
	"ritual/internal/modules/usage/dto"
	usagein "ritual/internal/modules/usage/port/in"
	"ritual/internal/modules/usage/service"
)

type Interactor struct {
	svc *service.UsageService
}

func NewInteractor(svc *service.UsageService) usagein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Record(ctx context.Context, input dto.RecordInput) error {
	return i.svc.Record(ctx, input.Package, domain.Kind(input.Kind), input.TS)
}

func (i *Interactor) UsageForDay(ctx context.Context, dayStartMs, dayEndMs int64) (dto.DayUsageOutput, error) {
	day, err := i.svc.ForDay(ctx, dayStartMs, dayEndMs)
	if err != nil {
		return dto.DayUsageOutput{}, err
	}
	byApp := make(map[string]int64, len(day.ByApp))
	for pkg, ms := range day.ByApp {
		byApp[pkg] = ms
	}
	return dto.DayUsageOutput{TotalMs: day.TotalMs, ByApp: byApp, HourlyMs: append([]int64(nil), day.HourlyMs[:]...)}, nil
}

func (i *Interactor) FirstForegroundAfterUnlock(ctx context.Context, unlockMs, endMs int64) (dto.ForegroundOutput, error) {
	fg, ok, err := i.svc.FirstForeground(ctx, unlockMs, endMs)
	if err != nil || !ok {
		return dto.ForegroundOutput{}, err
	}
	return dto.ForegroundOutput{Found: true, Package: fg.Package, DelayMs: fg.DelayMs}, nil
}
