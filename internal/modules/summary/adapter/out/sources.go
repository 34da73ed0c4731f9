package out

import (
	"context"

	instagramin "ritual/internal/modules/instagram/port/in"
	"ritual/internal/modules/summary/domain"
	summaryout "ritual/internal/modules/summary/port/out"
	unlockin "ritual/internal/modules/unlock/port/in"
	usagein "ritual/internal/modules/usage/port/in"
)

type UnlockAdapter struct {
	unlocks unlockin.Usecase
}

func NewUnlockAdapter(unlocks unlockin.Usecase) summaryout.UnlockSource {
	return &UnlockAdapter{unlocks: unlocks}
}

func (a *UnlockAdapter) UnlockEvents(ctx context.Context) ([]domain.UnlockEvent, error) {
	events, err := a.unlocks.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.UnlockEvent, 0, len(events))
	for _, e := range events {
		out = append(out, domain.UnlockEvent{
			TS:                 e.TS,
			SincePrevMs:        e.SincePrevMs,
			SessionMs:          e.SessionMs,
			Impulsive:          e.Impulsive,
			ImpulsiveConscious: e.ImpulsiveConscious,
			Reactive:           e.Reactive,
			ReactiveSourceApp:  e.ReactiveSourceApp,
			FirstApp:           e.FirstApp,
			FirstAppDelayMs:    e.FirstAppDelayMs,
		})
	}
	return out, nil
}

type UsageAdapter struct {
	usage usagein.Usecase
}

func NewUsageAdapter(usage usagein.Usecase) summaryout.UsageSource {
	return &UsageAdapter{usage: usage}
}

func (a *UsageAdapter) UsageForDay(ctx context.Context, dayStartMs, dayEndMs int64) (domain.Usage, error) {
	row, err := a.usage.UsageForDay(ctx, dayStartMs, dayEndMs)
	if err != nil {
		return domain.Usage{}, err
	}
	usage := domain.Usage{TotalMs: row.TotalMs, ByApp: row.ByApp}
	copy(usage.HourlyMs[:], row.HourlyMs)
	return usage, nil
}

type InstagramAdapter struct {
	instagram instagramin.Usecase
}

func NewInstagramAdapter(instagram instagramin.Usecase) summaryout.InstagramSource {
	return &InstagramAdapter{instagram: instagram}
}

func (a *InstagramAdapter) InstagramEvents(ctx context.Context) ([]domain.InstagramEvent, error) {
	events, err := a.instagram.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.InstagramEvent, 0, len(events))
	for _, e := range events {
		out = append(out, domain.InstagramEvent{TS: e.TS, Type: e.Type})
	}
	return out, nil
}

func (a *InstagramAdapter) InstagramInstalled(ctx context.Context) (bool, error) {
	return a.instagram.Installed(ctx)
}
