package usecase

import (
	"context"

	"ritual/internal/modules/training/domain"
	"ritual/internal/modules/training/dto"
	trainingin "ritual/internal/modules/training/port/in"
	"ritual/internal/modules/training/service"
)

type Interactor struct {
	svc *service.Tracker
}

func NewInteractor(svc *service.Tracker) trainingin.Usecase {
	return &Interactor{svc: svc}
}

// Start uses the default block length when input.Minutes is zero.
func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.TimerOutput, error) {
	minutes := input.Minutes
	if minutes == 0 {
		minutes = domain.DefaultMinutes
	}
	timer, err := i.svc.Start(ctx, minutes)
	if err != nil {
		return dto.TimerOutput{}, err
	}
	return toTimerOutput(timer), nil
}

// MarkBreak uses the current time when input.TS is zero.
func (i *Interactor) MarkBreak(ctx context.Context, input dto.BreakInput) (dto.TimerOutput, error) {
	ts := input.TS
	if ts == 0 {
		ts = i.svc.Now()
	}
	timer, err := i.svc.MarkBreak(ctx, ts)
	if err != nil {
		return dto.TimerOutput{}, err
	}
	return toTimerOutput(timer), nil
}

func (i *Interactor) FinalizeIfEnded(ctx context.Context, ts int64) (dto.FinalizeOutput, error) {
	timer, session, err := i.svc.FinalizeIfEnded(ctx, ts)
	if err != nil {
		return dto.FinalizeOutput{}, err
	}
	out := dto.FinalizeOutput{Timer: toTimerOutput(timer)}
	if session != nil {
		s := toSessionOutput(*session)
		out.Recorded = &s
	}
	return out, nil
}

func (i *Interactor) Stats(ctx context.Context) (dto.StatsOutput, error) {
	stats, err := i.svc.Stats(ctx)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	return dto.StatsOutput{
		BlocksCompletedWeek: stats.BlocksCompletedWeek,
		BestBlockMs:         stats.BestBlockMs,
		SuccessPct:          stats.SuccessPct,
		TrainingActive:      stats.Active,
		TrainingEnd:         stats.EndMs,
	}, nil
}

func (i *Interactor) ListSessions(ctx context.Context) ([]dto.SessionOutput, error) {
	sessions, err := i.svc.Sessions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionOutput(s))
	}
	return out, nil
}

func toTimerOutput(t domain.Timer) dto.TimerOutput {
	return dto.TimerOutput{Active: t.Active, Broken: t.Broken, StartMs: t.StartMs, EndMs: t.EndMs}
}

func toSessionOutput(s domain.Session) dto.SessionOutput {
	return dto.SessionOutput{Start: s.Start, End: s.End, Success: s.Success, DurationMs: s.DurationMs}
}
