package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ritual/internal/modules/training/domain"
	trainingout "ritual/internal/modules/training/port/out"
	"ritual/internal/platform/calendar"
	"ritual/internal/platform/clock"
	apperrors "ritual/internal/platform/errors"
)

const (
	AlertBreak = "training_break"
	breakGap   = 10 * time.Minute
)

type Tracker struct {
	clock    clock.Clock
	timer    trainingout.TimerStore
	sessions trainingout.SessionLog
	settings trainingout.SettingsReader
	alerts   trainingout.Notifier
	logger   *zap.Logger
}

func NewTracker(clk clock.Clock, timer trainingout.TimerStore, sessions trainingout.SessionLog, settings trainingout.SettingsReader, alerts trainingout.Notifier, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{clock: clk, timer: timer, sessions: sessions, settings: settings, alerts: alerts, logger: logger}
}

// Start overwrites any running timer with a new one ending minutes from now.
func (t *Tracker) Start(ctx context.Context, minutes int) (domain.Timer, error) {
	if minutes <= 0 {
		return domain.Timer{}, fmt.Errorf("%w: training minutes must be positive", apperrors.ErrInvalidInput)
	}
	if t.settings != nil {
		enabled, err := t.settings.TrainingEnabled(ctx)
		if err != nil {
			return domain.Timer{}, fmt.Errorf("read training setting: %w", err)
		}
		if !enabled {
			return domain.Timer{}, apperrors.ErrTrainingDisabled
		}
	}
	timer := domain.StartTimer(clock.NowMillis(t.clock), minutes)
	if err := t.timer.Save(ctx, timer); err != nil {
		return domain.Timer{}, fmt.Errorf("save training timer: %w", err)
	}
	t.logger.Debug("training started", zap.Int64("start_ms", timer.StartMs), zap.Int64("end_ms", timer.EndMs))
	return timer, nil
}

// MarkBreak flags the running timer as broken at ts, alerts, then finalizes
// if the timer already ended. Without a running timer it does nothing.
func (t *Tracker) MarkBreak(ctx context.Context, ts int64) (domain.Timer, error) {
	timer, err := t.timer.Load(ctx)
	if err != nil {
		return domain.Timer{}, fmt.Errorf("load training timer: %w", err)
	}
	if !timer.Active {
		return timer, nil
	}
	timer = timer.Break()
	if err := t.timer.Save(ctx, timer); err != nil {
		return domain.Timer{}, fmt.Errorf("save training timer: %w", err)
	}
	t.logger.Debug("training broken", zap.Int64("ts", ts))
	if t.alerts != nil {
		if _, err := t.alerts.Notify(ctx, AlertBreak, "Training", "Keep holding on.", breakGap, ts); err != nil {
			t.logger.Warn("send alert", zap.String("key", AlertBreak), zap.Error(err))
		}
	}
	timer, _, err = t.FinalizeIfEnded(ctx, ts)
	return timer, err
}

// FinalizeIfEnded records the session once now reaches the scheduled end.
func (t *Tracker) FinalizeIfEnded(ctx context.Context, nowMs int64) (domain.Timer, *domain.Session, error) {
	timer, err := t.timer.Load(ctx)
	if err != nil {
		return domain.Timer{}, nil, fmt.Errorf("load training timer: %w", err)
	}
	next, session := timer.Finalize(nowMs)
	if session == nil {
		return timer, nil, nil
	}
	if err := t.sessions.Append(ctx, *session); err != nil {
		return domain.Timer{}, nil, fmt.Errorf("append training session: %w", err)
	}
	if err := t.timer.Save(ctx, next); err != nil {
		return domain.Timer{}, nil, fmt.Errorf("save training timer: %w", err)
	}
	t.logger.Debug("training finalized", zap.Bool("success", session.Success), zap.Int64("duration_ms", session.DurationMs))
	return next, session, nil
}

// Stats finalizes an ended timer first, then summarizes the history against
// the current Monday-based week.
func (t *Tracker) Stats(ctx context.Context) (domain.Stats, error) {
	now := clock.NowMillis(t.clock)
	timer, _, err := t.FinalizeIfEnded(ctx, now)
	if err != nil {
		return domain.Stats{}, err
	}
	sessions, err := t.sessions.ReadAll(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.ComputeStats(sessions, calendar.WeekStart(now), timer), nil
}

// Sessions finalizes an ended timer first, then returns the history oldest
// first.
func (t *Tracker) Sessions(ctx context.Context) ([]domain.Session, error) {
	if _, _, err := t.FinalizeIfEnded(ctx, clock.NowMillis(t.clock)); err != nil {
		return nil, err
	}
	return t.sessions.ReadAll(ctx)
}

func (t *Tracker) Now() int64 {
	return clock.NowMillis(t.clock)
}
