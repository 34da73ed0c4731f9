package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"ritual/internal/modules/unlock/domain"
	unlockout "ritual/internal/modules/unlock/port/out"
	apperrors "ritual/internal/platform/errors"
)

const (
	SystemUIPackage = "com.android.systemui"

	AlertImpulsive = "impulsive_unlock"
	AlertReactive  = "reactive_unlock"
	alertGap       = 20 * time.Minute
)

type Dependencies struct {
	State         unlockout.StateStore
	Events        unlockout.EventLog
	Notifications unlockout.NotificationLog
	Foreground    unlockout.ForegroundLookup
	Settings      unlockout.SettingsReader
	Alerts        unlockout.Notifier
	Training      unlockout.TrainingBreaker
	SelfPackage   string
	Logger        *zap.Logger
}

// Reconstructor turns unlock and lock signals into one Event per unlock. It
// keeps at most one pending session and assumes a single caller at a time.
type Reconstructor struct {
	deps   Dependencies
	logger *zap.Logger
}

func NewReconstructor(deps Dependencies) *Reconstructor {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconstructor{deps: deps, logger: logger}
}

// Unlocked finalizes a stale pending session with ts as its end, opens a new
// pending session and marks a training break. The new state is saved before
// the stale event is appended, so a failed save never duplicates an event.
func (r *Reconstructor) Unlocked(ctx context.Context, ts int64) (*domain.Event, domain.State, error) {
	state, err := r.deps.State.Load(ctx)
	if err != nil {
		return nil, domain.State{}, fmt.Errorf("load unlock state: %w", err)
	}
	next, stale := state.Unlock(ts)
	var finalized *domain.Event
	var toggles unlockout.AlertToggles
	if stale != nil {
		r.logger.Debug("finalizing session without lock", zap.Int64("start_ms", stale.StartMs), zap.Int64("end_ms", ts))
		event, staleToggles, err := r.classify(ctx, *stale, ts)
		if err != nil {
			return nil, domain.State{}, err
		}
		finalized, toggles = &event, staleToggles
	}
	if err := r.deps.State.Save(ctx, next); err != nil {
		return nil, domain.State{}, fmt.Errorf("save unlock state: %w", err)
	}
	if finalized != nil {
		if err := r.record(ctx, *finalized, ts, toggles); err != nil {
			return nil, domain.State{}, err
		}
	}
	r.logger.Debug("unlock pending", zap.Int64("start_ms", ts), zap.Int64("since_prev_ms", next.Pending.SincePrevMs))

	if r.deps.Training != nil {
		if err := r.deps.Training.MarkBreak(ctx, ts); err != nil {
			r.logger.Warn("mark training break", zap.Int64("ts", ts), zap.Error(err))
		}
	}
	return finalized, next, nil
}

// Locked finalizes the pending session with ts as its end. Idle is a no-op.
func (r *Reconstructor) Locked(ctx context.Context, ts int64) (*domain.Event, domain.State, error) {
	state, err := r.deps.State.Load(ctx)
	if err != nil {
		return nil, domain.State{}, fmt.Errorf("load unlock state: %w", err)
	}
	next, pending := state.Lock()
	if pending == nil {
		r.logger.Debug("lock while idle", zap.Int64("ts", ts))
		return nil, state, nil
	}
	event, toggles, err := r.classify(ctx, *pending, ts)
	if err != nil {
		return nil, domain.State{}, err
	}
	if err := r.deps.State.Save(ctx, next); err != nil {
		return nil, domain.State{}, fmt.Errorf("save unlock state: %w", err)
	}
	if err := r.record(ctx, event, ts, toggles); err != nil {
		return nil, domain.State{}, err
	}
	return &event, next, nil
}

// classify builds the event for a pending session ending at end. It reads
// collaborators only.
func (r *Reconstructor) classify(ctx context.Context, pending domain.PendingSession, end int64) (domain.Event, unlockout.AlertToggles, error) {
	var first *domain.FirstApp
	if r.deps.Foreground != nil {
		app, ok, err := r.deps.Foreground.FirstForeground(ctx, pending.StartMs, end)
		if err != nil {
			return domain.Event{}, unlockout.AlertToggles{}, fmt.Errorf("find first app: %w", err)
		}
		if ok {
			first = &app
		}
	}

	notifications, err := r.deps.Notifications.ReadAll(ctx)
	if err != nil {
		return domain.Event{}, unlockout.AlertToggles{}, fmt.Errorf("read notifications: %w", err)
	}
	var source *domain.Notification
	if n, ok := domain.LatestNotificationBefore(notifications, pending.StartMs, domain.ReactiveWindowMs); ok {
		source = &n
	}

	toggles, err := r.deps.Settings.AlertToggles(ctx)
	if err != nil {
		return domain.Event{}, unlockout.AlertToggles{}, fmt.Errorf("read alert settings: %w", err)
	}
	return domain.Finalize(pending, end, first, source, toggles.Impulsive), toggles, nil
}

// record sends the rate-limited alerts and appends the event.
func (r *Reconstructor) record(ctx context.Context, event domain.Event, end int64, toggles unlockout.AlertToggles) error {
	if event.ImpulsiveConscious {
		r.alert(ctx, AlertImpulsive, "Conscious unlock", "Did you really need to open the phone?", end)
	}
	if event.Reactive && toggles.Reactive {
		r.alert(ctx, AlertReactive, "Reactive unlock", "Breathe for 10 seconds before going in.", end)
	}

	if err := r.deps.Events.Append(ctx, event); err != nil {
		return fmt.Errorf("append unlock event: %w", err)
	}
	r.logger.Debug("unlock finalized",
		zap.Int64("ts", event.TS),
		zap.Int64("session_ms", event.SessionMs),
		zap.Bool("impulsive", event.Impulsive),
		zap.Bool("reactive", event.Reactive),
		zap.String("first_app", event.FirstApp),
	)
	return nil
}

func (r *Reconstructor) alert(ctx context.Context, key, title, body string, atMs int64) {
	if r.deps.Alerts == nil {
		return
	}
	if _, err := r.deps.Alerts.Notify(ctx, key, title, body, alertGap, atMs); err != nil {
		r.logger.Warn("send alert", zap.String("key", key), zap.Error(err))
	}
}

// RecordNotification stores a posted notification for reactive detection.
// Notifications from this app and the system UI are dropped.
func (r *Reconstructor) RecordNotification(ctx context.Context, pkg string, ts int64) (bool, error) {
	pkg = strings.TrimSpace(pkg)
	if pkg == "" {
		return false, fmt.Errorf("%w: notification package is required", apperrors.ErrInvalidInput)
	}
	if pkg == r.deps.SelfPackage || pkg == SystemUIPackage {
		r.logger.Debug("notification ignored", zap.String("package", pkg))
		return false, nil
	}
	if err := r.deps.Notifications.Append(ctx, domain.Notification{Package: pkg, TS: ts}); err != nil {
		return false, fmt.Errorf("append notification: %w", err)
	}
	return true, nil
}

func (r *Reconstructor) Events(ctx context.Context) ([]domain.Event, error) {
	return r.deps.Events.ReadAll(ctx)
}

func (r *Reconstructor) State(ctx context.Context) (domain.State, error) {
	return r.deps.State.Load(ctx)
}
