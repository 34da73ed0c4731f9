package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"ritual/internal/modules/device/domain"
	deviceout "ritual/internal/modules/device/port/out"
	"ritual/internal/platform/clock"
	apperrors "ritual/internal/platform/errors"
)

// Dispatcher routes each signal to the module that owns it. Signals are
// handled one at a time, each to completion.
type Dispatcher struct {
	mu       sync.Mutex
	clock    clock.Clock
	unlocks  deviceout.UnlockSink
	packages deviceout.PackageSink
	usage    deviceout.UsageSink
	logger   *zap.Logger
}

func NewDispatcher(clk clock.Clock, unlocks deviceout.UnlockSink, packages deviceout.PackageSink, usage deviceout.UsageSink, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{clock: clk, unlocks: unlocks, packages: packages, usage: usage, logger: logger}
}

// Dispatch stamps a zero timestamp with the current time and reports whether
// the owning module recorded anything.
func (d *Dispatcher) Dispatch(ctx context.Context, signal domain.Signal) (domain.Signal, bool, error) {
	signal.Package = strings.TrimSpace(signal.Package)
	if signal.TS == 0 {
		signal.TS = clock.NowMillis(d.clock)
	}
	if err := signal.Validate(); err != nil {
		return signal, false, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	handled, err := d.route(ctx, signal)
	if err != nil {
		return signal, false, fmt.Errorf("dispatch %s: %w", signal.Kind, err)
	}
	d.logger.Debug("signal dispatched",
		zap.String("kind", string(signal.Kind)),
		zap.String("package", signal.Package),
		zap.Int64("ts", signal.TS),
		zap.Bool("handled", handled),
	)
	return signal, handled, nil
}

func (d *Dispatcher) route(ctx context.Context, s domain.Signal) (bool, error) {
	switch s.Kind {
	case domain.KindUnlocked:
		return true, d.unlocks.Unlocked(ctx, s.TS)
	case domain.KindLocked:
		return true, d.unlocks.Locked(ctx, s.TS)
	case domain.KindNotificationPosted:
		return d.unlocks.NotificationPosted(ctx, s.Package, s.TS)
	case domain.KindPackageInstalled:
		return d.packages.PackageChanged(ctx, s.Package, true, s.Replacing, s.TS)
	case domain.KindPackageRemoved:
		return d.packages.PackageChanged(ctx, s.Package, false, s.Replacing, s.TS)
	}
	if kind, ok := s.Kind.TransitionKind(); ok {
		return true, d.usage.Transition(ctx, s.Package, kind, s.TS)
	}
	return false, fmt.Errorf("%w: unroutable signal %q", apperrors.ErrInvalidInput, s.Kind)
}
