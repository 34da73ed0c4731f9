package alert

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"ritual/internal/platform/kv"
)

const lastNotifyPrefix = "last_notify:"

// Limiter remembers when each alert key last fired and suppresses repeats
// inside the minimum gap.
type Limiter struct {
	store  kv.Store
	sink   Sink
	logger *zap.Logger
}

func NewLimiter(store kv.Store, sink Sink, logger *zap.Logger) *Limiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Limiter{store: store, sink: sink, logger: logger}
}

// Notify sends the alert when key has never fired or last fired at least
// minGap before atMs. minGap <= 0 means DefaultMinGap. It reports whether the
// alert was sent.
func (l *Limiter) Notify(ctx context.Context, key, title, body string, minGap time.Duration, atMs int64) (bool, error) {
	if minGap <= 0 {
		minGap = DefaultMinGap
	}
	last, fired, err := l.last(ctx, key)
	if err != nil {
		return false, err
	}
	if fired && atMs-last < minGap.Milliseconds() {
		l.logger.Debug("alert suppressed", zap.String("key", key), zap.Int64("last_ms", last), zap.Int64("at_ms", atMs))
		return false, nil
	}
	if err := l.sink.Send(ctx, Alert{Key: key, Title: title, Body: body, AtMs: atMs}); err != nil {
		return false, err
	}
	if err := l.store.Put(ctx, lastNotifyPrefix+key, []byte(strconv.FormatInt(atMs, 10))); err != nil {
		return true, err
	}
	return true, nil
}

func (l *Limiter) last(ctx context.Context, key string) (int64, bool, error) {
	raw, ok, err := l.store.Get(ctx, lastNotifyPrefix+key)
	if err != nil || !ok {
		return 0, false, err
	}
	last, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		l.logger.Warn("discarding unreadable alert timestamp", zap.String("key", key), zap.Error(err))
		return 0, false, nil
	}
	return last, true, nil
}
