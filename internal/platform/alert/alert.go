// Package alert delivers soft alerts and rate-limits them per key.
package alert

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const DefaultMinGap = 15 * time.Minute

type Alert struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Title string `json:"title"`
	Body  string `json:"body"`
	AtMs  int64  `json:"atMs"`
}

type Sink interface {
	Send(ctx context.Context, a Alert) error
}

// LogSink writes alerts to the structured log only.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Send(_ context.Context, a Alert) error {
	s.logger.Info("alert",
		zap.String("key", a.Key),
		zap.String("title", a.Title),
		zap.String("body", a.Body),
		zap.Int64("at_ms", a.AtMs),
	)
	return nil
}

// Fanout sends to every sink and returns the first error after trying all.
type Fanout []Sink

func (f Fanout) Send(ctx context.Context, a Alert) error {
	var first error
	for _, sink := range f {
		if err := sink.Send(ctx, a); err != nil && first == nil {
			first = err
		}
	}
	return first
}
