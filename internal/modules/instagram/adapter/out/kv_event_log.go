package out

import (
	"context"

	"go.uber.org/zap"

	"ritual/internal/modules/instagram/domain"
	instagramout "ritual/internal/modules/instagram/port/out"
	"ritual/internal/platform/kv"
)

const (
	eventsKey   = "instagram_events"
	EventsLimit = 200
)

type KVEventLog struct {
	log *kv.Log[domain.Event]
}

func NewKVEventLog(store kv.Store, logger *zap.Logger) instagramout.EventLog {
	return &KVEventLog{log: kv.NewLog[domain.Event](store, eventsKey, EventsLimit, logger)}
}

func (l *KVEventLog) Append(ctx context.Context, event domain.Event) error {
	return l.log.Append(ctx, event)
}

func (l *KVEventLog) ReadAll(ctx context.Context) ([]domain.Event, error) {
	return l.log.ReadAll(ctx)
}

func (l *KVEventLog) Replace(ctx context.Context, events []domain.Event) error {
	return l.log.Replace(ctx, events)
}
