package out

import (
	"context"

	"go.uber.org/zap"

	"ritual/internal/modules/unlock/domain"
	unlockout "ritual/internal/modules/unlock/port/out"
	"ritual/internal/platform/kv"
)

const (
	stateKey          = "unlock_state"
	eventsKey         = "unlock_events"
	notificationsKey  = "notification_events"
	EventsLimit       = 12000
	NotificationLimit = 2000
)

type KVStateStore struct {
	value *kv.Value[domain.State]
}

func NewKVStateStore(store kv.Store, logger *zap.Logger) unlockout.StateStore {
	return &KVStateStore{value: kv.NewValue[domain.State](store, stateKey, logger)}
}

func (s *KVStateStore) Load(ctx context.Context) (domain.State, error) {
	state, _, err := s.value.Load(ctx)
	return state, err
}

func (s *KVStateStore) Save(ctx context.Context, state domain.State) error {
	return s.value.Save(ctx, state)
}

type KVEventLog struct {
	log *kv.Log[domain.Event]
}

func NewKVEventLog(store kv.Store, logger *zap.Logger) unlockout.EventLog {
	return &KVEventLog{log: kv.NewLog[domain.Event](store, eventsKey, EventsLimit, logger)}
}

func (l *KVEventLog) Append(ctx context.Context, event domain.Event) error {
	return l.log.Append(ctx, event)
}

func (l *KVEventLog) ReadAll(ctx context.Context) ([]domain.Event, error) {
	return l.log.ReadAll(ctx)
}

type KVNotificationLog struct {
	log *kv.Log[domain.Notification]
}

func NewKVNotificationLog(store kv.Store, logger *zap.Logger) unlockout.NotificationLog {
	return &KVNotificationLog{log: kv.NewLog[domain.Notification](store, notificationsKey, NotificationLimit, logger)}
}

func (l *KVNotificationLog) Append(ctx context.Context, n domain.Notification) error {
	return l.log.Append(ctx, n)
}

func (l *KVNotificationLog) ReadAll(ctx context.Context) ([]domain.Notification, error) {
	return l.log.ReadAll(ctx)
}
