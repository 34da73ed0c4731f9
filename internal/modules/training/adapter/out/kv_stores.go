package out

import (
	"context"

	"go.uber.org/zap"

	"ritual/internal/modules/training/domain"
	trainingout "ritual/internal/modules/training/port/out"
	"ritual/internal/platform/kv"
)

const (
	timerKey      = "training_timer"
	sessionsKey   = "training_sessions"
	SessionsLimit = 500
)

type KVTimerStore struct {
	value *kv.Value[domain.Timer]
}

func NewKVTimerStore(store kv.Store, logger *zap.Logger) trainingout.TimerStore {
	return &KVTimerStore{value: kv.NewValue[domain.Timer](store, timerKey, logger)}
}

func (s *KVTimerStore) Load(ctx context.Context) (domain.Timer, error) {
	timer, _, err := s.value.Load(ctx)
	return timer, err
}

func (s *KVTimerStore) Save(ctx context.Context, timer domain.Timer) error {
	return s.value.Save(ctx, timer)
}

type KVSessionLog struct {
	log *kv.Log[domain.Session]
}

func NewKVSessionLog(store kv.Store, logger *zap.Logger) trainingout.SessionLog {
	return &KVSessionLog{log: kv.NewLog[domain.Session](store, sessionsKey, SessionsLimit, logger)}
}

func (l *KVSessionLog) Append(ctx context.Context, session domain.Session) error {
	return l.log.Append(ctx, session)
}

func (l *KVSessionLog) ReadAll(ctx context.Context) ([]domain.Session, error) {
	return l.log.ReadAll(ctx)
}
