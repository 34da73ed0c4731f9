package out

import (
	"context"

	"go.uber.org/zap"

	"ritual/internal/modules/usage/domain"
	usageout "ritual/internal/modules/usage/port/out"
	"ritual/internal/platform/kv"
)

const (
	transitionsKey   = "usage_transitions"
	TransitionsLimit = 20000
)

type KVTransitionLog struct {
	log *kv.Log[domain.Transition]
}

func NewKVTransitionLog(store kv.Store, logger *zap.Logger) usageout.TransitionLog {
	return &KVTransitionLog{log: kv.NewLog[domain.Transition](store, transitionsKey, TransitionsLimit, logger)}
}

func (l *KVTransitionLog) Append(ctx context.Context, t domain.Transition) error {
	return l.log.Append(ctx, t)
}

func (l *KVTransitionLog) ReadAll(ctx context.Context) ([]domain.Transition, error) {
	return l.log.ReadAll(ctx)
}
