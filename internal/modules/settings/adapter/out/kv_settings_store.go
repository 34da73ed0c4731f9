package out

import (
	"context"

	"go.uber.org/zap"

	settingsout "ritual/internal/modules/settings/port/out"
	"ritual/internal/platform/kv"
)

const settingsKey = "settings"

type KVSettingsStore struct {
	value *kv.Value[map[string]bool]
}

func NewKVSettingsStore(store kv.Store, logger *zap.Logger) settingsout.Store {
	return &KVSettingsStore{value: kv.NewValue[map[string]bool](store, settingsKey, logger)}
}

func (s *KVSettingsStore) Load(ctx context.Context) (map[string]bool, error) {
	values, ok, err := s.value.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !ok || values == nil {
		return map[string]bool{}, nil
	}
	return values, nil
}

func (s *KVSettingsStore) Save(ctx context.Context, values map[string]bool) error {
	return s.value.Save(ctx, values)
}
