package service

import (
	"context"

	"go.uber.org/zap"

	"ritual/internal/modules/settings/domain"
	settingsout "ritual/internal/modules/settings/port/out"
)

type SettingsService struct {
	store  settingsout.Store
	logger *zap.Logger
}

func NewSettingsService(store settingsout.Store, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{store: store, logger: logger}
}

func (s *SettingsService) Current(ctx context.Context) (domain.Settings, error) {
	values, err := s.store.Load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	return domain.FromMap(values), nil
}

func (s *SettingsService) Apply(ctx context.Context, payload map[string]any) (domain.Settings, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	next, ignored := current.Apply(payload)
	if len(ignored) > 0 {
		s.logger.Debug("ignored settings keys", zap.Strings("keys", ignored))
	}
	if err := s.store.Save(ctx, next.ToMap()); err != nil {
		return domain.Settings{}, err
	}
	return next, nil
}
