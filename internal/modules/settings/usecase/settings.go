package usecase

import (
	"context"

	"ritual/internal/modules/settings/domain"
	"ritual/internal/modules/settings/dto"
	settingsin "ritual/internal/modules/settings/port/in"
	"ritual/internal/modules/settings/service"
)

type Interactor struct {
	svc *service.SettingsService
}

func NewInteractor(svc *service.SettingsService) settingsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Get(ctx context.Context) (dto.SettingsOutput, error) {
	s, err := i.svc.Current(ctx)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return toOutput(s), nil
}

func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) (dto.SettingsOutput, error) {
	s, err := i.svc.Apply(ctx, input.Values)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return toOutput(s), nil
}

func toOutput(s domain.Settings) dto.SettingsOutput {
	return dto.SettingsOutput{
		ImpulsiveAlerts:    s.ImpulsiveAlerts,
		ReactiveAlerts:     s.ReactiveAlerts,
		TrainingEnabled:    s.TrainingEnabled,
		InstagramDetection: s.InstagramDetection,
	}
}
