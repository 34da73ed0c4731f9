package out

import (
	"context"

	settingsin "ritual/internal/modules/settings/port/in"
	trainingout "ritual/internal/modules/training/port/out"
)

type SettingsAdapter struct {
	settings settingsin.Usecase
}

func NewSettingsAdapter(settings settingsin.Usecase) trainingout.SettingsReader {
	return &SettingsAdapter{settings: settings}
}

func (a *SettingsAdapter) TrainingEnabled(ctx context.Context) (bool, error) {
	s, err := a.settings.Get(ctx)
	if err != nil {
		return false, err
	}
	return s.TrainingEnabled, nil
}
