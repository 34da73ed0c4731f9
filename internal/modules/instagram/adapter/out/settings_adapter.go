package out

import (
	"context"

	instagramout "ritual/internal/modules/instagram/port/out"
	settingsin "ritual/internal/modules/settings/port/in"
)

type SettingsAdapter struct {
	settings settingsin.Usecase
}

func NewSettingsAdapter(settings settingsin.Usecase) instagramout.DetectionToggle {
	return &SettingsAdapter{settings: settings}
}

func (a *SettingsAdapter) DetectionEnabled(ctx context.Context) (bool, error) {
	s, err := a.settings.Get(ctx)
	if err != nil {
		return false, err
	}
	return s.InstagramDetection, nil
}
