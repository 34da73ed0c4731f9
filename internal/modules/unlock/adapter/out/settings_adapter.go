package out

import (
	"context"

	settingsin "ritual/internal/modules/settings/port/in"
	unlockout "ritual/internal/modules/unlock/port/out"
)

type SettingsAdapter struct {
	settings settingsin.Usecase
}

func NewSettingsAdapter(settings settingsin.Usecase) unlockout.SettingsReader {
	return &SettingsAdapter{settings: settings}
}

func (a *SettingsAdapter) AlertToggles(ctx context.Context) (unlockout.AlertToggles, error) {
	s, err := a.settings.Get(ctx)
	if err != nil {
		return unlockout.AlertToggles{}, err
	}
	return unlockout.AlertToggles{Impulsive: s.ImpulsiveAlerts, Reactive: s.ReactiveAlerts}, nil
}
