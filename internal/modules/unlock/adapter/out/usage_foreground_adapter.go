package out

import (
	"context"

	"ritual/internal/modules/unlock/domain"
	unlockout "ritual/internal/modules/unlock/port/out"
	usagein "ritual/internal/modules/usage/port/in"
)

type UsageForegroundAdapter struct {
	usage usagein.Usecase
}

func NewUsageForegroundAdapter(usage usagein.Usecase) unlockout.ForegroundLookup {
	return &UsageForegroundAdapter{usage: usage}
}

func (a *UsageForegroundAdapter) FirstForeground(ctx context.Context, startMs, endMs int64) (domain.FirstApp, bool, error) {
	fg, err := a.usage.FirstForegroundAfterUnlock(ctx, startMs, endMs)
	if err != nil || !fg.Found {
		return domain.FirstApp{}, false, err
	}
	return domain.FirstApp{Package: fg.Package, DelayMs: fg.DelayMs}, true, nil
}
