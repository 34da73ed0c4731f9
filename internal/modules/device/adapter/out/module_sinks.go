package out

import (
	"context"

	deviceout "ritual/internal/modules/device/port/out"
	instagramdto "ritual/internal/modules/instagram/dto"
	instagramin "ritual/internal/modules/instagram/port/in"
	unlockdto "ritual/internal/modules/unlock/dto"
	unlockin "ritual/internal/modules/unlock/port/in"
	usagedto "ritual/internal/modules/usage/dto"
	usagein "ritual/internal/modules/usage/port/in"
)

type UnlockSink struct {
	unlocks unlockin.Usecase
}

func NewUnlockSink(unlocks unlockin.Usecase) deviceout.UnlockSink {
	return &UnlockSink{unlocks: unlocks}
}

func (s *UnlockSink) Unlocked(ctx context.Context, ts int64) error {
	_, err := s.unlocks.HandleUnlocked(ctx, ts)
	return err
}

func (s *UnlockSink) Locked(ctx context.Context, ts int64) error {
	_, err := s.unlocks.HandleLocked(ctx, ts)
	return err
}

func (s *UnlockSink) NotificationPosted(ctx context.Context, pkg string, ts int64) (bool, error) {
	return s.unlocks.RecordNotification(ctx, unlockdto.NotificationInput{Package: pkg, TS: ts})
}

type PackageSink struct {
	instagram instagramin.Usecase
}

func NewPackageSink(instagram instagramin.Usecase) deviceout.PackageSink {
	return &PackageSink{instagram: instagram}
}

func (s *PackageSink) PackageChanged(ctx context.Context, pkg string, installed, replacing bool, ts int64) (bool, error) {
	return s.instagram.HandlePackageChange(ctx, instagramdto.PackageChangeInput{
		Package:   pkg,
		Installed: installed,
		Replacing: replacing,
		TS:        ts,
	})
}

type UsageSink struct {
	usage usagein.Usecase
}

func NewUsageSink(usage usagein.Usecase) deviceout.UsageSink {
	return &UsageSink{usage: usage}
}

func (s *UsageSink) Transition(ctx context.Context, pkg, kind string, ts int64) error {
	return s.usage.Record(ctx, usagedto.RecordInput{Package: pkg, Kind: kind, TS: ts})
}
