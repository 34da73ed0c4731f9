package out

import "context"

type UnlockSink interface {
	Unlocked(ctx context.Context, ts int64) error
	Locked(ctx context.Context, ts int64) error
	NotificationPosted(ctx context.Context, pkg string, ts int64) (bool, error)
}

type PackageSink interface {
	PackageChanged(ctx context.Context, pkg string, installed, replacing bool, ts int64) (bool, error)
}

type UsageSink interface {
	Transition(ctx context.Context, pkg, kind string, ts int64) error
}
