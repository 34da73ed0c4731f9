package usecase_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	instagramcli "ritual/internal/modules/instagram/adapter/in"
	instagramstore "ritual/internal/modules/instagram/adapter/out"
	"ritual/internal/modules/instagram/dto"
	instagramin "ritual/internal/modules/instagram/port/in"
	"ritual/internal/modules/instagram/service"
	"ritual/internal/modules/instagram/usecase"
	"ritual/internal/platform/kv"
)

type toggle bool

func (t toggle) DetectionEnabled(context.Context) (bool, error) { return bool(t), nil }

func newInstagram(store kv.Store, enabled bool) instagramin.Usecase {
	svc := service.NewInstagramService(instagramstore.NewKVEventLog(store, nil), toggle(enabled), nil)
	return usecase.NewInteractor(svc)
}

func TestPackageChangesAreFiltered(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newInstagram(kv.NewMemoryStore(), true)

	inputs := []dto.PackageChangeInput{
		{Package: "com.instagram.android", Installed: true, TS: 100},
		{Package: "com.instagram.android", Installed: true, Replacing: true, TS: 150},
		{Package: "com.other.app", Installed: true, TS: 175},
		{Package: "com.instagram.android", Installed: false, TS: 200},
	}
	for _, in := range inputs {
		if _, err := uc.HandlePackageChange(ctx, in); err != nil {
			t.Fatalf("package change: %v", err)
		}
	}
	events, err := uc.ListEvents(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []dto.EventOutput{{TS: 100, Type: "installed"}, {TS: 200, Type: "uninstalled"}}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
	installed, err := uc.Installed(ctx)
	if err != nil || installed {
		t.Fatalf("expected uninstalled, got %v err=%v", installed, err)
	}
}

func TestDetectionDisabledRecordsNothing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newInstagram(kv.NewMemoryStore(), false)
	recorded, err := uc.HandlePackageChange(ctx, dto.PackageChangeInput{Package: "com.instagram.android", Installed: true, TS: 1})
	if err != nil || recorded {
		t.Fatalf("expected no record, got %v err=%v", recorded, err)
	}
}

func TestRelapseReasonMatchesExactTimestamp(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	uc := newInstagram(store, true)
	for _, ts := range []int64{100, 100, 300} {
		if _, err := uc.HandlePackageChange(ctx, dto.PackageChangeInput{Package: "com.instagram.android", Installed: true, TS: ts}); err != nil {
			t.Fatalf("package change: %v", err)
		}
	}

	handler := instagramcli.NewCLIHandler(uc)
	out, err := handler.Reason(ctx, 100, "", "bored")
	if err != nil {
		t.Fatalf("reason: %v", err)
	}
	if out.Matched != 2 {
		t.Fatalf("expected two matches, got %d", out.Matched)
	}
	missing, err := handler.Reason(ctx, 999, "stress", "")
	if err != nil || missing.Matched != 0 {
		t.Fatalf("unknown ts must be a silent no-op, got %+v err=%v", missing, err)
	}

	events, err := newInstagram(store, true).ListEvents(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	notes := "bored"
	want := []dto.EventOutput{
		{TS: 100, Type: "installed", ReasonCaptured: true, Reason: "other", Notes: &notes},
		{TS: 100, Type: "installed", ReasonCaptured: true, Reason: "other", Notes: &notes},
		{TS: 300, Type: "installed"},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
	installed, _ := uc.Installed(ctx)
	if !installed {
		t.Fatalf("latest event is an install")
	}
}

func TestInstalledWithoutHistoryIsFalse(t *testing.T) {
	t.Parallel()
	installed, err := newInstagram(kv.NewMemoryStore(), true).Installed(context.Background())
	if err != nil || installed {
		t.Fatalf("expected false, got %v err=%v", installed, err)
	}
}
