package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	unlockstore "ritual/internal/modules/unlock/adapter/out"
	"ritual/internal/modules/unlock/domain"
	"ritual/internal/modules/unlock/dto"
	unlockin "ritual/internal/modules/unlock/port/in"
	unlockout "ritual/internal/modules/unlock/port/out"
	"ritual/internal/modules/unlock/service"
	"ritual/internal/modules/unlock/usecase"
	"ritual/internal/platform/kv"
)

type fakeForeground struct {
	app   domain.FirstApp
	found bool
}

func (f fakeForeground) FirstForeground(context.Context, int64, int64) (domain.FirstApp, bool, error) {
	return f.app, f.found, nil
}

type fakeSettings struct {
	toggles unlockout.AlertToggles
}

func (f fakeSettings) AlertToggles(context.Context) (unlockout.AlertToggles, error) {
	return f.toggles, nil
}

type sentAlert struct {
	key  string
	at   int64
	wait time.Duration
}

type fakeNotifier struct {
	sent []sentAlert
}

func (f *fakeNotifier) Notify(_ context.Context, key, _, _ string, minGap time.Duration, atMs int64) (bool, error) {
	f.sent = append(f.sent, sentAlert{key: key, at: atMs, wait: minGap})
	return true, nil
}

type fakeTraining struct {
	breaks []int64
}

func (f *fakeTraining) MarkBreak(_ context.Context, ts int64) error {
	f.breaks = append(f.breaks, ts)
	return nil
}

type harness struct {
	uc       unlockin.Usecase
	alerts   *fakeNotifier
	training *fakeTraining
}

func newHarness(fg fakeForeground, toggles unlockout.AlertToggles) harness {
	store := kv.NewMemoryStore()
	alerts := &fakeNotifier{}
	training := &fakeTraining{}
	svc := service.NewReconstructor(service.Dependencies{
		State:         unlockstore.NewKVStateStore(store, nil),
		Events:        unlockstore.NewKVEventLog(store, nil),
		Notifications: unlockstore.NewKVNotificationLog(store, nil),
		Foreground:    fg,
		Settings:      fakeSettings{toggles: toggles},
		Alerts:        alerts,
		Training:      training,
		SelfPackage:   "com.example.ritual",
	})
	return harness{uc: usecase.NewInteractor(svc), alerts: alerts, training: training}
}

func allOn() unlockout.AlertToggles {
	return unlockout.AlertToggles{Impulsive: true, Reactive: true}
}

func TestUnlockLockProducesOneEvent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(fakeForeground{app: domain.FirstApp{Package: "com.instagram.android", DelayMs: 1_200}, found: true}, allOn())

	out, err := h.uc.HandleUnlocked(ctx, 1_000_000)
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if out.Finalized != nil || !out.Pending.Active {
		t.Fatalf("first unlock must only open a pending session, got %+v", out)
	}
	out, err = h.uc.HandleLocked(ctx, 1_010_000)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	if out.Pending.Active {
		t.Fatalf("lock must return to idle")
	}

	delay := int64(1_200)
	want := []dto.EventOutput{{
		TS:                 1_000_000,
		SessionMs:          10_000,
		Impulsive:          true,
		ImpulsiveConscious: true,
		FirstApp:           "com.instagram.android",
		FirstAppDelayMs:    &delay,
	}}
	events, err := h.uc.ListEvents(ctx)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
	if len(h.alerts.sent) != 1 || h.alerts.sent[0].key != service.AlertImpulsive || h.alerts.sent[0].wait != 20*time.Minute {
		t.Fatalf("expected one impulsive alert, got %+v", h.alerts.sent)
	}
	if len(h.training.breaks) != 1 || h.training.breaks[0] != 1_000_000 {
		t.Fatalf("unlock must mark a training break, got %v", h.training.breaks)
	}
}

func TestSecondUnlockFinalizesStaleSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(fakeForeground{}, allOn())

	if _, err := h.uc.HandleUnlocked(ctx, 10_000); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	out, err := h.uc.HandleUnlocked(ctx, 70_000)
	if err != nil {
		t.Fatalf("second unlock: %v", err)
	}
	if out.Finalized == nil || out.Finalized.TS != 10_000 || out.Finalized.SessionMs != 60_000 {
		t.Fatalf("stale session must end at the new unlock, got %+v", out.Finalized)
	}
	if out.Pending.StartMs != 70_000 || out.Pending.SincePrevMs != 60_000 {
		t.Fatalf("unexpected pending %+v", out.Pending)
	}
	if _, err := h.uc.HandleLocked(ctx, 80_000); err != nil {
		t.Fatalf("lock: %v", err)
	}
	events, err := h.uc.ListEvents(ctx)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 2 || events[0].SincePrevMs != 0 || events[1].SincePrevMs != 60_000 {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestLockWhileIdleRecordsNothing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(fakeForeground{}, allOn())
	out, err := h.uc.HandleLocked(ctx, 5)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	if out.Finalized != nil {
		t.Fatalf("idle lock must not finalize")
	}
	events, _ := h.uc.ListEvents(ctx)
	if len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
}

func TestReactiveUnlockUsesRecentNotification(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(fakeForeground{}, unlockout.AlertToggles{Impulsive: false, Reactive: true})
	const posted = int64(500_000)

	stored, err := h.uc.RecordNotification(ctx, dto.NotificationInput{Package: "com.example.app", TS: posted})
	if err != nil || !stored {
		t.Fatalf("record notification: stored=%v err=%v", stored, err)
	}
	if _, err := h.uc.HandleUnlocked(ctx, posted+9_999); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	out, err := h.uc.HandleLocked(ctx, posted+9_999+40_000)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	if !out.Finalized.Reactive || out.Finalized.ReactiveSourceApp != "com.example.app" {
		t.Fatalf("expected reactive event, got %+v", out.Finalized)
	}
	if len(h.alerts.sent) != 1 || h.alerts.sent[0].key != service.AlertReactive {
		t.Fatalf("expected reactive alert only, got %+v", h.alerts.sent)
	}

	if _, err := h.uc.HandleUnlocked(ctx, posted+10_001); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	out, err = h.uc.HandleLocked(ctx, posted+20_001)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	if out.Finalized.Reactive {
		t.Fatalf("notification older than the window must not count, got %+v", out.Finalized)
	}
}

func TestReactiveAlertDisabled(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(fakeForeground{}, unlockout.AlertToggles{Impulsive: true, Reactive: false})
	if _, err := h.uc.RecordNotification(ctx, dto.NotificationInput{Package: "com.mail", TS: 100}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := h.uc.HandleUnlocked(ctx, 200); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	out, err := h.uc.HandleLocked(ctx, 60_200)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	if !out.Finalized.Reactive {
		t.Fatalf("reactive classification must not depend on the alert toggle")
	}
	if len(h.alerts.sent) != 0 {
		t.Fatalf("no alert expected, got %+v", h.alerts.sent)
	}
}

func TestNotificationsFromSelfAndSystemUIAreIgnored(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(fakeForeground{}, allOn())
	for _, pkg := range []string{"com.example.ritual", "com.android.systemui"} {
		stored, err := h.uc.RecordNotification(ctx, dto.NotificationInput{Package: pkg, TS: 1})
		if err != nil {
			t.Fatalf("record %s: %v", pkg, err)
		}
		if stored {
			t.Fatalf("%s must be ignored", pkg)
		}
	}
	if _, err := h.uc.RecordNotification(ctx, dto.NotificationInput{Package: "", TS: 1}); err == nil {
		t.Fatalf("empty package must be rejected")
	}
}

func TestFirstUnlockAtZeroStillSetsSincePrev(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(fakeForeground{}, allOn())

	if _, err := h.uc.HandleUnlocked(ctx, 0); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if _, err := h.uc.HandleLocked(ctx, 1_000); err != nil {
		t.Fatalf("lock: %v", err)
	}
	if _, err := h.uc.HandleUnlocked(ctx, 5_000); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if _, err := h.uc.HandleLocked(ctx, 6_000); err != nil {
		t.Fatalf("lock: %v", err)
	}
	events, err := h.uc.ListEvents(ctx)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 2 || events[0].SincePrevMs != 0 || events[1].SincePrevMs != 5_000 {
		t.Fatalf("unexpected sincePrev values: %+v", events)
	}
}

type flakyState struct {
	unlockout.StateStore
	failNextSave bool
}

func (f *flakyState) Save(ctx context.Context, state domain.State) error {
	if f.failNextSave {
		f.failNextSave = false
		return errors.New("disk full")
	}
	return f.StateStore.Save(ctx, state)
}

func TestFailedStateSaveDoesNotDuplicateStaleEvent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	state := &flakyState{StateStore: unlockstore.NewKVStateStore(store, nil)}
	uc := usecase.NewInteractor(service.NewReconstructor(service.Dependencies{
		State:         state,
		Events:        unlockstore.NewKVEventLog(store, nil),
		Notifications: unlockstore.NewKVNotificationLog(store, nil),
		Foreground:    fakeForeground{},
		Settings:      fakeSettings{toggles: allOn()},
		SelfPackage:   "com.example.ritual",
	}))

	if _, err := uc.HandleUnlocked(ctx, 1_000); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	state.failNextSave = true
	if _, err := uc.HandleUnlocked(ctx, 60_000); err == nil {
		t.Fatalf("expected the failed save to surface")
	}
	if _, err := uc.HandleUnlocked(ctx, 60_000); err != nil {
		t.Fatalf("retried unlock: %v", err)
	}
	events, err := uc.ListEvents(ctx)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 || events[0].TS != 1_000 || events[0].SessionMs != 59_000 {
		t.Fatalf("stale session must be recorded exactly once, got %+v", events)
	}
}
