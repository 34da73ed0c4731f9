package domain_test

import (
	"testing"

	"ritual/internal/modules/unlock/domain"
)

func TestIsImpulsiveBounds(t *testing.T) {
	t.Parallel()
	cases := map[int64]bool{0: false, 1: true, 10_000: true, 15_000: true, 15_001: false}
	for sessionMs, want := range cases {
		if got := domain.IsImpulsive(sessionMs); got != want {
			t.Fatalf("IsImpulsive(%d) = %v, want %v", sessionMs, got, want)
		}
	}
}

func TestLatestNotificationBeforeWindow(t *testing.T) {
	t.Parallel()
	const posted = int64(50_000)
	notifications := []domain.Notification{{Package: "com.example.app", TS: posted}}

	got, ok := domain.LatestNotificationBefore(notifications, posted+9_999, domain.ReactiveWindowMs)
	if !ok || got.Package != "com.example.app" {
		t.Fatalf("expected reactive source, got %+v ok=%v", got, ok)
	}
	if _, ok := domain.LatestNotificationBefore(notifications, posted+10_001, domain.ReactiveWindowMs); ok {
		t.Fatalf("notification outside window must not qualify")
	}
	if _, ok := domain.LatestNotificationBefore(notifications, posted-1, domain.ReactiveWindowMs); ok {
		t.Fatalf("notification after unlock must not qualify")
	}
}

func TestLatestNotificationBeforePicksNewest(t *testing.T) {
	t.Parallel()
	notifications := []domain.Notification{
		{Package: "com.b", TS: 9_000},
		{Package: "com.a", TS: 5_000},
	}
	got, ok := domain.LatestNotificationBefore(notifications, 10_000, domain.ReactiveWindowMs)
	if !ok || got.Package != "com.b" {
		t.Fatalf("expected newest notification, got %+v", got)
	}
}

func TestStateSincePrevAcrossUnlocks(t *testing.T) {
	t.Parallel()
	unlocks := []int64{1_000, 4_000, 4_500, 90_000}
	state := domain.State{}
	for i, ts := range unlocks {
		var stale *domain.PendingSession
		state, stale = state.Unlock(ts)
		if i > 0 && stale == nil {
			t.Fatalf("unlock %d: previous pending session must be returned as stale", i)
		}
		want := int64(0)
		if i > 0 {
			want = ts - unlocks[i-1]
		}
		if state.Pending.SincePrevMs != want {
			t.Fatalf("unlock %d: sincePrev = %d, want %d", i, state.Pending.SincePrevMs, want)
		}
	}
}

func TestLockWhenIdleIsNoop(t *testing.T) {
	t.Parallel()
	state := domain.State{LastUnlockMs: 7}
	next, pending := state.Lock()
	if pending != nil {
		t.Fatalf("idle lock must not return a session")
	}
	if next.LastUnlockMs != 7 {
		t.Fatalf("last unlock must survive lock, got %d", next.LastUnlockMs)
	}
}

func TestFinalizeClassifies(t *testing.T) {
	t.Parallel()
	pending := domain.PendingSession{StartMs: 100_000, SincePrevMs: 60_000}
	first := &domain.FirstApp{Package: "com.instagram.android", DelayMs: 0}
	source := &domain.Notification{Package: "com.whatsapp", TS: 95_000}

	event := domain.Finalize(pending, 110_000, first, source, false)
	if !event.Impulsive || event.ImpulsiveConscious {
		t.Fatalf("expected impulsive without conscious flag, got %+v", event)
	}
	if !event.Reactive || event.ReactiveSourceApp != "com.whatsapp" {
		t.Fatalf("expected reactive from whatsapp, got %+v", event)
	}
	if event.FirstAppDelayMs == nil || *event.FirstAppDelayMs != 0 {
		t.Fatalf("zero delay must be kept, got %v", event.FirstAppDelayMs)
	}

	clamped := domain.Finalize(pending, 50_000, nil, nil, true)
	if clamped.SessionMs != 0 || clamped.Impulsive || clamped.ImpulsiveConscious {
		t.Fatalf("negative session must clamp to zero and not be impulsive, got %+v", clamped)
	}
	if clamped.FirstApp != "" || clamped.FirstAppDelayMs != nil {
		t.Fatalf("first app must be absent, got %+v", clamped)
	}
}

func TestUnlockAtEpochZeroCountsAsPrevious(t *testing.T) {
	t.Parallel()
	state, _ := domain.State{}.Unlock(0)
	state, _ = state.Lock()
	if !state.HasUnlocked {
		t.Fatalf("lock must keep the unlock marker")
	}
	state, _ = state.Unlock(5_000)
	if state.Pending.SincePrevMs != 5_000 {
		t.Fatalf("sincePrev = %d, want 5000", state.Pending.SincePrevMs)
	}
}

func TestLegacyStateWithoutMarkerUsesTimestamp(t *testing.T) {
	t.Parallel()
	state, _ := domain.State{LastUnlockMs: 1_000}.Unlock(3_000)
	if state.Pending.SincePrevMs != 2_000 {
		t.Fatalf("sincePrev = %d, want 2000", state.Pending.SincePrevMs)
	}
}
