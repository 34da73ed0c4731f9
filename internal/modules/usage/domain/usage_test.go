package domain_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"ritual/internal/modules/usage/domain"
	"ritual/internal/platform/calendar"
)

func madrid(t *testing.T, hour, min int) int64 {
	t.Helper()
	return time.Date(2026, 10, 19, hour, min, 0, 0, calendar.Zone()).UnixMilli()
}

func TestForDayPairsSpansPerPackage(t *testing.T) {
	t.Parallel()
	day := calendar.DayOf(madrid(t, 12, 0))
	transitions := []domain.Transition{
		{Package: "com.b", Kind: domain.KindMovedToForeground, TS: madrid(t, 9, 50)},
		{Package: "com.a", Kind: domain.KindActivityResumed, TS: madrid(t, 8, 30)},
		{Package: "com.a", Kind: domain.KindActivityPaused, TS: madrid(t, 9, 10)},
		{Package: "com.b", Kind: domain.KindMovedToBackground, TS: madrid(t, 10, 0)},
		{Package: "com.c", Kind: domain.KindActivityPaused, TS: madrid(t, 11, 0)},
		{Package: "com.d", Kind: domain.KindActivityResumed, TS: madrid(t, 23, 0)},
	}

	got := domain.ForDay(transitions, day.StartMs, day.EndMs)

	want := domain.EmptyDay()
	want.HourlyMs[8] = 40 * 60_000
	want.HourlyMs[9] = 10 * 60_000
	want.ByApp["com.a"] = 40 * 60_000
	want.ByApp["com.b"] = 10 * 60_000
	want.TotalMs = 50 * 60_000
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("usage mismatch (-want +got):\n%s", diff)
	}
}

func TestForDayIgnoresTransitionsOutsideWindow(t *testing.T) {
	t.Parallel()
	day := calendar.DayOf(madrid(t, 12, 0))
	transitions := []domain.Transition{
		{Package: "com.a", Kind: domain.KindActivityResumed, TS: day.StartMs - 1},
		{Package: "com.a", Kind: domain.KindActivityPaused, TS: day.StartMs + 1000},
	}
	got := domain.ForDay(transitions, day.StartMs, day.EndMs)
	if got.TotalMs != 0 || len(got.ByApp) != 0 {
		t.Fatalf("expected empty usage, got %+v", got)
	}
}

func TestFirstForegroundSkipsExcludedAndBackground(t *testing.T) {
	t.Parallel()
	start := int64(1_000)
	transitions := []domain.Transition{
		{Package: "com.instagram.android", Kind: domain.KindActivityResumed, TS: 4_000},
		{Package: "com.android.systemui", Kind: domain.KindActivityResumed, TS: 1_500},
		{Package: "com.example.ritual", Kind: domain.KindMovedToForeground, TS: 2_000},
		{Package: "com.x", Kind: domain.KindActivityPaused, TS: 2_500},
		{Package: "com.early", Kind: domain.KindActivityResumed, TS: 999},
	}
	got, ok := domain.FirstForeground(transitions, start, 10_000, "com.android.systemui", "com.example.ritual")
	if !ok {
		t.Fatalf("expected a foreground app")
	}
	if diff := cmp.Diff(domain.Foreground{Package: "com.instagram.android", DelayMs: 3_000}, got); diff != "" {
		t.Fatalf("foreground mismatch (-want +got):\n%s", diff)
	}

	if _, ok := domain.FirstForeground(transitions, start, 3_999, "com.android.systemui", "com.example.ritual"); ok {
		t.Fatalf("expected no foreground app before lock")
	}
}
