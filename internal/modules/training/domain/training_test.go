package domain_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ritual/internal/modules/training/domain"
)

func TestBreakThenFinalizeRecordsFailure(t *testing.T) {
	t.Parallel()
	timer := domain.StartTimer(0, 30)
	timer = timer.Break()
	timer = timer.Break()

	if next, session := timer.Finalize(100); session != nil || !next.Active {
		t.Fatalf("timer must stay active before its end")
	}
	next, session := timer.Finalize(30 * 60_000)
	if session == nil {
		t.Fatalf("expected a session at the scheduled end")
	}
	want := domain.Session{Start: 0, End: 1_800_000, Success: false, DurationMs: 1_800_000}
	if diff := cmp.Diff(want, *session); diff != "" {
		t.Fatalf("session mismatch (-want +got):\n%s", diff)
	}
	if next.Active || next.Broken || next.EndMs != 1_800_000 {
		t.Fatalf("unexpected timer after finalize %+v", next)
	}
}

func TestBreakWhenInactiveIsNoop(t *testing.T) {
	t.Parallel()
	if got := (domain.Timer{}).Break(); got.Broken {
		t.Fatalf("inactive timer must not break")
	}
	if _, session := (domain.Timer{}).Finalize(1 << 40); session != nil {
		t.Fatalf("inactive timer must not finalize")
	}
}

func TestComputeStats(t *testing.T) {
	t.Parallel()
	weekStart := int64(10_000_000)
	sessions := []domain.Session{
		{Start: 0, End: 1_800_000, Success: true, DurationMs: 1_800_000},
		{Start: 9_000_000, End: 12_600_000, Success: true, DurationMs: 3_600_000},
		{Start: 12_600_000, End: 14_400_000, Success: false, DurationMs: 1_800_000},
		{Start: 20_000_000, End: 21_800_000, Success: true, DurationMs: 1_800_000},
	}
	got := domain.ComputeStats(sessions, weekStart, domain.Timer{Active: true, EndMs: 99})
	want := domain.Stats{BlocksCompletedWeek: 2, BestBlockMs: 3_600_000, SuccessPct: 0.75, Active: true, EndMs: 99}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
	if empty := domain.ComputeStats(nil, 0, domain.Timer{}); empty.SuccessPct != 0 {
		t.Fatalf("no attempts must give 0.0, got %v", empty.SuccessPct)
	}
}
