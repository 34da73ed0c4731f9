package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	summarystore "ritual/internal/modules/summary/adapter/out"
	"ritual/internal/modules/summary/domain"
	"ritual/internal/modules/summary/service"
	"ritual/internal/platform/calendar"
	apperrors "ritual/internal/platform/errors"
	"ritual/internal/platform/kv"
)

type fakeUnlocks struct {
	events []domain.UnlockEvent
}

func (f *fakeUnlocks) UnlockEvents(context.Context) ([]domain.UnlockEvent, error) {
	return f.events, nil
}

type fakeUsage struct {
	err   error
	calls []int64
}

func (f *fakeUsage) UsageForDay(_ context.Context, start, _ int64) (domain.Usage, error) {
	f.calls = append(f.calls, start)
	if f.err != nil {
		return domain.Usage{}, f.err
	}
	u := domain.Usage{TotalMs: 1_000, ByApp: map[string]int64{"com.a": 1_000}}
	u.HourlyMs[calendar.Hour(start)] = 1_000
	return u, nil
}

type fakeInstagram struct{}

func (fakeInstagram) InstagramEvents(context.Context) ([]domain.InstagramEvent, error) {
	return nil, nil
}
func (fakeInstagram) InstagramInstalled(context.Context) (bool, error) { return false, nil }

type fakeExporter struct {
	exported []string
}

func (f *fakeExporter) Export(_ context.Context, s domain.DaySummary) (string, error) {
	f.exported = append(f.exported, s.DayKey)
	return "/vault/" + s.DayKey + ".md", nil
}

func at(y int, m time.Month, d, h int) int64 {
	return time.Date(y, m, d, h, 0, 0, 0, calendar.Zone()).UnixMilli()
}

func newService(store kv.Store, unlocks *fakeUnlocks, usage *fakeUsage, exporter *fakeExporter) *service.SummaryService {
	return service.NewSummaryService(service.Dependencies{
		Cache:     summarystore.NewKVCache(store, nil),
		Unlocks:   unlocks,
		Usage:     usage,
		Instagram: fakeInstagram{},
		Exporter:  exporter,
	})
}

func TestDailySummariesCoverEveryOverlappingDay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	unlocks := &fakeUnlocks{events: []domain.UnlockEvent{
		{TS: at(2026, 10, 24, 10)},
		{TS: at(2026, 10, 25, 23), SincePrevMs: 1},
		{TS: at(2026, 10, 26, 1), SincePrevMs: 2},
	}}
	usage := &fakeUsage{}
	svc := newService(kv.NewMemoryStore(), unlocks, usage, nil)

	start := at(2026, 10, 24, 0)
	end := at(2026, 10, 26, 0)
	got, err := svc.DailySummaries(ctx, start, end)
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected three days, got %d", len(got))
	}
	wantKeys := []string{"2026-10-24", "2026-10-25", "2026-10-26"}
	for i, s := range got {
		if s.DayKey != wantKeys[i] {
			t.Fatalf("day %d: key %s, want %s", i, s.DayKey, wantKeys[i])
		}
		if s.UnlockCount != 1 {
			t.Fatalf("day %s: expected one unlock, got %d", s.DayKey, s.UnlockCount)
		}
		if s.TotalUsageMs != 1_000 {
			t.Fatalf("day %s: usage not attached", s.DayKey)
		}
	}
	if len(usage.calls) != 3 {
		t.Fatalf("usage must be queried once per day, got %d", len(usage.calls))
	}
}

func TestDailySummariesFilterByDayStartButCacheAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	svc := newService(store, &fakeUnlocks{}, &fakeUsage{}, nil)

	got, err := svc.DailySummaries(ctx, at(2026, 10, 19, 12), at(2026, 10, 20, 12))
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}
	if len(got) != 1 || got[0].DayKey != "2026-10-20" {
		t.Fatalf("only days starting inside the range are returned, got %+v", got)
	}

	cached, err := summarystore.NewKVCache(store, nil).Load(ctx)
	if err != nil {
		t.Fatalf("load cache: %v", err)
	}
	if _, ok := cached["2026-10-19"]; !ok {
		t.Fatalf("partially covered day must still be cached")
	}
	if len(cached) != 2 {
		t.Fatalf("expected two cached days, got %d", len(cached))
	}
}

func TestDailySummariesRecomputeOverwritesCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	unlocks := &fakeUnlocks{}
	svc := newService(store, unlocks, &fakeUsage{}, nil)
	day := calendar.DayOf(at(2026, 10, 19, 12))

	first, err := svc.DailySummaries(ctx, day.StartMs, day.EndMs)
	if err != nil || first[0].UnlockCount != 0 {
		t.Fatalf("first pass: %+v err=%v", first, err)
	}
	unlocks.events = append(unlocks.events, domain.UnlockEvent{TS: day.StartMs + 5})
	second, err := svc.DailySummaries(ctx, day.StartMs, day.EndMs)
	if err != nil || second[0].UnlockCount != 1 {
		t.Fatalf("second pass must see the new unlock: %+v err=%v", second, err)
	}
}

func TestUsageFailureYieldsZeroedRow(t *testing.T) {
	t.Parallel()
	svc := newService(kv.NewMemoryStore(), &fakeUnlocks{}, &fakeUsage{err: errors.New("permission denied")}, nil)
	day := calendar.DayOf(at(2026, 10, 19, 12))
	got, err := svc.DailySummaries(context.Background(), day.StartMs, day.EndMs)
	if err != nil {
		t.Fatalf("usage failure must not propagate: %v", err)
	}
	if got[0].TotalUsageMs != 0 || got[0].TopAppsMs == nil {
		t.Fatalf("expected zeroed usage, got %+v", got[0])
	}
}

func TestInvertedRangeIsRejected(t *testing.T) {
	t.Parallel()
	svc := newService(kv.NewMemoryStore(), &fakeUnlocks{}, &fakeUsage{}, nil)
	if _, err := svc.DailySummaries(context.Background(), 10, 5); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestRangeLongerThanAYearIsRejected(t *testing.T) {
	t.Parallel()
	svc := newService(kv.NewMemoryStore(), &fakeUnlocks{}, &fakeUsage{}, nil)
	ctx := context.Background()

	first, err := calendar.ParseDay("2025-01-01")
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	last, err := calendar.ParseDay("2026-01-01")
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	days, err := svc.DailySummaries(ctx, first.StartMs, last.StartMs-1)
	if err != nil {
		t.Fatalf("a full year must be accepted: %v", err)
	}
	if len(days) != 365 {
		t.Fatalf("expected 365 days, got %d", len(days))
	}

	if _, err := svc.DailySummaries(ctx, first.StartMs, last.EndMs+service.MaxRangeDays*86_400_000); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for an oversized range, got %v", err)
	}
	if _, err := svc.DailySummaries(ctx, 0, last.EndMs); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input from epoch, got %v", err)
	}
}

func TestExportDay(t *testing.T) {
	t.Parallel()
	exporter := &fakeExporter{}
	svc := newService(kv.NewMemoryStore(), &fakeUnlocks{}, &fakeUsage{}, exporter)

	summary, path, err := svc.ExportDay(context.Background(), "2026-10-19")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if summary.DayKey != "2026-10-19" || path != "/vault/2026-10-19.md" {
		t.Fatalf("unexpected export %s %s", summary.DayKey, path)
	}
	if _, _, err := svc.ExportDay(context.Background(), "19/10/2026"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
