package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"ritual/internal/modules/summary/domain"
	summaryout "ritual/internal/modules/summary/port/out"
	"ritual/internal/platform/calendar"
	apperrors "ritual/internal/platform/errors"
)

// MaxRangeDays bounds one DailySummaries call.
const MaxRangeDays = 366

const dayMs = 86_400_000

type Dependencies struct {
	Cache     summaryout.Cache
	Unlocks   summaryout.UnlockSource
	Usage     summaryout.UsageSource
	Instagram summaryout.InstagramSource
	Exporter  summaryout.Exporter
	Logger    *zap.Logger
}

type SummaryService struct {
	deps   Dependencies
	logger *zap.Logger
}

func NewSummaryService(deps Dependencies) *SummaryService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummaryService{deps: deps, logger: logger}
}

// DailySummaries recomputes every day overlapping [startMs, endMs], stores
// the results in the cache and returns the cached days starting inside the
// range, oldest first. Past days are recomputed too: trimming a log can
// change them.
func (s *SummaryService) DailySummaries(ctx context.Context, startMs, endMs int64) ([]domain.DaySummary, error) {
	if endMs < startMs {
		return nil, fmt.Errorf("%w: end %d is before start %d", apperrors.ErrInvalidInput, endMs, startMs)
	}
	if endMs-startMs > (MaxRangeDays+1)*dayMs {
		return nil, fmt.Errorf("%w: range covers more than %d days", apperrors.ErrInvalidInput, MaxRangeDays)
	}
	days := calendar.DaysBetween(startMs, endMs)
	if len(days) > MaxRangeDays {
		return nil, fmt.Errorf("%w: range covers %d days, limit is %d", apperrors.ErrInvalidInput, len(days), MaxRangeDays)
	}
	unlocks, err := s.deps.Unlocks.UnlockEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("read unlock events: %w", err)
	}
	igEvents, err := s.deps.Instagram.InstagramEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("read instagram events: %w", err)
	}
	installed, err := s.deps.Instagram.InstagramInstalled(ctx)
	if err != nil {
		return nil, fmt.Errorf("read instagram state: %w", err)
	}
	cached, err := s.deps.Cache.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load summary cache: %w", err)
	}

	for _, day := range days {
		summary := domain.Compute(domain.DayInput{
			DayStartMs:         day.StartMs,
			DayEndMs:           day.EndMs,
			Unlocks:            unlocks,
			Usage:              s.usageForDay(ctx, day),
			InstagramInstalled: installed,
			InstagramEvents:    igEvents,
		})
		cached[summary.DayKey] = summary
	}
	if err := s.deps.Cache.Save(ctx, cached); err != nil {
		return nil, fmt.Errorf("save summary cache: %w", err)
	}

	out := make([]domain.DaySummary, 0)
	for _, summary := range cached {
		if summary.DayStartMs >= startMs && summary.DayStartMs <= endMs {
			out = append(out, summary)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayStartMs < out[j].DayStartMs })
	s.logger.Debug("summaries computed", zap.Int64("start_ms", startMs), zap.Int64("end_ms", endMs), zap.Int("returned", len(out)))
	return out, nil
}

// usageForDay treats unavailable usage data as an empty day.
func (s *SummaryService) usageForDay(ctx context.Context, day calendar.Day) domain.Usage {
	usage, err := s.deps.Usage.UsageForDay(ctx, day.StartMs, day.EndMs)
	if err != nil {
		s.logger.Warn("usage unavailable", zap.String("day", day.Key), zap.Error(err))
		return domain.Usage{ByApp: map[string]int64{}}
	}
	return usage
}

// ExportDay refreshes one day and writes it as a vault note.
func (s *SummaryService) ExportDay(ctx context.Context, dayKey string) (domain.DaySummary, string, error) {
	day, err := calendar.ParseDay(dayKey)
	if err != nil {
		return domain.DaySummary{}, "", fmt.Errorf("%w: day %q: %v", apperrors.ErrInvalidInput, dayKey, err)
	}
	if s.deps.Exporter == nil {
		return domain.DaySummary{}, "", fmt.Errorf("summary exporter is not configured")
	}
	summaries, err := s.DailySummaries(ctx, day.StartMs, day.EndMs)
	if err != nil {
		return domain.DaySummary{}, "", err
	}
	if len(summaries) == 0 {
		return domain.DaySummary{}, "", apperrors.ErrNotFound
	}
	path, err := s.deps.Exporter.Export(ctx, summaries[0])
	if err != nil {
		return domain.DaySummary{}, "", err
	}
	return summaries[0], path, nil
}
