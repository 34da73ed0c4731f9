package summaries_test

import (
	"strings"
	"testing"

	summarydto "ritual/internal/modules/summary/dto"
	"ritual/internal/ui/views/summaries"
)

func TestFormatDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0s"},
		{-5, "0s"},
		{42_000, "42s"},
		{5*60_000 + 7_000, "5m07s"},
		{2*3_600_000 + 3*60_000, "2h03m"},
	}
	for _, tt := range tests {
		if got := summaries.FormatDuration(tt.ms); got != tt.want {
			t.Fatalf("FormatDuration(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestSparklineScalesToPeak(t *testing.T) {
	t.Parallel()
	var hourly [24]int64
	hourly[8] = 100
	hourly[20] = 50
	line := []rune(summaries.Sparkline(hourly))
	if len(line) != 24 {
		t.Fatalf("expected 24 cells, got %d", len(line))
	}
	if line[8] != '█' {
		t.Fatalf("peak hour should be full, got %q", line[8])
	}
	if line[0] != ' ' {
		t.Fatalf("idle hour should be blank, got %q", line[0])
	}
	if line[20] == ' ' || line[20] == '█' {
		t.Fatalf("half hour should be partial, got %q", line[20])
	}
}

func TestRenderDayOmitsMissingDelay(t *testing.T) {
	t.Parallel()
	day := summarydto.DaySummaryOutput{
		DayKey:          "2026-03-10",
		UnlockCount:     4,
		ReactiveTopApps: map[string]int{"com.whatsapp": 2},
		TopAppsMs:       map[string]int64{"com.whatsapp": 60_000},
	}
	out := summaries.RenderDay(day)
	if !strings.Contains(out, "2026-03-10") || !strings.Contains(out, "com.whatsapp") {
		t.Fatalf("render missing content:\n%s", out)
	}
	if strings.Contains(out, "avg delay") {
		t.Fatalf("avg delay should be hidden without instagram opens")
	}
	delay := int64(3_000)
	day.AvgDelayToInstagramMs = &delay
	if !strings.Contains(summaries.RenderDay(day), "avg delay") {
		t.Fatalf("avg delay should render when present")
	}
}
