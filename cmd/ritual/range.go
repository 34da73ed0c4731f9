package main

import (
	"fmt"
	"strconv"
	"strings"

	"ritual/internal/platform/calendar"
)

const defaultSummaryDays = 7

// summaryRange resolves --from/--to. Each bound is a YYYY-MM-DD key or epoch
// milliseconds; a day key covers its whole day. Missing bounds default to the
// last seven days ending today.
func summaryRange(from, to string, nowMs int64) (int64, int64, error) {
	start, end := calendar.LastDays(nowMs, defaultSummaryDays)
	var err error
	if strings.TrimSpace(from) != "" {
		if start, err = parseBound(from, false); err != nil {
			return 0, 0, fmt.Errorf("--from: %w", err)
		}
	}
	if strings.TrimSpace(to) != "" {
		if end, err = parseBound(to, true); err != nil {
			return 0, 0, fmt.Errorf("--to: %w", err)
		}
	}
	if end < start {
		return 0, 0, fmt.Errorf("--to is before --from")
	}
	return start, end, nil
}

func parseBound(raw string, isEnd bool) (int64, error) {
	raw = strings.TrimSpace(raw)
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return ms, nil
	}
	day, err := calendar.ParseDay(raw)
	if err != nil {
		return 0, fmt.Errorf("expected YYYY-MM-DD or epoch ms, got %q", raw)
	}
	if isEnd {
		return day.EndMs, nil
	}
	return day.StartMs, nil
}
