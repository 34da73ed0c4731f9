package domain

import (
	"ritual/internal/platform/calendar"
)

const (
	SchemaVersion = 1

	InstagramPackage = "com.instagram.android"
	UnknownSource    = "unknown"

	CleanBlock30Ms = int64(30 * 60_000)
	CleanBlock60Ms = int64(60 * 60_000)
	CleanBlock90Ms = int64(90 * 60_000)

	reinstallWindowMs = 6 * calendar.DayMs
	installedType     = "installed"
)

type UnlockEvent struct {
	TS                 int64
	SincePrevMs        int64
	SessionMs          int64
	Impulsive          bool
	ImpulsiveConscious bool
	Reactive           bool
	ReactiveSourceApp  string
	FirstApp           string
	FirstAppDelayMs    *int64
}

type InstagramEvent struct {
	TS   int64
	Type string
}

type Usage struct {
	TotalMs  int64
	ByApp    map[string]int64
	HourlyMs [24]int64
}

type DayInput struct {
	DayStartMs         int64
	DayEndMs           int64
	Unlocks            []UnlockEvent
	Usage              Usage
	InstagramInstalled bool
	InstagramEvents    []InstagramEvent
}

// DaySummary is the materialized metrics row for one Europe/Madrid day.
type DaySummary struct {
	DayKey                   string           `json:"dayKey"`
	DayStartMs               int64            `json:"dayStartMs"`
	UnlockCount              int              `json:"unlockCount"`
	AvgGapMs                 int64            `json:"avgGapMs"`
	BestStreakMs             int64            `json:"bestStreakMs"`
	ImpulsiveCount           int              `json:"impulsiveCount"`
	ImpulsivePct             float64          `json:"impulsivePct"`
	ImpulsiveConsciousCount  int              `json:"impulsiveConsciousCount"`
	ImpulsiveConsciousPct    float64          `json:"impulsiveConsciousPct"`
	ReactiveCount            int              `json:"reactiveCount"`
	ReactivePct              float64          `json:"reactivePct"`
	ReactiveTopApps          map[string]int   `json:"reactiveTopApps"`
	CleanBlocks30            int              `json:"cleanBlocks30"`
	CleanBlocks60            int              `json:"cleanBlocks60"`
	CleanBlocks90            int              `json:"cleanBlocks90"`
	InstagramFirstAppCount   int              `json:"instagramFirstAppCount"`
	InstagramInstalled       bool             `json:"instagramInstalled"`
	InstagramReinstallsTotal int              `json:"instagramReinstallsTotal"`
	InstagramReinstallsWeek  int              `json:"instagramReinstallsWeek"`
	AvgDelayToInstagramMs    *int64           `json:"avgDelayToInstagramMs"`
	TotalUsageMs             int64            `json:"totalUsageMs"`
	HourlyMs                 [24]int64        `json:"hourlyMs"`
	TopAppsMs                map[string]int64 `json:"topAppsMs"`
}

// Compute builds the summary for [DayStartMs, DayEndMs]. It has no side
// effects and returns equal values for equal inputs.
func Compute(in DayInput) DaySummary {
	day := make([]UnlockEvent, 0, len(in.Unlocks))
	for _, e := range in.Unlocks {
		if e.TS >= in.DayStartMs && e.TS <= in.DayEndMs {
			day = append(day, e)
		}
	}

	s := DaySummary{
		DayKey:          calendar.DayKey(in.DayStartMs),
		DayStartMs:      in.DayStartMs,
		UnlockCount:     len(day),
		ReactiveTopApps: map[string]int{},
		TopAppsMs:       map[string]int64{},
	}

	var gapSum int64
	gaps := 0
	var delaySum int64
	delays := 0
	for _, e := range day {
		if gap := e.SincePrevMs; gap > 0 {
			gapSum += gap
			gaps++
			if gap > s.BestStreakMs {
				s.BestStreakMs = gap
			}
			if gap >= CleanBlock30Ms {
				s.CleanBlocks30++
			}
			if gap >= CleanBlock60Ms {
				s.CleanBlocks60++
			}
			if gap >= CleanBlock90Ms {
				s.CleanBlocks90++
			}
		}
		if e.Impulsive {
			s.ImpulsiveCount++
		}
		if e.ImpulsiveConscious {
			s.ImpulsiveConsciousCount++
		}
		if e.Reactive {
			s.ReactiveCount++
			source := e.ReactiveSourceApp
			if source == "" {
				source = UnknownSource
			}
			s.ReactiveTopApps[source]++
		}
		if e.FirstApp == InstagramPackage {
			s.InstagramFirstAppCount++
			if e.FirstAppDelayMs != nil && *e.FirstAppDelayMs >= 0 {
				delaySum += *e.FirstAppDelayMs
				delays++
			}
		}
	}
	if gaps > 0 {
		s.AvgGapMs = gapSum / int64(gaps)
	}
	if delays > 0 {
		avg := delaySum / int64(delays)
		s.AvgDelayToInstagramMs = &avg
	}
	s.ImpulsivePct = ratio(s.ImpulsiveCount, s.UnlockCount)
	s.ImpulsiveConsciousPct = ratio(s.ImpulsiveConsciousCount, s.UnlockCount)
	s.ReactivePct = ratio(s.ReactiveCount, s.UnlockCount)

	weekFrom := in.DayStartMs - reinstallWindowMs
	for _, e := range in.InstagramEvents {
		if e.Type != installedType {
			continue
		}
		s.InstagramReinstallsTotal++
		if e.TS >= weekFrom {
			s.InstagramReinstallsWeek++
		}
	}
	s.InstagramInstalled = in.InstagramInstalled

	s.TotalUsageMs = in.Usage.TotalMs
	s.HourlyMs = in.Usage.HourlyMs
	for pkg, ms := range in.Usage.ByApp {
		s.TopAppsMs[pkg] = ms
	}
	return s
}

func ratio(count, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(count) / float64(total)
}
