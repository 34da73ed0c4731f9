package domain

import (
	"sort"

	"ritual/internal/platform/calendar"
)

type Kind string

const (
	KindActivityResumed   Kind = "activity_resumed"
	KindMovedToForeground Kind = "moved_to_foreground"
	KindActivityPaused    Kind = "activity_paused"
	KindMovedToBackground Kind = "moved_to_background"
)

func (k Kind) Foreground() bool {
	return k == KindActivityResumed || k == KindMovedToForeground
}

func (k Kind) Background() bool {
	return k == KindActivityPaused || k == KindMovedToBackground
}

func (k Kind) Valid() bool {
	return k.Foreground() || k.Background()
}

// Transition is one app moving into or out of the foreground.
type Transition struct {
	Package string `json:"package"`
	Kind    Kind   `json:"kind"`
	TS      int64  `json:"ts"`
}

type DayUsage struct {
	TotalMs  int64
	ByApp    map[string]int64
	HourlyMs [24]int64
}

func EmptyDay() DayUsage {
	return DayUsage{ByApp: map[string]int64{}}
}

type Foreground struct {
	Package string
	DelayMs int64
}

// ForDay pairs each foreground transition with the next background transition
// of the same package inside [dayStart, dayEnd]. Each span is credited to the
// local hour it started in. Unpaired transitions contribute nothing.
func ForDay(transitions []Transition, dayStart, dayEnd int64) DayUsage {
	usage := EmptyDay()
	started := map[string]int64{}
	for _, t := range inWindow(transitions, dayStart, dayEnd) {
		switch {
		case t.Kind.Foreground():
			started[t.Package] = t.TS
		case t.Kind.Background():
			start, ok := started[t.Package]
			if !ok {
				continue
			}
			delete(started, t.Package)
			span := t.TS - start
			if span < 0 {
				span = 0
			}
			usage.HourlyMs[calendar.Hour(start)] += span
			usage.ByApp[t.Package] += span
			usage.TotalMs += span
		}
	}
	return usage
}

// FirstForeground finds the earliest foreground transition in [start, end]
// whose package is not excluded.
func FirstForeground(transitions []Transition, start, end int64, excluded ...string) (Foreground, bool) {
	skip := make(map[string]struct{}, len(excluded))
	for _, pkg := range excluded {
		skip[pkg] = struct{}{}
	}
	for _, t := range inWindow(transitions, start, end) {
		if !t.Kind.Foreground() {
			continue
		}
		if _, ok := skip[t.Package]; ok {
			continue
		}
		delay := t.TS - start
		if delay < 0 {
			delay = 0
		}
		return Foreground{Package: t.Package, DelayMs: delay}, true
	}
	return Foreground{}, false
}

func inWindow(transitions []Transition, start, end int64) []Transition {
	out := make([]Transition, 0, len(transitions))
	for _, t := range transitions {
		if t.TS >= start && t.TS <= end {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TS < out[j].TS })
	return out
}
