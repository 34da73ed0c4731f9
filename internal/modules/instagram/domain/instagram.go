package domain

const (
	Package       = "com.instagram.android"
	DefaultReason = "other"
)

type Type string

const (
	TypeInstalled   Type = "installed"
	TypeUninstalled Type = "uninstalled"
)

type Event struct {
	TS             int64   `json:"ts"`
	Type           Type    `json:"type"`
	ReasonCaptured bool    `json:"reasonCaptured"`
	Reason         string  `json:"reason,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// Installed reports whether the most recent event is an install. An empty
// history means not installed.
func Installed(events []Event) bool {
	if len(events) == 0 {
		return false
	}
	return events[len(events)-1].Type == TypeInstalled
}

// AttachReason sets the relapse reason on every event at exactly ts and
// returns how many matched. Events are modified in place.
func AttachReason(events []Event, ts int64, reason string, notes *string) int {
	if reason == "" {
		reason = DefaultReason
	}
	matched := 0
	for i := range events {
		if events[i].TS != ts {
			continue
		}
		events[i].Reason = reason
		events[i].Notes = notes
		events[i].ReasonCaptured = true
		matched++
	}
	return matched
}
