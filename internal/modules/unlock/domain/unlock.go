package domain

const (
	ImpulsiveMinMs   = 1
	ImpulsiveMaxMs   = 15_000
	ReactiveWindowMs = 10_000
)

// Event is one completed unlock-to-lock session.
type Event struct {
	TS                 int64  `json:"ts"`
	SincePrevMs        int64  `json:"sincePrevMs"`
	SessionMs          int64  `json:"sessionMs"`
	Impulsive          bool   `json:"impulsive"`
	ImpulsiveConscious bool   `json:"impulsiveConscious"`
	Reactive           bool   `json:"reactive"`
	ReactiveSourceApp  string `json:"reactiveSourceApp,omitempty"`
	FirstApp           string `json:"firstApp,omitempty"`
	FirstAppDelayMs    *int64 `json:"firstAppDelayMs,omitempty"`
}

type Notification struct {
	Package string `json:"package"`
	TS      int64  `json:"ts"`
}

type FirstApp struct {
	Package string
	DelayMs int64
}

type PendingSession struct {
	StartMs     int64 `json:"startMs"`
	SincePrevMs int64 `json:"sincePrevMs"`
}

// State is Idle when Pending is nil and PendingUnlock otherwise.
type State struct {
	Pending      *PendingSession `json:"pending,omitempty"`
	LastUnlockMs int64           `json:"lastUnlockMs"`
	HasUnlocked  bool            `json:"hasUnlocked"`
}

// Unlock moves to PendingUnlock at ts. A session that never saw its lock is
// returned as stale; the caller finalizes it with ts as the end.
func (s State) Unlock(ts int64) (State, *PendingSession) {
	stale := s.Pending
	var since int64
	// States saved before hasUnlocked existed only carry a non-zero timestamp.
	if s.HasUnlocked || s.LastUnlockMs != 0 {
		since = ts - s.LastUnlockMs
	}
	return State{
		Pending:      &PendingSession{StartMs: ts, SincePrevMs: since},
		LastUnlockMs: ts,
		HasUnlocked:  true,
	}, stale
}

// Lock moves to Idle and returns the session to finalize, or nil when idle.
func (s State) Lock() (State, *PendingSession) {
	return State{LastUnlockMs: s.LastUnlockMs, HasUnlocked: s.HasUnlocked}, s.Pending
}

func IsImpulsive(sessionMs int64) bool {
	return sessionMs >= ImpulsiveMinMs && sessionMs <= ImpulsiveMaxMs
}

// LatestNotificationBefore returns the newest notification posted at or
// before unlockMs and no more than windowMs earlier.
func LatestNotificationBefore(notifications []Notification, unlockMs, windowMs int64) (Notification, bool) {
	var best Notification
	found := false
	for _, n := range notifications {
		if n.TS > unlockMs || unlockMs-n.TS > windowMs {
			continue
		}
		if !found || n.TS >= best.TS {
			best = n
			found = true
		}
	}
	return best, found
}

// Finalize builds the event for a pending session ending at end.
func Finalize(p PendingSession, end int64, first *FirstApp, source *Notification, impulsiveAlerts bool) Event {
	sessionMs := end - p.StartMs
	if sessionMs < 0 {
		sessionMs = 0
	}
	impulsive := IsImpulsive(sessionMs)
	event := Event{
		TS:                 p.StartMs,
		SincePrevMs:        p.SincePrevMs,
		SessionMs:          sessionMs,
		Impulsive:          impulsive,
		ImpulsiveConscious: impulsive && impulsiveAlerts,
		Reactive:           source != nil,
	}
	if source != nil {
		event.ReactiveSourceApp = source.Package
	}
	if first != nil {
		delay := first.DelayMs
		event.FirstApp = first.Package
		event.FirstAppDelayMs = &delay
	}
	return event
}
