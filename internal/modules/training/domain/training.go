package domain

const DefaultMinutes = 30

const minuteMs = int64(60_000)

// Timer is Inactive, Active or Active+Broken. StartMs and EndMs survive
// finalization so the last scheduled end stays visible.
type Timer struct {
	Active  bool  `json:"active"`
	Broken  bool  `json:"broken"`
	StartMs int64 `json:"startMs"`
	EndMs   int64 `json:"endMs"`
}

type Session struct {
	Start      int64 `json:"start"`
	End        int64 `json:"end"`
	Success    bool  `json:"success"`
	DurationMs int64 `json:"durationMs"`
}

type Stats struct {
	BlocksCompletedWeek int
	BestBlockMs         int64
	SuccessPct          float64
	Active              bool
	EndMs               int64
}

// StartTimer replaces whatever timer was running.
func StartTimer(nowMs int64, minutes int) Timer {
	return Timer{Active: true, StartMs: nowMs, EndMs: nowMs + int64(minutes)*minuteMs}
}

// Break marks an active timer as broken. Inactive timers are unchanged.
func (t Timer) Break() Timer {
	if t.Active {
		t.Broken = true
	}
	return t
}

// Finalize closes an active timer whose end has passed and returns the
// recorded session, or nil when nothing ended.
func (t Timer) Finalize(nowMs int64) (Timer, *Session) {
	if !t.Active || nowMs < t.EndMs {
		return t, nil
	}
	duration := t.EndMs - t.StartMs
	if duration < 0 {
		duration = 0
	}
	session := &Session{Start: t.StartMs, End: t.EndMs, Success: !t.Broken, DurationMs: duration}
	t.Active = false
	t.Broken = false
	return t, session
}

// ComputeStats summarizes history. Only successful sessions ending at or
// after weekStart count toward the week.
func ComputeStats(sessions []Session, weekStart int64, timer Timer) Stats {
	stats := Stats{Active: timer.Active, EndMs: timer.EndMs}
	successes := 0
	for _, s := range sessions {
		if !s.Success {
			continue
		}
		successes++
		if s.DurationMs > stats.BestBlockMs {
			stats.BestBlockMs = s.DurationMs
		}
		if s.End >= weekStart {
			stats.BlocksCompletedWeek++
		}
	}
	if len(sessions) > 0 {
		stats.SuccessPct = float64(successes) / float64(len(sessions))
	}
	return stats
}
