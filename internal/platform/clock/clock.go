package clock

import "time"

// Clock abstracts time so signal handling and stats stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// NowMillis returns the clock reading as epoch milliseconds, the unit every
// persisted log uses.
func NowMillis(c Clock) int64 {
	return c.Now().UnixMilli()
}
