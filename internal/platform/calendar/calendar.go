// Package calendar owns day bucketing. Every day boundary, day key and week
// start in the application is computed here, always in Europe/Madrid.
package calendar

import (
	"time"
	_ "time/tzdata"
)

const (
	ZoneName  = "Europe/Madrid"
	KeyLayout = "2006-01-02"
	DayMs     = int64(24 * time.Hour / time.Millisecond)
)

var zone = mustLoad(ZoneName)

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic("calendar: load " + name + ": " + err.Error())
	}
	return loc
}

// Day is one aggregation bucket. EndMs is inclusive: the last millisecond
// before the next local midnight.
type Day struct {
	Key     string
	StartMs int64
	EndMs   int64
}

func Zone() *time.Location {
	return zone
}

func local(ms int64) time.Time {
	return time.UnixMilli(ms).In(zone)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, zone)
}

// DayKey formats the local calendar date of ms as YYYY-MM-DD.
func DayKey(ms int64) string {
	return local(ms).Format(KeyLayout)
}

// DayOf returns the bucket containing ms. DST days are 23 or 25 hours long.
func DayOf(ms int64) Day {
	start := midnight(local(ms))
	next := start.AddDate(0, 0, 1)
	return Day{
		Key:     start.Format(KeyLayout),
		StartMs: start.UnixMilli(),
		EndMs:   next.UnixMilli() - 1,
	}
}

// ParseDay resolves a YYYY-MM-DD key to its bucket.
func ParseDay(key string) (Day, error) {
	t, err := time.ParseInLocation(KeyLayout, key, zone)
	if err != nil {
		return Day{}, err
	}
	return DayOf(t.UnixMilli()), nil
}

// DaysBetween lists every bucket that overlaps [startMs, endMs], in order.
func DaysBetween(startMs, endMs int64) []Day {
	if endMs < startMs {
		return nil
	}
	out := []Day{}
	last := DayOf(endMs).Key
	cur := midnight(local(startMs))
	for {
		next := cur.AddDate(0, 0, 1)
		day := Day{Key: cur.Format(KeyLayout), StartMs: cur.UnixMilli(), EndMs: next.UnixMilli() - 1}
		out = append(out, day)
		if day.Key == last {
			return out
		}
		cur = next
	}
}

// WeekStart returns local Monday 00:00 of the ISO week containing ms.
func WeekStart(ms int64) int64 {
	day := midnight(local(ms))
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset).UnixMilli()
}

// Hour returns the local hour of day, 0-23.
func Hour(ms int64) int {
	return local(ms).Hour()
}

// LastDays returns the range covering the n local days ending with the day
// containing nowMs. n below 1 is treated as 1.
func LastDays(nowMs int64, n int) (int64, int64) {
	if n < 1 {
		n = 1
	}
	today := midnight(local(nowMs))
	first := today.AddDate(0, 0, -(n - 1))
	return first.UnixMilli(), today.AddDate(0, 0, 1).UnixMilli() - 1
}
