package timetricks

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	dayFormat = "20060102"
	// KeyFormat is the layout of a date key, "YYYY-MM-DD".
	KeyFormat = "2006-01-02"

	prettyDayFmt = "01/02"
)

// clock is the time source for everything relative to "now". Tests freeze it
// with UseClock.
var clock = clockwork.NewRealClock()

// UseClock swaps the time source. Pass nil to go back to the real clock.
func UseClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

func SameDay(t time.Time, t2 time.Time) bool {
	return t.Format(dayFormat) == t2.Format(dayFormat)
}

func Today(t time.Time) bool {
	return SameDay(t, clock.Now().In(t.Location()))
}

func Tomorrow(t time.Time) bool {
	return Today(t.AddDate(0, 0, -1))
}

func TrimClock(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AtClock returns the time of day hour:minute on t's date.
func AtClock(t time.Time, hour, minute time.Duration) time.Time {
	return TrimClock(t).Add(hour*time.Hour + minute*time.Minute)
}

// Day names t's date relative to now: "Today", "Tomorrow", the weekday for the
// rest of the coming week, and "01/02" otherwise.
func Day(t time.Time) string {
	switch {
	case Today(t):
		return "Today"
	case Tomorrow(t):
		return "Tomorrow"
	}
	today := TrimClock(clock.Now().In(t.Location()))
	if !t.Before(today) && t.Before(today.AddDate(0, 0, 7)) {
		return t.Weekday().String()
	}
	return t.Format(prettyDayFmt)
}

// ParseDateKey parses a "YYYY-MM-DD" date key into midnight UTC of that date.
// Date keys carry no zone; UTC only gives the arithmetic a fixed frame.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(KeyFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}

// DateKey formats t's calendar date in its own location.
func DateKey(t time.Time) string {
	return t.Format(KeyFormat)
}

// AddDays moves a date key by n calendar days.
func AddDays(key string, n int) (string, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return "", err
	}
	return DateKey(t.AddDate(0, 0, n)), nil
}

// TodayKey is the current date key in loc.
func TodayKey(loc *time.Location) string {
	return DateKey(clock.Now().In(loc))
}
