package almanac

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	// A day line: day of month, an optional weekday abbreviation, then
	// whatever the table printed for that day.
	dayLine = regexp.MustCompile(`^\s*(\d{1,2})\s+(?:[A-ZÇ]{3})?\s*(.*)$`)
	// A reading: four digit clock time followed by a height in metres.
	readingPair = regexp.MustCompile(`\b(\d{4})\s+(-?\d+(?:\.\d+)?)\b`)
)

// Observation is one (clock time, height) pair read from a day line.
type Observation struct {
	// Clock is the local time as printed, "HHMM". Lexical order is
	// chronological order within a day.
	Clock string
	// Height in metres.
	Height float64
}

// At resolves the observation's clock time on the calendar day of day in loc.
func (o Observation) At(day time.Time, loc *time.Location) time.Time {
	h, m, _ := parseClock(o.Clock)
	y, mon, d := day.Date()
	return time.Date(y, mon, d, h, m, 0, 0, loc)
}

func (o Observation) String() string {
	return fmt.Sprintf("%s %g", o.Clock, o.Height)
}

// DayObservations maps a day of month to its observations, sorted by clock
// time without duplicates. Days without any observation are absent.
type DayObservations map[int][]Observation

// DayPairs extracts the observations of every day line in a month's text.
// Lines that are not day lines are skipped, as are day numbers outside 1-31
// and clock times that are not valid times of day. A day printed over several
// lines collects the pairs of all of them.
func DayPairs(segment string) DayObservations {
	days := make(DayObservations)
	for _, line := range strings.Split(segment, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := dayLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		day, err := strconv.Atoi(m[1])
		if err != nil || day < 1 || day > 31 {
			continue
		}
		for _, pair := range readingPair.FindAllStringSubmatch(m[2], -1) {
			if _, _, ok := parseClock(pair[1]); !ok {
				continue
			}
			height, err := strconv.ParseFloat(pair[2], 64)
			if err != nil {
				continue
			}
			days[day] = append(days[day], Observation{Clock: pair[1], Height: height})
		}
	}

	for day, obs := range days {
		days[day] = dedupSorted(obs)
	}
	return days
}

// dedupSorted drops repeated observations and orders the rest by clock time.
func dedupSorted(obs []Observation) []Observation {
	seen := make(map[Observation]bool, len(obs))
	out := make([]Observation, 0, len(obs))
	for _, o := range obs {
		if seen[o] {
			continue
		}
		seen[o] = true
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Clock < out[j].Clock
	})
	return out
}

// parseClock splits "HHMM" into hours and minutes.
func parseClock(s string) (hour, minute int, ok bool) {
	if len(s) != 4 {
		return 0, 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, 0, false
	}
	hour, minute = n/100, n%100
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
