package timetricks

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
)

var bahia = time.FixedZone("-03:00", -3*60*60)

func freeze(t *testing.T, now time.Time) {
	t.Helper()
	UseClock(clockwork.NewFakeClockAt(now))
	t.Cleanup(func() { UseClock(nil) })
}

func ExampleAddDays() {
	for _, n := range []int{0, 1, 6, 7, 365} {
		key, _ := AddDays("2026-01-31", n)
		fmt.Println(n, key)
	}
	// Output:
	// 0 2026-01-31
	// 1 2026-02-01
	// 6 2026-02-06
	// 7 2026-02-07
	// 365 2027-01-31
}

func TestAddDaysLeapYear(t *testing.T) {
	table := []struct {
		key  string
		n    int
		want string
	}{
		{"2028-02-28", 1, "2028-02-29"},
		{"2026-02-28", 1, "2026-03-01"},
		{"2026-12-29", 6, "2027-01-04"},
		{"2026-03-01", -1, "2026-02-28"},
	}
	for _, tc := range table {
		t.Run(fmt.Sprintf("%s%+d", tc.key, tc.n), func(t *testing.T) {
			got, err := AddDays(tc.key, tc.n)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, wanted %q", got, tc.want)
			}
		})
	}
}

func TestParseDateKeyRejects(t *testing.T) {
	for _, key := range []string{"", "2026-13-01", "2026-02-30", "05/01/2026", "2026-1-5"} {
		if _, err := ParseDateKey(key); err == nil {
			t.Errorf("ParseDateKey(%q) succeeded, wanted error", key)
		}
	}
}

func TestTodayKeyUsesOffset(t *testing.T) {
	// 01:30 UTC is still the previous evening in Bahia.
	freeze(t, time.Date(2026, time.January, 6, 1, 30, 0, 0, time.UTC))

	if got, want := TodayKey(bahia), "2026-01-05"; got != want {
		t.Errorf("got %q, wanted %q", got, want)
	}
	if got, want := TodayKey(time.UTC), "2026-01-06"; got != want {
		t.Errorf("got %q, wanted %q", got, want)
	}
}

func TestDay(t *testing.T) {
	// A Monday.
	now := time.Date(2026, time.January, 5, 9, 0, 0, 0, bahia)
	freeze(t, now)

	table := []struct {
		in   time.Time
		want string
	}{
		{AtClock(now, 16, 27), "Today"},
		{AtClock(now.AddDate(0, 0, 1), 3, 0), "Tomorrow"},
		{AtClock(now.AddDate(0, 0, 3), 13, 0), "Thursday"},
		{AtClock(now.AddDate(0, 0, 7), 13, 0), "01/12"},
		{AtClock(now.AddDate(0, 0, -1), 13, 0), "01/04"},
	}
	var got []string
	var want []string
	for _, tc := range table {
		got = append(got, Day(tc.in))
		want = append(want, tc.want)
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("wrong day names (-got,+want): %s", diff)
	}
}

func TestTrimClock(t *testing.T) {
	in := time.Date(2026, time.March, 8, 23, 59, 59, 5, bahia)
	want := time.Date(2026, time.March, 8, 0, 0, 0, 0, bahia)
	if got := TrimClock(in); !got.Equal(want) {
		t.Errorf("got %s, wanted %s", got, want)
	}
}
