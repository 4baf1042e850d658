package meta

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"

	"github.com/spencer-p/tidetable/pkg/timetricks"
)

var brt = time.FixedZone("-03:00", -3*60*60)

// freeze pins the package clock to now for the rest of the test.
func freeze(t *testing.T, now time.Time) {
	t.Helper()
	timetricks.UseClock(clockwork.NewFakeClockAt(now))
	t.Cleanup(func() { timetricks.UseClock(nil) })
}

func TestGoodTimeString(t *testing.T) {
	now := time.Date(2026, time.January, 30, 9, 0, 0, 0, brt)
	freeze(t, now)

	table := []struct {
		gt   GoodTime
		want string
	}{{
		gt: GoodTime{
			// seconds and nseconds should be unused
			Time:    time.Date(1999, time.January, 5, 5, 35, 20, 4, brt),
			Reasons: []string{"there is no swell"},
		},
		want: "01/05 at 05:35, there is no swell",
	}, {
		gt: GoodTime{
			Time: timetricks.AtClock(now, 16, 27),
			Reasons: []string{
				"tide is low at 0.10 m",
				"the sun is up",
			},
		},
		want: "Today at 16:27, tide is low at 0.10 m and the sun is up",
	}, {
		gt: GoodTime{
			Time:    timetricks.AtClock(now.AddDate(0, 0, 1), 12, 55),
			Reasons: []string{"tide is low at 0.00 m"},
		},
		want: "Tomorrow at 12:55, tide is low at 0.00 m",
	}, {
		gt: GoodTime{
			// Three days out is named by its weekday.
			Time:    timetricks.AtClock(now.AddDate(0, 0, 3), 13, 0),
			Reasons: []string{"the weather is nice"},
		},
		want: "Monday at 13:00, the weather is nice",
	}}

	for _, tc := range table {
		t.Run(tc.want, func(t *testing.T) {
			got := tc.gt.String()
			if got != tc.want {
				t.Errorf("got %q, wanted %q", got, tc.want)
			}
		})
	}
}

func TestGoodTimeJSON(t *testing.T) {
	freeze(t, time.Date(2026, time.January, 30, 9, 0, 0, 0, brt))

	gt := GoodTime{
		Time:    time.Date(2026, time.January, 30, 10, 15, 0, 0, brt),
		Reasons: []string{"tide is low at 0.10 m"},
	}

	blob, err := json.Marshal(&gt)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	want := `{"time":"2026-01-30T10:15:00-03:00","reasons":["tide is low at 0.10 m"],"pretty_time":"Today at 10:15"}`
	if diff := cmp.Diff(want, string(blob)); diff != "" {
		t.Errorf("unexpected JSON (-want,+got):\n%s", diff)
	}

	var got GoodTime
	if err := json.Unmarshal(blob, &got); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if diff := cmp.Diff(gt.String(), got.String()); diff != "" {
		t.Errorf("failed round trip (-want,+got):\n%s", diff)
	}
}

func TestGoodTimeClock(t *testing.T) {
	gt := GoodTime{Time: time.Date(2026, time.January, 30, 17, 45, 59, 0, brt)}
	if got := gt.Clock(); got != "17:45" {
		t.Errorf("got %q, want 17:45", got)
	}

	blob, err := json.Marshal(&gt)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if strings.Contains(string(blob), "duration") {
		t.Errorf("JSON carries a duration: %s", blob)
	}
}
