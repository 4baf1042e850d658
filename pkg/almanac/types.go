package almanac

import (
	"encoding/json"
	"fmt"
	"time"
)

// Tide is the kind of a tide extremum.
type Tide uint

const (
	HighTide Tide = iota
	LowTide
)

// Verify the custom types can be (un)marshaled
var _ json.Marshaler = HighTide
var _ json.Unmarshaler = new(Tide)

func (t Tide) String() string {
	switch t {
	case HighTide:
		return "H"
	case LowTide:
		return "L"
	default:
		return "invalid"
	}
}

func (t Tide) MarshalJSON() ([]byte, error) {
	switch t {
	case HighTide:
		return []byte(`"high"`), nil
	case LowTide:
		return []byte(`"low"`), nil
	default:
		return nil, fmt.Errorf("invalid tide type %d", uint(t))
	}
}

func (t *Tide) UnmarshalJSON(buf []byte) error {
	var s string
	if err := json.Unmarshal(buf, &s); err != nil {
		return fmt.Errorf("tide %q not a string: %w", buf, err)
	}
	switch s {
	case "H", "high":
		*t = HighTide
	case "L", "low":
		*t = LowTide
	default:
		return fmt.Errorf("invalid tide type %q", s)
	}
	return nil
}

// Reading is a water height at an instant, not yet labelled.
type Reading struct {
	Time   time.Time
	Height float64
}

// Extremum is a high or low tide.
type Extremum struct {
	// Time is the instant of the extremum in the location's fixed offset.
	Time time.Time `json:"time"`
	// LocalTime is the wall clock time as printed in the table, "15:04".
	LocalTime string `json:"localTime"`
	// Height in metres.
	Height float64 `json:"height"`
	Type   Tide    `json:"type"`
}

func (e Extremum) String() string {
	return fmt.Sprintf("{t: %s, v: %.2f, type: %s}",
		e.Time.Format(time.RFC822),
		e.Height,
		e.Type.String())
}

// DayReport holds the extrema of one calendar day in chronological order.
type DayReport struct {
	DateKey  string     `json:"dateKey"`
	Extremes []Extremum `json:"extremes"`
}

// WeekReport holds seven consecutive DayReports.
type WeekReport struct {
	Source       string `json:"source"`
	SourceName   string `json:"sourceName"`
	SourceLabel  string `json:"sourceLabel"`
	Location     string `json:"location"`
	UTCOffset    string `json:"utcOffset"`
	StartDateKey string `json:"startDateKey"`

	Days []DayReport `json:"days"`
	// FlatExtremes is every extremum of Days, in day order.
	FlatExtremes []Extremum `json:"flatExtremes"`
}
