package sunset

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spencer-p/tidetable/pkg/almanac"
)

// Place is a lat/long coordinate on the Earth matched with its time zone.
type Place struct {
	Lat, Long float64
	Location  *time.Location
}

// PlaceOf is where the tide table of p is measured, in the table's fixed
// offset.
func PlaceOf(p almanac.Profile) Place {
	return Place{
		Lat:      p.Latitude,
		Long:     p.Longitude,
		Location: p.Location(),
	}
}

// SunEvents is a time series of SunEvent.
type SunEvents []SunEvent

// SunEvent is a sunrise or sunset event.
type SunEvent struct {
	Time  time.Time `json:"time"`
	Event Event     `json:"event"`
}

func (s SunEvent) String() string {
	return fmt.Sprintf("%s %s", s.Time.Format(time.RFC822), s.Event)
}

// Event encodes a sunrise or sunset event.
type Event bool

const (
	Sunrise Event = true
	Sunset  Event = false
)

func (e Event) String() string {
	if e == Sunrise {
		return "Sunrise"
	}
	return "Sunset"
}

func (e Event) MarshalJSON() ([]byte, error) {
	if e == Sunrise {
		return json.Marshal("sunrise")
	}
	return json.Marshal("sunset")
}

// On returns the events that happen on the calendar day of t.
func (events SunEvents) On(t time.Time) SunEvents {
	var result SunEvents
	for _, e := range events {
		if e.Time.In(t.Location()).Format(time.DateOnly) == t.Format(time.DateOnly) {
			result = append(result, e)
		}
	}
	return result
}
