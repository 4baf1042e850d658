package meta

import (
	"fmt"
	"sort"
	"time"

	"github.com/spencer-p/tidetable/pkg/almanac"
	"github.com/spencer-p/tidetable/pkg/sunset"
)

const (
	// DefaultLowTideThresh is the highest low tide worth going out for, in
	// metres.
	DefaultLowTideThresh = 0.5

	// firstLight is how long around sunrise and sunset there is still enough
	// light to see the reef.
	firstLight = 30 * time.Minute
)

// Conditions is the set of data we can perform meta analysis on.
type Conditions struct {
	Tides     []almanac.Extremum
	SunEvents sunset.SunEvents
}

// GoodTimes finds the low tides of c no higher than thresh metres that can
// be enjoyed in daylight.
func GoodTimes(c Conditions, thresh float64) []GoodTime {
	result := []GoodTime{}
	for _, tide := range c.Tides {
		if tide.Type != almanac.LowTide || tide.Height > thresh {
			continue
		}
		if gt, ok := c.goodTimeAt(tide); ok {
			result = append(result, gt)
		}
	}
	return result
}

// goodTimeAt places a low tide relative to the sun.
func (c Conditions) goodTimeAt(tide almanac.Extremum) (GoodTime, bool) {
	events := c.SunEvents
	last, ok := lastEventBefore(tide.Time, events)
	if !ok {
		// Before any recorded event; only dawn can save it.
		if len(events) > 0 && events[0].Event == sunset.Sunrise {
			return dawnPatrol(tide, events[0])
		}
		return GoodTime{}, false
	}

	if events[last].Event == sunset.Sunrise {
		return GoodTime{
			Time:    tide.Time,
			Reasons: []string{lowReason(tide)},
		}, true
	}

	dusk := events[last].Time
	if since := tide.Time.Sub(dusk); since < firstLight {
		// Nearly low by dusk; go before dark.
		return GoodTime{
			Time: dusk,
			Reasons: []string{
				lowReason(tide),
				fmt.Sprintf("%.0f minutes after sunset", since.Minutes()),
			},
		}, true
	}
	if last+1 < len(events) {
		return dawnPatrol(tide, events[last+1])
	}
	return GoodTime{}, false
}

func lowReason(tide almanac.Extremum) string {
	return fmt.Sprintf("tide is low at %.2f m", tide.Height)
}

// dawnPatrol finds a GoodTime just before sunrise.
func dawnPatrol(tide almanac.Extremum, sunrise sunset.SunEvent) (GoodTime, bool) {
	until := sunrise.Time.Sub(tide.Time)
	if until > firstLight {
		return GoodTime{}, false
	}
	return GoodTime{
		Time: tide.Time,
		Reasons: []string{
			lowReason(tide),
			fmt.Sprintf("only %.0f minutes before sunrise", until.Minutes()),
		},
	}, true
}

// lastEventBefore finds the index of the last event strictly before t.
func lastEventBefore(t time.Time, events sunset.SunEvents) (int, bool) {
	// Events are ordered, so the first event not before t follows the answer.
	i := sort.Search(len(events), func(i int) bool {
		return !events[i].Time.Before(t)
	})
	return i - 1, i > 0
}
