// Package visualize draws a day of tides as an SVG.
package visualize

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spencer-p/tidetable/pkg/almanac"
	"github.com/spencer-p/tidetable/pkg/almanac/splines"
	"github.com/spencer-p/tidetable/pkg/sunset"
	"github.com/spencer-p/tidetable/pkg/timetricks"
)

const (
	width  = 1200
	height = 300

	// The drawing spans heights from floor to floor+span metres.
	floor = -0.5
	span  = 3.5
)

// Tidal is the SVG drawing of the tides of one day.
type Tidal struct {
	date      time.Time
	extremes  []almanac.Extremum
	sunEvents sunset.SunEvents
}

// NewTidal draws extremes, which must be in chronological order, against the
// given sun events.
func NewTidal(extremes []almanac.Extremum, sunEvents sunset.SunEvents) *Tidal {
	return &Tidal{
		extremes:  extremes,
		sunEvents: sunEvents,
	}
}

// SetDate picks the day to draw.
func (img *Tidal) SetDate(t time.Time) {
	img.date = timetricks.TrimClock(t)
}

func (img *Tidal) Encode(w io.Writer) (int, error) {
	var n int
	var err error
	io := func(nextn int, nexterr error) {
		n += nextn
		if nexterr != nil && err == nil {
			err = nexterr
		}
	}

	// Calculate dawn/dusk first; nothing is drawn without them.
	sunupIndex, ok := img.sunup(img.date)
	if !ok || sunupIndex+1 >= len(img.sunEvents) {
		return n, fmt.Errorf("not enough sun data for %s", img.date.Format(time.DateOnly))
	}

	io(fmt.Fprintf(w, `<svg viewBox="0 0 %d %d" onclick="" xmlns="http://www.w3.org/2000/svg">`, width, height))

	sunup := img.sunEvents[sunupIndex]
	sundown := img.sunEvents[sunupIndex+1]
	risex := img.timeToX(sunup.Time)
	setx := img.timeToX(sundown.Time)
	io(fmt.Fprintf(w, `<rect class="daytime" fill="lightyellow" x="%d" y="%d" width="%d" height="%d"/>`,
		risex, 0,
		setx-risex, height))

	// Draw markers for tide levels.
	io(fmt.Fprintf(w, `<rect class="one_metre" fill="#e76f51" x="%d" y="%d" width="%d" height="%d"/>`,
		0, tideHeightToY(1),
		width, tideHeightToY(0.5)-tideHeightToY(1)+1))
	io(fmt.Fprintf(w, `<rect class="half_metre" fill="#f4a261" x="%d" y="%d" width="%d" height="%d"/>`,
		0, tideHeightToY(0.5),
		width, tideHeightToY(0)-tideHeightToY(0.5)+1))
	io(fmt.Fprintf(w, `<rect class="datum" fill="#e9c46a" x="%d" y="%d" width="%d" height="%d"/>`,
		0, tideHeightToY(0),
		width, tideHeightToY(floor)-tideHeightToY(0)+1))

	// Start from the extremum preceding the day, which is off screen.
	i, ok := img.indexPreceding(img.date)
	if !ok {
		i = 0
	}
	startI, endI := i, i

	for ; i+1 < len(img.extremes); i++ {
		x1 := img.timeToX(img.extremes[i].Time)
		y1 := tideHeightToY(img.extremes[i].Height)
		if x1 > width {
			break
		}
		endI = i + 1
		io(fmt.Fprintf(w, `<path class="tide" fill="skyblue" d="M %d,%d `, x1, y1))

		x2 := img.timeToX(img.extremes[i+1].Time) + 1 // +1 to create overlap
		y2 := tideHeightToY(img.extremes[i+1].Height)

		cx1, cy1 := (x1+x2)/2, y1
		cx2, cy2 := cx1, y2

		io(fmt.Fprintf(w, `C %d,%d %d,%d %d,%d `,
			cx1, cy1,
			cx2, cy2,
			x2, y2))

		io(fmt.Fprintf(w, `L %d,%d L %d,%d z"/>`, x2, height, x1, height))
	}

	// Draw the night time shadows.
	io(fmt.Fprintf(w, `<rect class="night" fill="blue" fill-opacity="25%%" x="%d" y="%d" width="%d" height="%d"/>`,
		0, 0,
		risex, height))
	io(fmt.Fprintf(w, `<rect class="night" fill="blue" fill-opacity="25%%" x="%d" y="%d" width="%d" height="%d"/>`,
		setx, 0,
		width-setx, height))

	// Insert spline data as JSON.
	var spline splines.Spline
	if len(img.extremes) > 0 {
		spline = splines.CurvesBetween(img.extremes[startI : endI+1])
	}
	blob, jsonErr := json.Marshal(spline)
	if jsonErr != nil {
		return n, jsonErr
	}
	io(fmt.Fprintf(w, `<text class="spline" visibility="hidden">%s</text>`, blob))

	// Insert date of this graph as unix.
	io(fmt.Fprintf(w, `<text class="unixtime" visibility="hidden">%d</text>`, img.date.Unix()))

	io(fmt.Fprintf(w, `</svg>`))

	return n, err
}

func (img *Tidal) indexPreceding(t time.Time) (int, bool) {
	if len(img.extremes) == 0 {
		return 0, false
	}
	left, right := 0, len(img.extremes)
	for right-left > 1 {
		mid := (left + right) / 2
		midt := img.extremes[mid].Time
		if midt.Before(t) {
			left = mid
		} else if midt.After(t) {
			right = mid
		} else {
			return mid, true
		}
	}
	return left, true
}

// sunup finds the first sunrise after t.
func (img *Tidal) sunup(t time.Time) (int, bool) {
	for i := 0; i < len(img.sunEvents); i++ {
		if img.sunEvents[i].Event == sunset.Sunrise && img.sunEvents[i].Time.After(t) {
			return i, true
		}
	}
	return 0, false
}

func tideHeightToY(tideHeight float64) int {
	return height - int((tideHeight-floor)*height/span)
}

func (img *Tidal) timeToX(t time.Time) int {
	return int(t.Unix()-img.date.Unix()) * width / (60 * 60 * 24)
}
