// Package splines finds a continuous curve of tide from single points.
package splines

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/spencer-p/tidetable/pkg/almanac"
)

// Curve represents a curve that links a tide event to another smoothly. Its
// derivitative at Start and End are zero and it is undefined outside Start and
// End.
type Curve struct {
	Start, End time.Time
	a, b, c, d float64
}

// A Spline is a slice of curves linked together to form a full picture.
type Spline []Curve

// Sample is the interpolated water height at an instant.
type Sample struct {
	Time   time.Time `json:"time"`
	Height float64   `json:"height"`
}

// CurvesBetween identifies curves to link consecutive tide extrema. Extrema
// at the same instant are skipped.
func CurvesBetween(extremes []almanac.Extremum) Spline {
	if len(extremes) < 2 {
		return nil
	}

	curves := make([]Curve, 0, len(extremes)-1)
	for i := 0; i < len(extremes)-1; i++ {
		if !extremes[i+1].Time.After(extremes[i].Time) {
			continue
		}
		curves = append(curves, curveBetween(
			extremes[i].Time,
			extremes[i].Height,
			extremes[i+1].Time,
			extremes[i+1].Height))
	}
	return curves
}

// Discrete finds n tide predictions within the tide predictions described by a
// Spline.
func Discrete(spline Spline, n int) []float64 {
	if len(spline) < 1 || n < 2 {
		return nil
	}
	start := spline[0].Start
	end := spline[len(spline)-1].End
	dur := end.Sub(start)
	step := time.Duration(float64(dur) / float64(n-1))

	result := make([]float64, n)
	for i := range result {
		result[i] = spline.Eval(start.Add(step * time.Duration(i)))
	}
	return result
}

// Every samples the spline from start to end (inclusive) every step. Instants
// the spline does not cover are left out.
func (s Spline) Every(start, end time.Time, step time.Duration) []Sample {
	if step <= 0 {
		return nil
	}
	var samples []Sample
	for t := start; !t.After(end); t = t.Add(step) {
		h := s.Eval(t)
		if math.IsNaN(h) {
			continue
		}
		samples = append(samples, Sample{Time: t, Height: h})
	}
	return samples
}

func curveBetween(time1 time.Time, h1 float64, time2 time.Time, h2 float64) Curve {
	t1 := 0.0
	t2 := xrel(time1, time2)
	denominator := math.Pow(t1-t2, 3.0)
	a := (-2 * (h1 - h2)) / denominator
	b := (3 * (h1 - h2) * (t1 + t2)) / denominator
	c := (-6 * (h1 - h2) * t1 * t2) / denominator
	d := -1 * (-1*h2*math.Pow(t1, 3) + 3*h2*math.Pow(t1, 2)*t2 - 3*h1*t1*math.Pow(t2, 2) + h1*math.Pow(t2, 3)) / denominator
	return Curve{
		Start: time1,
		End:   time2,
		a:     a,
		b:     b,
		c:     c,
		d:     d,
	}
}

func (s Spline) Eval(t time.Time) float64 {
	left, right := 0, len(s)
	for right > left {
		mid := left + (right-left)/2
		if t.Before(s[mid].Start) {
			right = mid
		} else if t.After(s[mid].End) {
			left = mid + 1
		} else {
			return s[mid].Eval(t)
		}
	}
	// Function not defined.
	return math.NaN()
}

func (c Curve) Eval(t time.Time) float64 {
	if t.Before(c.Start) || t.After(c.End) {
		return math.NaN()
	}
	x := xrel(c.Start, t)
	return c.a*x*x*x + c.b*x*x + c.c*x + c.d
}

// xrel computes an x coordinate for t that is relative to origin.
// This reduces large floating point errors by moving x coordinates closer to
// the "origin" (just the start of a particular curve).
func xrel(origin time.Time, t time.Time) float64 {
	return float64(t.Unix() - origin.Unix())
}

func (c Curve) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	_, err := fmt.Fprintf(&buf, `{"start":%d,"end":%d,"a":%g,"b":%g,"c":%g,"d":%g}`,
		c.Start.Unix(), c.End.Unix(),
		c.a, c.b, c.c, c.d)
	return buf.Bytes(), err
}
