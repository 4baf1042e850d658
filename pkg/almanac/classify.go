package almanac

import "sort"

// Classify labels each reading of one day as a high or a low tide by comparing
// it with its neighbours. The rules are kept exactly as published tables have
// been labelled so far:
//
//   - a single reading is a high tide;
//   - of two readings the taller is high and the other low, and two equal
//     heights are labelled low then high;
//   - otherwise the first reading is high when at least as tall as the second,
//     the last when at least as tall as the one before it, and an inner reading
//     is high when taller than both neighbours, low when shorter than both, and
//     on a plateau high only if the water did not fall into it and does not
//     rise after it.
//
// Readings are ordered by time first; the result has one Extremum per reading.
func Classify(readings []Reading) []Extremum {
	sorted := make([]Reading, len(readings))
	copy(sorted, readings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	out := make([]Extremum, len(sorted))
	for i, r := range sorted {
		out[i] = Extremum{
			Time:      r.Time,
			LocalTime: r.Time.Format("15:04"),
			Height:    r.Height,
		}
	}

	switch len(sorted) {
	case 0:
		return out
	case 1:
		out[0].Type = HighTide
		return out
	case 2:
		a, b := sorted[0].Height, sorted[1].Height
		if a <= b {
			out[0].Type, out[1].Type = LowTide, HighTide
		} else {
			out[0].Type, out[1].Type = HighTide, LowTide
		}
		return out
	}

	last := len(sorted) - 1
	for i := range sorted {
		h := sorted[i].Height
		high := false
		switch i {
		case 0:
			high = h >= sorted[1].Height
		case last:
			high = h >= sorted[last-1].Height
		default:
			prev, next := sorted[i-1].Height, sorted[i+1].Height
			switch {
			case h > prev && h > next:
				high = true
			case h < prev && h < next:
				high = false
			default:
				up, down := h-prev, next-h
				high = up >= 0 && down <= 0
			}
		}
		if high {
			out[i].Type = HighTide
		} else {
			out[i].Type = LowTide
		}
	}
	return out
}
