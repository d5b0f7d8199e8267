package analysis

import "math"

// PreferenceSegment is a run of frontier edges sharing one rounded slope.
// The model at High is preferred to the model at Low once the ratio of
// negative to positive class frequency is at least Slope.
type PreferenceSegment struct {
	Low   Point   `json:"low"`
	High  Point   `json:"high"`
	Slope float64 `json:"slope"`
}

// PreferenceSegments walks a frontier sorted by x and merges adjacent edges
// whose slopes are equal after rounding to decimals places.
//
// A vertical edge yields +Inf (or -Inf) and an edge between coincident points
// yields NaN. Two NaN slopes count as equal when merging.
func PreferenceSegments(frontier []Point, decimals int) []PreferenceSegment {
	if len(frontier) < 2 {
		return nil
	}

	segments := make([]PreferenceSegment, 0, len(frontier)-1)
	for i := 0; i+1 < len(frontier); i++ {
		low, high := frontier[i], frontier[i+1]
		s := Round(slope(low, high), decimals)

		if n := len(segments); n > 0 && sameSlope(segments[n-1].Slope, s) {
			last := segments[n-1]
			segments[n-1] = PreferenceSegment{Low: last.Low, High: high, Slope: last.Slope}
			continue
		}
		segments = append(segments, PreferenceSegment{Low: low, High: high, Slope: s})
	}
	return segments
}

func slope(a, b Point) float64 {
	return (b.Y - a.Y) / (b.X - a.X)
}

func sameSlope(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return a == b
}
