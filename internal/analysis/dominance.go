package analysis

import "sort"

// DominancePair records that Dominator is at least as good as Dominated on
// both axes: no higher false-positive rate and no lower true-positive rate.
type DominancePair struct {
	Dominator Point `json:"dominator"`
	Dominated Point `json:"dominated"`
}

// DominancePairs returns every ordered pair of distinctly named points where
// the first dominates the second, sorted by the dominated model name.
// Points with identical coordinates dominate each other and both pairs are
// returned.
// O(n^2) over all ordered pairs.
func DominancePairs(points []Point) []DominancePair {
	pairs := dominanceIndex(points)
	result := make([]DominancePair, 0, len(pairs))
	for _, ij := range pairs {
		result = append(result, DominancePair{Dominator: points[ij[0]], Dominated: points[ij[1]]})
	}
	return result
}

// Dominated returns the points that appear on the dominated side of at least
// one pair, in input order.
func Dominated(points []Point) []Point {
	flags := dominatedFlags(points)
	var result []Point
	for i, p := range points {
		if flags[i] {
			result = append(result, p)
		}
	}
	return result
}

// dominanceIndex returns (dominator, dominated) index pairs sorted by the
// dominated model name. Indices keep equal-valued points with different names
// apart.
func dominanceIndex(points []Point) [][2]int {
	var pairs [][2]int
	for i := range points {
		for j := range points {
			if points[i].Model == points[j].Model {
				continue
			}
			if dominates(points[i], points[j]) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	sort.SliceStable(pairs, func(a, b int) bool {
		return points[pairs[a][1]].Model < points[pairs[b][1]].Model
	})
	return pairs
}

func dominatedFlags(points []Point) []bool {
	flags := make([]bool, len(points))
	for _, ij := range dominanceIndex(points) {
		flags[ij[1]] = true
	}
	return flags
}

// dominates returns true if a dominates b.
// For x (false-positive rate): lower is better.
// For y (true-positive rate): higher is better.
// NaN coordinates fail both comparisons.
func dominates(a, b Point) bool {
	return a.X <= b.X && a.Y >= b.Y
}
