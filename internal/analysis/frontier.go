package analysis

import "sort"

// Frontier returns the anchors plus every point that no other point dominates,
// ordered by ascending false-positive rate. Points sharing an x value keep
// their relative order, anchors first. The result always has at least the two
// anchors.
func Frontier(points []Point) []Point {
	flags := dominatedFlags(points)

	frontier := make([]Point, 0, len(points)+2)
	frontier = append(frontier, AlwaysNegative, AlwaysPositive)
	for i, p := range points {
		if !flags[i] {
			frontier = append(frontier, p)
		}
	}
	sort.SliceStable(frontier, func(i, j int) bool {
		return frontier[i].X < frontier[j].X
	})
	return frontier
}
