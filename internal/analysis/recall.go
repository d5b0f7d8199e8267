package analysis

import "slices"

// RecallGroup lists the models sharing one rounded average recall.
type RecallGroup struct {
	AverageRecall float64  `json:"average_recall"`
	Models        []string `json:"models"`
}

// AverageRecall returns the mean of the true-positive and true-negative rates
// of p, rounded to decimals places.
func AverageRecall(p Point, decimals int) float64 {
	return Round((p.Y+(1-p.X))/2, decimals)
}

// RecallGroups groups points by rounded average recall and keeps only groups
// with two or more models. Groups appear in first-seen order and so do the
// models within each group.
func RecallGroups(points []Point, decimals int) []RecallGroup {
	var groups []RecallGroup
	index := make(map[float64]int)

	for _, p := range points {
		r := AverageRecall(p, decimals)
		i, ok := index[r]
		if !ok {
			index[r] = len(groups)
			groups = append(groups, RecallGroup{AverageRecall: r, Models: []string{p.Model}})
			continue
		}
		if !slices.Contains(groups[i].Models, p.Model) {
			groups[i].Models = append(groups[i].Models, p.Model)
		}
	}

	result := make([]RecallGroup, 0, len(groups))
	for _, g := range groups {
		if len(g.Models) > 1 {
			result = append(result, g)
		}
	}
	return result
}
