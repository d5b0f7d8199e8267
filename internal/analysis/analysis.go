package analysis

import (
	"fmt"
	"log/slog"
)

// Result bundles every derived view of one point list.
type Result struct {
	Points       []Point             `json:"points"`
	Dominated    []DominancePair     `json:"dominated"`
	Frontier     []Point             `json:"frontier"`
	Preferences  []PreferenceSegment `json:"preferences"`
	RecallGroups []RecallGroup       `json:"recall_groups"`
}

// Analyzer runs the full analysis with a fixed rounding precision.
type Analyzer struct {
	decimals  int
	maxPoints int
	logger    *slog.Logger
}

// NewAnalyzer creates an Analyzer. maxPoints is a soft limit: larger inputs
// are still analyzed but logged, since the dominance scan is quadratic.
func NewAnalyzer(decimals, maxPoints int, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{decimals: decimals, maxPoints: maxPoints, logger: logger}
}

// Decimals returns the rounding precision.
func (a *Analyzer) Decimals() int { return a.decimals }

// Analyze validates points and recomputes every view from scratch.
func (a *Analyzer) Analyze(points []Point) (*Result, error) {
	if err := Validate(points); err != nil {
		return nil, fmt.Errorf("validate points: %w", err)
	}
	if a.maxPoints > 0 && len(points) > a.maxPoints {
		a.logger.Warn("point count exceeds quadratic scan budget", "points", len(points), "max_points", a.maxPoints)
	}

	frontier := Frontier(points)
	res := &Result{
		Points:       append(make([]Point, 0, len(points)), points...),
		Dominated:    DominancePairs(points),
		Frontier:     frontier,
		Preferences:  PreferenceSegments(frontier, a.decimals),
		RecallGroups: RecallGroups(points, a.decimals),
	}
	a.logger.Debug("analysis computed",
		"points", len(points),
		"dominated", len(res.Dominated),
		"frontier", len(res.Frontier),
		"preferences", len(res.Preferences),
		"recall_groups", len(res.RecallGroups),
	)
	return res, nil
}
