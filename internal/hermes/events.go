package hermes

import (
	"time"

	"github.com/MikeSquared-Agency/Coverage/internal/analysis"
)

// ComparisonRequestEvent asks the service to store and analyze a point list.
type ComparisonRequestEvent struct {
	Name   string           `json:"name"`
	Points []analysis.Point `json:"points"`
	Source string           `json:"source,omitempty"`
}

type ComparisonCreatedEvent struct {
	ComparisonID string `json:"comparison_id"`
	Name         string `json:"name"`
	Source       string `json:"source,omitempty"`
	Points       int    `json:"points"`
}

type ComparisonAnalyzedEvent struct {
	ComparisonID string           `json:"comparison_id"`
	Revision     int              `json:"revision"`
	Result       *analysis.Result `json:"result"`
}

type ComparisonDeletedEvent struct {
	ComparisonID string `json:"comparison_id"`
}

type StatsEvent struct {
	Comparisons int       `json:"comparisons"`
	Points      int       `json:"points"`
	AvgPoints   float64   `json:"avg_points"`
	Timestamp   time.Time `json:"timestamp"`
}
