package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Coverage/internal/analysis"
)

// ErrNotFound is returned by updates and deletes of unknown comparisons.
var ErrNotFound = errors.New("store: comparison not found")

// Comparison is a named snapshot of classifier points. Revision increases on
// every point update.
type Comparison struct {
	ID        uuid.UUID        `json:"comparison_id"`
	Name      string           `json:"name"`
	Source    string           `json:"source"`
	Points    []analysis.Point `json:"points"`
	Revision  int              `json:"revision"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type ComparisonFilter struct {
	Source string
	Limit  int
	Offset int
}

type Stats struct {
	TotalComparisons int     `json:"total_comparisons"`
	TotalPoints      int     `json:"total_points"`
	AvgPoints        float64 `json:"avg_points"`
}

type Store interface {
	CreateComparison(ctx context.Context, c *Comparison) error
	// GetComparison returns nil, nil when the comparison does not exist.
	GetComparison(ctx context.Context, id uuid.UUID) (*Comparison, error)
	ListComparisons(ctx context.Context, filter ComparisonFilter) ([]*Comparison, error)
	// UpdatePoints replaces the points, bumps the revision and returns the
	// stored comparison.
	UpdatePoints(ctx context.Context, id uuid.UUID, points []analysis.Point) (*Comparison, error)
	DeleteComparison(ctx context.Context, id uuid.UUID) error

	GetStats(ctx context.Context) (*Stats, error)

	Close() error
}

func avg(total, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}
