package analysis

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidPoint indicates a coordinate that is not a finite rate in [0, 1].
	ErrInvalidPoint = errors.New("analysis: coordinates must be finite rates in [0, 1]")

	// ErrEmptyModel indicates a point without a model name.
	ErrEmptyModel = errors.New("analysis: model name must be non-empty")

	// ErrDuplicateModel indicates two points sharing one model name.
	ErrDuplicateModel = errors.New("analysis: model names must be unique")

	// ErrReservedModel indicates a point named after a frontier anchor.
	ErrReservedModel = errors.New("analysis: model name is reserved for a frontier anchor")
)

// PointError describes which point failed validation and why.
type PointError struct {
	Index int
	Model string
	Err   error
}

func (e *PointError) Error() string {
	return fmt.Sprintf("point %d (%q): %v", e.Index, e.Model, e.Err)
}

func (e *PointError) Unwrap() error { return e.Err }

// Validate checks that every point has a unique, non-empty model name that
// is not an anchor name, and finite coordinates in [0, 1]. The first
// offending point is reported.
func Validate(points []Point) error {
	seen := make(map[string]struct{}, len(points))
	for i, p := range points {
		if p.Model == "" {
			return &PointError{Index: i, Model: p.Model, Err: ErrEmptyModel}
		}
		if p.Model == AlwaysNegative.Model || p.Model == AlwaysPositive.Model {
			return &PointError{Index: i, Model: p.Model, Err: ErrReservedModel}
		}
		if !validRate(p.X) || !validRate(p.Y) {
			return &PointError{Index: i, Model: p.Model, Err: ErrInvalidPoint}
		}
		if _, dup := seen[p.Model]; dup {
			return &PointError{Index: i, Model: p.Model, Err: ErrDuplicateModel}
		}
		seen[p.Model] = struct{}{}
	}
	return nil
}

func validRate(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0 && v <= 1
}
