package analysis

// Point is a classifier's operating point in ROC space.
// X is the false-positive rate and Y the true-positive rate.
type Point struct {
	Model string  `json:"model" yaml:"model"`
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
}

// Anchor points present on every frontier.
var (
	AlwaysNegative = Point{Model: "always negative", X: 0, Y: 0}
	AlwaysPositive = Point{Model: "always positive", X: 1, Y: 1}
)

// ExamplePoints returns the five-model comparison used as the default data set.
func ExamplePoints() []Point {
	return []Point{
		{Model: "1", X: 0.4, Y: 0.6},
		{Model: "2", X: 0.2, Y: 0.4},
		{Model: "3", X: 0.2, Y: 0.7},
		{Model: "4", X: 0.1, Y: 0.5},
		{Model: "5", X: 0.3, Y: 0.9},
	}
}

// Models returns the model names of points in order.
func Models(points []Point) []string {
	names := make([]string, 0, len(points))
	for _, p := range points {
		names = append(names, p.Model)
	}
	return names
}
