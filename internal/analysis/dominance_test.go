package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairNames(pairs []DominancePair) [][2]string {
	out := make([][2]string, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, [2]string{p.Dominator.Model, p.Dominated.Model})
	}
	return out
}

func TestDominates(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want bool
	}{
		{"lower x higher y", Point{"a", 0.1, 0.9}, Point{"b", 0.2, 0.8}, true},
		{"equal x higher y", Point{"a", 0.2, 0.7}, Point{"b", 0.2, 0.4}, true},
		{"lower x equal y", Point{"a", 0.1, 0.5}, Point{"b", 0.3, 0.5}, true},
		{"identical coordinates", Point{"a", 0.3, 0.5}, Point{"b", 0.3, 0.5}, true},
		{"higher x", Point{"a", 0.4, 0.6}, Point{"b", 0.2, 0.4}, false},
		{"lower y", Point{"a", 0.2, 0.4}, Point{"b", 0.4, 0.6}, false},
		{"nan never dominates", Point{"a", math.NaN(), 1}, Point{"b", 0.5, 0.5}, false},
		{"nan never dominated", Point{"a", 0, 1}, Point{"b", math.NaN(), 0.5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dominates(tt.a, tt.b))
		})
	}
}

func TestDominancePairs_NoneDominated(t *testing.T) {
	points := []Point{{"A", 0.4, 0.6}, {"B", 0.2, 0.4}}
	pairs := DominancePairs(points)
	assert.NotNil(t, pairs)
	assert.Empty(t, pairs)
}

func TestDominancePairs_SameX(t *testing.T) {
	points := []Point{{"C", 0.2, 0.7}, {"D", 0.2, 0.4}}
	pairs := DominancePairs(points)
	require.Len(t, pairs, 1)
	assert.Equal(t, points[0], pairs[0].Dominator)
	assert.Equal(t, points[1], pairs[0].Dominated)
}

func TestDominancePairs_SortedByDominatedName(t *testing.T) {
	pairs := DominancePairs(ExamplePoints())
	assert.Equal(t, [][2]string{
		{"3", "1"},
		{"5", "1"},
		{"3", "2"},
		{"4", "2"},
	}, pairNames(pairs))
}

func TestDominancePairs_MutualOnCoincidentPoints(t *testing.T) {
	points := []Point{{"E", 0.3, 0.5}, {"F", 0.3, 0.5}}
	assert.Equal(t, [][2]string{{"F", "E"}, {"E", "F"}}, pairNames(DominancePairs(points)))
}

func TestDominancePairs_SkipsSameName(t *testing.T) {
	points := []Point{{"A", 0.1, 0.9}, {"A", 0.5, 0.5}}
	assert.Empty(t, DominancePairs(points))
}

func TestDominancePairs_Definition(t *testing.T) {
	points := []Point{
		{"a", 0.1, 0.3}, {"b", 0.2, 0.3}, {"c", 0.2, 0.8},
		{"d", 0.5, 0.8}, {"e", 0.05, 0.1}, {"f", 0.9, 0.95},
	}
	got := make(map[[2]string]bool)
	for _, n := range pairNames(DominancePairs(points)) {
		got[n] = true
	}
	for _, p := range points {
		for _, q := range points {
			if p.Model == q.Model {
				continue
			}
			want := p.X <= q.X && p.Y >= q.Y
			assert.Equal(t, want, got[[2]string{p.Model, q.Model}], "%s dominates %s", p.Model, q.Model)
		}
	}
}

func TestDominated(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, Models(Dominated(ExamplePoints())))
	assert.Empty(t, Dominated(nil))
}
