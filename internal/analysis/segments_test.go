package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertSegmentInvariants(t *testing.T, frontier []Point, segments []PreferenceSegment) {
	t.Helper()
	require.NotEmpty(t, segments)
	assert.Equal(t, frontier[0], segments[0].Low)
	assert.Equal(t, frontier[len(frontier)-1], segments[len(segments)-1].High)
	for i := 1; i < len(segments); i++ {
		assert.Equal(t, segments[i-1].High, segments[i].Low, "segments %d and %d not contiguous", i-1, i)
		assert.False(t, sameSlope(segments[i-1].Slope, segments[i].Slope), "segments %d and %d share slope", i-1, i)
	}
}

func TestPreferenceSegments_NoMerge(t *testing.T) {
	a := Point{"A", 0.4, 0.6}
	b := Point{"B", 0.2, 0.4}
	frontier := Frontier([]Point{a, b})

	segments := PreferenceSegments(frontier, DefaultDecimals)
	assert.Equal(t, []PreferenceSegment{
		{Low: AlwaysNegative, High: b, Slope: 2},
		{Low: b, High: a, Slope: 1},
		{Low: a, High: AlwaysPositive, Slope: 0.667},
	}, segments)
	assertSegmentInvariants(t, frontier, segments)
}

func TestPreferenceSegments_MergesEqualRoundedSlopes(t *testing.T) {
	frontier := Frontier(ExamplePoints())
	segments := PreferenceSegments(frontier, DefaultDecimals)

	require.Len(t, segments, 3)
	assert.Equal(t, "always negative", segments[0].Low.Model)
	assert.Equal(t, "4", segments[0].High.Model)
	assert.Equal(t, 5.0, segments[0].Slope)

	// 4 -> 3 and 3 -> 5 both have slope 2 once rounded.
	assert.Equal(t, "4", segments[1].Low.Model)
	assert.Equal(t, "5", segments[1].High.Model)
	assert.Equal(t, 2.0, segments[1].Slope)

	assert.Equal(t, "5", segments[2].Low.Model)
	assert.Equal(t, "always positive", segments[2].High.Model)
	assert.Equal(t, 0.143, segments[2].Slope)

	assertSegmentInvariants(t, frontier, segments)
}

func TestPreferenceSegments_Collinear(t *testing.T) {
	frontier := []Point{AlwaysNegative, {"mid", 0.5, 0.5}, AlwaysPositive}
	segments := PreferenceSegments(frontier, DefaultDecimals)
	assert.Equal(t, []PreferenceSegment{{Low: AlwaysNegative, High: AlwaysPositive, Slope: 1}}, segments)
}

func TestPreferenceSegments_VerticalEdge(t *testing.T) {
	p := Point{"edge", 0, 0.5}
	segments := PreferenceSegments(Frontier([]Point{p}), DefaultDecimals)
	require.Len(t, segments, 2)
	assert.True(t, math.IsInf(segments[0].Slope, 1))
	assert.Equal(t, 0.5, segments[1].Slope)
}

func TestPreferenceSegments_ZeroLengthEdge(t *testing.T) {
	q := Point{"same as anchor", 1, 1}
	segments := PreferenceSegments(Frontier([]Point{q}), DefaultDecimals)
	require.Len(t, segments, 2)
	assert.Equal(t, 1.0, segments[0].Slope)
	assert.True(t, math.IsNaN(segments[1].Slope))
	assert.Equal(t, q, segments[1].High)
}

func TestPreferenceSegments_NaNEdgesMerge(t *testing.T) {
	frontier := []Point{{"a", 0, 0}, {"b", 0, 0}, {"c", 0, 0}}
	segments := PreferenceSegments(frontier, DefaultDecimals)
	require.Len(t, segments, 1)
	assert.Equal(t, "a", segments[0].Low.Model)
	assert.Equal(t, "c", segments[0].High.Model)
	assert.True(t, math.IsNaN(segments[0].Slope))
}

func TestPreferenceSegments_ShortInput(t *testing.T) {
	assert.Empty(t, PreferenceSegments(nil, DefaultDecimals))
	assert.Empty(t, PreferenceSegments([]Point{AlwaysNegative}, DefaultDecimals))
}

func TestPreferenceSegments_Precision(t *testing.T) {
	frontier := []Point{AlwaysNegative, {"a", 0.3, 0.5}, AlwaysPositive}
	segments := PreferenceSegments(frontier, 1)
	require.Len(t, segments, 2)
	assert.Equal(t, 1.7, segments[0].Slope)
	assert.Equal(t, 0.7, segments[1].Slope)
}
