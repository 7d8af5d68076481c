package bands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultOptions() Options {
	return Options{
		Label:              "test",
		MinPoints:          5,
		SampleCount:        25,
		Floor:              0.01,
		CoverageTarget:     0.60,
		WidenFactor:        1.2,
		MaxWidenIterations: 10,
	}
}

func TestFitLevelTooFewPoints(t *testing.T) {
	points := []Point{{X: 1, Y: 1}, {X: 2, Y: 2}}
	band, ok := FitLevel(points, defaultOptions())
	assert.False(t, ok)
	assert.Nil(t, band)
}

func TestFitLevelZeroVarianceUsesFloor(t *testing.T) {
	points := make([]Point, 6)
	for i := range points {
		points[i] = Point{X: float64(50 + i*25), Y: 1.0}
	}
	band, ok := FitLevel(points, defaultOptions())
	require.True(t, ok)

	assert.InDelta(t, 0.02, band.BandWidth, 1e-9, "band width is twice the floor")
	assert.Equal(t, 1.0, band.Metadata.CoverageRatio, "identical points are fully covered")
	assert.Len(t, band.Samples, 25)
	for _, s := range band.Samples {
		assert.InDelta(t, 1.0, s.Center, 1e-9)
		assert.InDelta(t, 0.99, s.Lower, 1e-9)
		assert.InDelta(t, 1.01, s.Upper, 1e-9)
	}
}

func TestFitLevelCenterIsMedian(t *testing.T) {
	points := []Point{
		{X: 50, Y: 0.8}, {X: 75, Y: 0.9}, {X: 100, Y: 1.0},
		{X: 125, Y: 1.1}, {X: 150, Y: 1.2},
	}
	band, ok := FitLevel(points, defaultOptions())
	require.True(t, ok)
	assert.InDelta(t, 1.0, band.Metadata.Intercept, 1e-9)
	assert.GreaterOrEqual(t, band.Metadata.CoverageRatio, 0.60)
	assert.Equal(t, 5, band.Metadata.SourcePoints)
}

func TestFitLevelWideningIsBounded(t *testing.T) {
	// One extreme outlier keeps coverage below the target until widening.
	points := []Point{
		{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0},
		{X: 4, Y: 0}, {X: 5, Y: 0}, {X: 6, Y: 1000},
	}
	opts := defaultOptions()
	opts.CoverageTarget = 1.0
	opts.MaxWidenIterations = 3
	band, ok := FitLevel(points, opts)
	require.True(t, ok)

	// floor 0.01 widened at most 3 times by 1.2 (plus artifact rounding).
	maxWidth := 2 * 0.01 * 1.2 * 1.2 * 1.2
	assert.LessOrEqual(t, band.BandWidth, maxWidth+1e-4)
	assert.Less(t, band.Metadata.CoverageRatio, 1.0)
}

func TestFitShiftTracksIdentity(t *testing.T) {
	// y = x + 20 exactly.
	points := []Point{
		{X: 50, Y: 70}, {X: 75, Y: 95}, {X: 100, Y: 120},
		{X: 125, Y: 145}, {X: 150, Y: 170},
	}
	opts := defaultOptions()
	opts.Floor = 1.0
	band, ok := FitShift(points, opts)
	require.True(t, ok)

	assert.Equal(t, 1.0, band.Metadata.Slope)
	assert.InDelta(t, 20.0, band.Metadata.Intercept, 1e-9)
	for _, s := range band.Samples {
		assert.InDelta(t, s.X+20, s.Center, 1e-3)
	}
}

func TestFitShiftPadsDomain(t *testing.T) {
	points := []Point{
		{X: 50, Y: 70}, {X: 75, Y: 95}, {X: 100, Y: 120},
		{X: 125, Y: 145}, {X: 150, Y: 170},
	}
	opts := defaultOptions()
	opts.Floor = 1.0
	opts.PadDomain = true
	band, ok := FitShift(points, opts)
	require.True(t, ok)

	// span 100, pad max(10, 10) = 10.
	assert.InDelta(t, 160.0, band.Metadata.XMax, 1e-9)
	assert.InDelta(t, 50.0, band.Metadata.XMin, 1e-9)
}

func TestFitLevelClampLower(t *testing.T) {
	points := []Point{
		{X: 1, Y: 0.05}, {X: 2, Y: 0.0}, {X: 3, Y: 0.1},
		{X: 4, Y: 0.02}, {X: 5, Y: 0.07},
	}
	opts := defaultOptions()
	opts.Floor = 0.5
	opts.ClampLower = true
	band, ok := FitLevel(points, opts)
	require.True(t, ok)
	for _, s := range band.Samples {
		assert.GreaterOrEqual(t, s.Lower, 0.0)
		assert.GreaterOrEqual(t, s.Upper, s.Lower)
	}
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, Median(nil))
	assert.Equal(t, 2.0, Median([]float64{3, 1, 2}))
	assert.Equal(t, 2.5, Median([]float64{4, 1, 2, 3}))
}

func TestCoverage(t *testing.T) {
	residuals := []float64{-2, -1, 0, 1, 2}
	assert.Equal(t, 0.6, Coverage(residuals, 0, 1))
	assert.Equal(t, 1.0, Coverage(residuals, 0, 2))
	assert.Equal(t, 0.0, Coverage(residuals, 0, 0))
}
