// Package bands fits robust center/half-width bands for chart overlays.
//
// The half-width starts from the normal-consistent scaled MAD of the
// residuals and is widened geometrically until a target fraction of points
// falls inside the band. This is a coverage search, not an exact quantile
// fit: achieved coverage may overshoot the target once it crosses it.
package bands

import (
	"math"
	"sort"

	"github.com/apnea-signal/energy-model/internal/model"
)

// madScale converts a median absolute deviation into a standard-deviation
// equivalent under normality.
const madScale = 1.4826

// Point is one (x, y) observation.
type Point struct {
	X float64
	Y float64
}

// Options tunes a band fit.
type Options struct {
	Label string

	// MinPoints is the minimum observation count; below it no band is fitted.
	MinPoints int
	// SampleCount is how many evenly spaced domain samples the band carries.
	SampleCount int

	// Floor is the minimum half-width, so zero-variance inputs still produce
	// a visible band.
	Floor float64
	// CoverageTarget is the fraction of residuals the band must contain.
	CoverageTarget float64
	// WidenFactor multiplies the half-width on each coverage iteration.
	WidenFactor float64
	// MaxWidenIterations bounds the coverage loop.
	MaxWidenIterations int

	// PadDomain extends the sampled domain 10% (at least 10 units) past the
	// maximum x, for distance-style bands where the chart projects forward.
	PadDomain bool
	// ClampLower floors lower/upper at zero for physically non-negative
	// quantities.
	ClampLower bool
}

// FitLevel fits a constant-center band: center is the median y, the band a
// symmetric half-width around it.
func FitLevel(points []Point, opts Options) (*model.Band, bool) {
	if len(points) < opts.MinPoints {
		return nil, false
	}
	ys := make([]float64, len(points))
	for i, p := range points {
		ys[i] = p.Y
	}
	center := Median(ys)

	residuals := make([]float64, len(points))
	for i, p := range points {
		residuals[i] = p.Y - center
	}
	halfWidth, coverage := fitHalfWidth(residuals, opts)

	start, end := domainRange(points, opts.PadDomain)
	samples := make([]model.BandSample, 0, opts.SampleCount)
	for _, x := range buildDomain(start, end, opts.SampleCount) {
		samples = append(samples, formatSample(x, center, halfWidth, opts.ClampLower))
	}

	return &model.Band{
		BandWidth: model.Round(halfWidth*2, 4),
		Samples:   samples,
		Metadata: model.BandMeta{
			Slope:         0,
			Intercept:     model.Round(center, 6),
			CoverageRatio: model.Round(coverage, 3),
			SourcePoints:  len(points),
			XMin:          model.Round(start, 3),
			XMax:          model.Round(end, 3),
			Label:         opts.Label,
		},
	}, true
}

// FitShift fits an identity-plus-offset band: the center curve is y = x + b
// where b is the median residual around the identity line. Used where the
// prediction should track the observation one-to-one.
func FitShift(points []Point, opts Options) (*model.Band, bool) {
	if len(points) < opts.MinPoints {
		return nil, false
	}
	residuals := make([]float64, len(points))
	for i, p := range points {
		residuals[i] = p.Y - p.X
	}
	shift := Median(residuals)
	centered := make([]float64, len(points))
	for i, r := range residuals {
		centered[i] = r - shift
	}
	halfWidth, coverage := fitHalfWidth(centered, opts)

	start, end := domainRange(points, opts.PadDomain)
	samples := make([]model.BandSample, 0, opts.SampleCount)
	for _, x := range buildDomain(start, end, opts.SampleCount) {
		samples = append(samples, formatSample(x, x+shift, halfWidth, opts.ClampLower))
	}

	return &model.Band{
		BandWidth: model.Round(halfWidth*2, 4),
		Samples:   samples,
		Metadata: model.BandMeta{
			Slope:         1,
			Intercept:     model.Round(shift, 4),
			CoverageRatio: model.Round(coverage, 3),
			SourcePoints:  len(points),
			XMin:          model.Round(start, 3),
			XMax:          model.Round(end, 3),
			Label:         opts.Label,
		},
	}, true
}

// fitHalfWidth derives the initial half-width from the scaled MAD (with the
// configured floor) and widens it geometrically until the coverage target is
// met or the iteration bound is hit. The half-width never shrinks.
func fitHalfWidth(residuals []float64, opts Options) (halfWidth, coverage float64) {
	center := Median(residuals)
	absDev := make([]float64, len(residuals))
	for i, r := range residuals {
		absDev[i] = math.Abs(r - center)
	}
	halfWidth = math.Max(opts.Floor, Median(absDev)*madScale)
	coverage = Coverage(residuals, center, halfWidth)
	for i := 0; coverage < opts.CoverageTarget && i < opts.MaxWidenIterations; i++ {
		halfWidth *= opts.WidenFactor
		coverage = Coverage(residuals, center, halfWidth)
	}
	return halfWidth, coverage
}

// Coverage is the fraction of residuals within halfWidth of center.
func Coverage(residuals []float64, center, halfWidth float64) float64 {
	if len(residuals) == 0 || halfWidth <= 0 {
		return 0
	}
	inside := 0
	for _, r := range residuals {
		if math.Abs(r-center) <= halfWidth {
			inside++
		}
	}
	return float64(inside) / float64(len(residuals))
}

// Median returns the midpoint of the values (mean of the two central order
// statistics for even counts).
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func domainRange(points []Point, pad bool) (start, end float64) {
	start = math.Inf(1)
	end = math.Inf(-1)
	for _, p := range points {
		if p.X < start {
			start = p.X
		}
		if p.X > end {
			end = p.X
		}
	}
	if pad {
		span := math.Max(end-start, 1)
		end += math.Max(10, span*0.1)
	}
	if nearlyEqual(start, end) {
		end = start + 1
	}
	return start, end
}

func buildDomain(start, end float64, count int) []float64 {
	if count < 2 {
		count = 2
	}
	step := (end - start) / float64(count-1)
	domain := make([]float64, count)
	for i := range domain {
		domain[i] = start + step*float64(i)
	}
	return domain
}

func formatSample(x, center, halfWidth float64, clampLower bool) model.BandSample {
	lower := center - halfWidth
	upper := center + halfWidth
	if clampLower {
		lower = math.Max(0, lower)
		upper = math.Max(0, upper)
	}
	return model.BandSample{
		X:      model.Round(x, 3),
		Center: model.Round(center, 4),
		Lower:  model.Round(lower, 4),
		Upper:  model.Round(upper, 4),
	}
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b)) || a == b
}
