package bands

import (
	"math"

	"github.com/apnea-signal/energy-model/internal/model"
)

// StaOptions tunes the STA projection band.
type StaOptions struct {
	// AngleDegrees is the dashboard-configured projection angle; when it
	// yields a non-positive slope, a fallback slope is derived from the data
	// span.
	AngleDegrees  float64
	OffsetSeconds float64

	SampleCount int
	// Floor is the minimum half-width in meters.
	Floor float64
}

// FitStaProjection fits the STA-vs-distance projection band: a settings-driven
// line, re-anchored through the median of the observations, with a MAD-based
// half-width. Unlike the coverage bands there is no widening loop; the
// dashboard controls this band's slope and only the anchor and spread come
// from the data. Points are (STA seconds, distance meters).
func FitStaProjection(points []Point, opts StaOptions) (*model.StaBand, bool) {
	if len(points) == 0 {
		return nil, false
	}

	slope := slopeFromAngle(opts.AngleDegrees)
	if slope <= 0 {
		slope = fallbackSlope(points)
	}

	offsets := make([]float64, len(points))
	for i, p := range points {
		offsets[i] = p.Y - slope*(p.X-opts.OffsetSeconds)
	}
	baseline := Median(offsets)
	predict := func(seconds float64) float64 {
		return slope*(seconds-opts.OffsetSeconds) + baseline
	}

	residuals := make([]float64, len(points))
	for i, p := range points {
		residuals[i] = p.Y - predict(p.X)
	}
	center := Median(residuals)
	absDev := make([]float64, len(residuals))
	for i, r := range residuals {
		absDev[i] = math.Abs(r - center)
	}
	halfWidth := math.Max(opts.Floor, Median(absDev)*madScale)

	start, end := domainRange(points, false)
	samples := make([]model.BandSample, 0, opts.SampleCount)
	for _, x := range buildDomain(start, end, opts.SampleCount) {
		c := predict(x)
		lower := math.Max(0, c-halfWidth)
		upper := math.Max(lower, c+halfWidth)
		samples = append(samples, model.BandSample{
			X:      model.Round(x, 3),
			Center: model.Round(c, 3),
			Lower:  model.Round(lower, 3),
			Upper:  model.Round(upper, 3),
		})
	}

	return &model.StaBand{
		BandWidth: model.Round(halfWidth*2, 3),
		Samples:   samples,
		Metadata: model.StaBandMeta{
			AngleDegrees:  opts.AngleDegrees,
			OffsetSeconds: opts.OffsetSeconds,
			Baseline:      model.Round(baseline, 3),
			Slope:         model.Round(slope, 5),
			SourcePoints:  len(points),
		},
	}, true
}

func slopeFromAngle(angleDegrees float64) float64 {
	if angleDegrees == 0 {
		return 0
	}
	return math.Tan(angleDegrees * math.Pi / 180)
}

// fallbackSlope approximates meters-per-second from the observed spans when
// no usable angle is configured.
func fallbackSlope(points []Point) float64 {
	xMin, xMax := math.Inf(1), math.Inf(-1)
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		xMin = math.Min(xMin, p.X)
		xMax = math.Max(xMax, p.X)
		yMin = math.Min(yMin, p.Y)
		yMax = math.Max(yMax, p.Y)
	}
	if xMax-xMin <= 0 {
		return 0.1
	}
	return math.Max(0.05, (yMax-yMin)/(xMax-xMin))
}
