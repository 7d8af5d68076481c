package model

// BandSample is one evenly spaced point on a fitted band curve.
type BandSample struct {
	X      float64 `json:"x"`
	Center float64 `json:"center"`
	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
}

// BandMeta describes how a band was fitted; the dashboard uses it for axis
// labels and tooltips.
type BandMeta struct {
	Slope         float64 `json:"slope"`
	Intercept     float64 `json:"intercept"`
	CoverageRatio float64 `json:"coverage_ratio"`
	SourcePoints  int     `json:"source_points"`
	XMin          float64 `json:"x_min"`
	XMax          float64 `json:"x_max"`
	Label         string  `json:"label"`
}

// Band is a fitted center curve with a symmetric uncertainty half-width,
// sampled over its input domain. BandWidth is the full width (2x half-width).
type Band struct {
	BandWidth float64      `json:"band_width"`
	Samples   []BandSample `json:"samples"`
	Metadata  BandMeta     `json:"metadata"`
}

// StaBandMeta is the metadata block for the STA projection band, which is
// driven by dashboard settings (angle/offset) rather than a coverage fit.
type StaBandMeta struct {
	AngleDegrees  float64 `json:"angle_degrees"`
	OffsetSeconds float64 `json:"offset_seconds"`
	Baseline      float64 `json:"baseline"`
	Slope         float64 `json:"slope"`
	SourcePoints  int     `json:"source_points"`
}

// StaBand is the STA-vs-distance projection band payload.
type StaBand struct {
	BandWidth float64      `json:"band_width"`
	Samples   []BandSample `json:"samples"`
	Metadata  StaBandMeta  `json:"metadata"`
}
