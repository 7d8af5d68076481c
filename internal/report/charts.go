// Package report renders band artifacts as PNG previews so fitted bands can
// be inspected without the dashboard.
package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/apnea-signal/energy-model/internal/model"
)

var (
	centerColor = color.RGBA{B: 255, A: 255}
	edgeColor   = color.RGBA{R: 200, G: 120, A: 255}
)

const (
	chartWidth  = 6 * vg.Inch
	chartHeight = 4 * vg.Inch
)

// SaveBandChart renders one band's center line with dashed lower/upper
// envelope lines to a PNG file.
func SaveBandChart(band *model.Band, title, xLabel, yLabel, path string) error {
	if band == nil || len(band.Samples) == 0 {
		return fmt.Errorf("band %q has no samples", title)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	if err := addBandLines(p, band.Samples); err != nil {
		return err
	}
	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	return nil
}

// SaveStaBandChart renders the STA projection band. Same layout as
// SaveBandChart; the STA band carries a different metadata shape.
func SaveStaBandChart(band *model.StaBand, title, path string) error {
	if band == nil || len(band.Samples) == 0 {
		return fmt.Errorf("band %q has no samples", title)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "STA budget (s)"
	p.Y.Label.Text = "Distance (m)"
	p.Add(plotter.NewGrid())

	if err := addBandLines(p, band.Samples); err != nil {
		return err
	}
	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	return nil
}

func addBandLines(p *plot.Plot, samples []model.BandSample) error {
	center := make(plotter.XYs, len(samples))
	lower := make(plotter.XYs, len(samples))
	upper := make(plotter.XYs, len(samples))
	for i, s := range samples {
		center[i] = plotter.XY{X: s.X, Y: s.Center}
		lower[i] = plotter.XY{X: s.X, Y: s.Lower}
		upper[i] = plotter.XY{X: s.X, Y: s.Upper}
	}

	centerLine, err := plotter.NewLine(center)
	if err != nil {
		return fmt.Errorf("center line: %w", err)
	}
	centerLine.Color = centerColor
	centerLine.LineStyle.Width = vg.Points(1.5)
	p.Add(centerLine)
	p.Legend.Add("center", centerLine)

	for _, edge := range []struct {
		name string
		pts  plotter.XYs
	}{{"lower", lower}, {"upper", upper}} {
		line, err := plotter.NewLine(edge.pts)
		if err != nil {
			return fmt.Errorf("%s line: %w", edge.name, err)
		}
		line.Color = edgeColor
		line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
		p.Add(line)
	}
	p.Legend.Top = true
	return nil
}
