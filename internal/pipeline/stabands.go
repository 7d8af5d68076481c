package pipeline

import (
	"fmt"

	"github.com/apnea-signal/energy-model/internal/bands"
	"github.com/apnea-signal/energy-model/internal/data"
	"github.com/apnea-signal/energy-model/internal/model"
	"github.com/apnea-signal/energy-model/internal/samples"
)

// staBandFloorM is the minimum STA band half-width in meters.
const staBandFloorM = 5.0

// RunStaBands fits the STA-vs-distance projection band per dataset. The
// band's slope comes from the dashboard settings file; when that is missing
// or the angle degenerates, the fitter falls back to a span-derived slope.
func (p *Pipeline) RunStaBands() error {
	roster := p.loadRosterLenient()
	if len(roster) == 0 {
		return fmt.Errorf("no roster entries, cannot anchor STA bands")
	}

	settings, err := data.LoadStaBandSettings(p.cfg.SettingsFile)
	if err != nil {
		p.log.Warn("band settings unavailable, using data-derived slopes",
			"path", p.cfg.SettingsFile, "error", err)
		settings = map[string]data.StaBandSettings{}
	}

	payload := map[string]model.StaticBandsDataset{}
	for _, dataset := range p.sortedDatasets() {
		table, err := p.loadDatasetTable(dataset)
		if err != nil {
			return err
		}
		if table == nil {
			continue
		}

		points := staPoints(table, roster)
		band, ok := bands.FitStaProjection(points, bands.StaOptions{
			AngleDegrees:  settings[dataset].AngleDegrees,
			OffsetSeconds: settings[dataset].OffsetSeconds,
			SampleCount:   p.cfg.Bands.SampleCount,
			Floor:         staBandFloorM,
		})
		if !ok {
			p.log.Warn("no roster-matched attempts for STA band", "dataset", dataset)
			continue
		}
		payload[dataset] = model.StaticBandsDataset{StaBand: band}
		p.log.Info("sta band fitted", "dataset", dataset, "points", len(points))
	}

	if len(payload) == 0 {
		return fmt.Errorf("no dataset produced an STA band")
	}
	return p.writeArtifact(ArtifactStaticBands, payload)
}

// staPoints pairs each attempt's roster STA budget (x, seconds) with its
// achieved distance (y, meters).
func staPoints(table *data.Table, roster map[string]float64) []bands.Point {
	points := make([]bands.Point, 0, len(table.Rows))
	for _, row := range table.Rows {
		normalized := model.NormalizeName(row.Get(samples.ColName))
		if normalized == "" {
			continue
		}
		budget, ok := roster[normalized]
		if !ok || budget <= 0 {
			continue
		}
		distance := model.CoerceFloat(row.Get(samples.ColDistance))
		if !isFinite(distance) || distance <= 0 {
			continue
		}
		points = append(points, bands.Point{X: budget, Y: distance})
	}
	return points
}
