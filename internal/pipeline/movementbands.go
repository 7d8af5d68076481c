package pipeline

import (
	"fmt"

	"github.com/apnea-signal/energy-model/internal/bands"
	"github.com/apnea-signal/energy-model/internal/data"
	"github.com/apnea-signal/energy-model/internal/model"
	"github.com/apnea-signal/energy-model/internal/samples"
)

const (
	movementBandFloor    = 0.01
	movementBandWidenCap = 10
)

// RunMovementBands fits distance-indexed bands over the per-athlete
// intensity multipliers: one for overall movement intensity and one for the
// leg/arm work bias. Both are level bands; intensity is normalized, so no
// trend against distance is assumed.
func (p *Pipeline) RunMovementBands() error {
	movement := p.loadMovementArtifact()
	if movement == nil {
		return fmt.Errorf("movement intensity artifact required, run the intensity stage first")
	}

	payload := map[string]model.MovementBandsDataset{}
	for _, dataset := range p.sortedDatasets() {
		entry, ok := movement[dataset]
		if !ok {
			continue
		}
		table, err := p.loadDatasetTable(dataset)
		if err != nil {
			return err
		}
		if table == nil {
			continue
		}

		lookup := movementLookup(entry)
		intensityPoints, biasPoints := movementPoints(table, lookup)

		opts := bands.Options{
			MinPoints:          p.cfg.Bands.MinPoints,
			SampleCount:        p.cfg.Bands.SampleCount,
			Floor:              movementBandFloor,
			CoverageTarget:     p.cfg.Bands.CoverageTarget,
			WidenFactor:        p.cfg.Bands.WidenFactor,
			MaxWidenIterations: movementBandWidenCap,
		}

		var ds model.MovementBandsDataset
		opts.Label = "movement_intensity"
		if band, ok := bands.FitLevel(intensityPoints, opts); ok {
			ds.MovementIntensityBand = band
		} else {
			p.log.Warn("too few points for movement intensity band",
				"dataset", dataset, "points", len(intensityPoints))
		}
		opts.Label = "leg_arm_work_bias"
		if band, ok := bands.FitLevel(biasPoints, opts); ok {
			ds.WorkBiasBand = band
		} else {
			p.log.Warn("too few points for work bias band",
				"dataset", dataset, "points", len(biasPoints))
		}

		if ds.MovementIntensityBand == nil && ds.WorkBiasBand == nil {
			continue
		}
		payload[dataset] = ds
	}

	if len(payload) == 0 {
		return fmt.Errorf("no dataset produced movement bands")
	}
	return p.writeArtifact(ArtifactMovementBands, payload)
}

// movementPoints joins attempt distances with the athlete's aggregated
// intensity metrics.
func movementPoints(table *data.Table, lookup map[string]model.MovementAthlete) (intensityPoints, biasPoints []bands.Point) {
	for _, row := range table.Rows {
		normalized := model.NormalizeName(row.Get(samples.ColName))
		if normalized == "" {
			continue
		}
		athlete, ok := lookup[normalized]
		if !ok {
			continue
		}
		distance := model.CoerceFloat(row.Get(samples.ColDistance))
		if !isFinite(distance) || distance <= 0 {
			continue
		}
		if athlete.MovementIntensity != nil && isFinite(*athlete.MovementIntensity) {
			intensityPoints = append(intensityPoints, bands.Point{X: distance, Y: *athlete.MovementIntensity})
		}
		if athlete.LegArmWorkRatio != nil && isFinite(*athlete.LegArmWorkRatio) {
			biasPoints = append(biasPoints, bands.Point{X: distance, Y: *athlete.LegArmWorkRatio})
		}
	}
	return intensityPoints, biasPoints
}
