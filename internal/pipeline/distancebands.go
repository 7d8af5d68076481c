package pipeline

import (
	"fmt"

	"github.com/apnea-signal/energy-model/internal/bands"
	"github.com/apnea-signal/energy-model/internal/data"
	"github.com/apnea-signal/energy-model/internal/model"
)

const (
	distanceBandFloorM   = 1.0
	costBandFloor        = 0.1
	distanceBandWidenCap = 12
)

// RunDistanceBands derives chart bands from the propulsion fit artifact: the
// achievable-distance band (actual distance versus the distance the fitted
// budget implies) and the per-split oxygen cost band.
func (p *Pipeline) RunDistanceBands() error {
	source := map[string]model.PropulsionDataset{}
	if err := data.ReadJSON(p.ArtifactPath(ArtifactPropulsion), &source); err != nil {
		return fmt.Errorf("propulsion artifact required, run the oxygenfit stage first: %w", err)
	}

	payload := map[string]model.DistanceBandsDataset{}
	for _, dataset := range p.sortedDatasets() {
		entry, ok := source[dataset]
		if !ok {
			continue
		}
		distancePoints, costPoints := distanceBandPoints(entry, p.cfg.SplitDistanceM)

		opts := bands.Options{
			MinPoints:          p.cfg.Bands.MinPoints,
			SampleCount:        p.cfg.Bands.SampleCount,
			CoverageTarget:     p.cfg.Bands.CoverageTarget,
			WidenFactor:        p.cfg.Bands.WidenFactor,
			MaxWidenIterations: distanceBandWidenCap,
			PadDomain:          true,
			ClampLower:         true,
		}

		var ds model.DistanceBandsDataset
		opts.Label = "distance_fit"
		opts.Floor = distanceBandFloorM
		if band, ok := bands.FitShift(distancePoints, opts); ok {
			ds.DistanceFitBand = band
		} else {
			p.log.Warn("too few points for distance fit band",
				"dataset", dataset, "points", len(distancePoints))
		}
		opts.Label = "distance_cost"
		opts.Floor = costBandFloor
		if band, ok := bands.FitLevel(costPoints, opts); ok {
			ds.DistanceCostBand = band
		} else {
			p.log.Warn("too few points for cost band",
				"dataset", dataset, "points", len(costPoints))
		}

		if ds.DistanceFitBand == nil && ds.DistanceCostBand == nil {
			continue
		}
		payload[dataset] = ds
	}

	if len(payload) == 0 {
		return fmt.Errorf("no dataset produced distance bands")
	}
	return p.writeArtifact(ArtifactDistanceBands, payload)
}

// distanceBandPoints extracts the two point clouds from one dataset's fit.
// The implied distance scales the split distance by how many splits the
// budget could pay for at the attempt's per-split cost.
func distanceBandPoints(entry model.PropulsionDataset, splitDistanceM float64) (distancePoints, costPoints []bands.Point) {
	for _, attempt := range entry.Attempts {
		if attempt.SplitO2Cost == nil {
			continue
		}
		cost := *attempt.SplitO2Cost
		if !isFinite(cost) || cost <= 0 {
			continue
		}
		if isFinite(attempt.DistanceM) && attempt.DistanceM > 0 {
			costPoints = append(costPoints, bands.Point{X: attempt.DistanceM, Y: cost})

			implied := attempt.StaBudgetS / cost * splitDistanceM
			if isFinite(implied) && implied > 0 {
				distancePoints = append(distancePoints, bands.Point{X: attempt.DistanceM, Y: implied})
			}
		}
	}
	return distancePoints, costPoints
}
