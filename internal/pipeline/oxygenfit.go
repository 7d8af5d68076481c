package pipeline

import (
	"fmt"

	"github.com/apnea-signal/energy-model/internal/fit"
	"github.com/apnea-signal/energy-model/internal/model"
	"github.com/apnea-signal/energy-model/internal/samples"
)

// RunOxygenFit calibrates the oxygen-cost coefficients per dataset and
// writes the full decomposition artifact. The roster is mandatory; the
// movement intensity artifact is optional and attempts without an entry
// default to intensity 1.0 inside the sample builder.
func (p *Pipeline) RunOxygenFit() error {
	roster, err := p.loadRosterStrict()
	if err != nil {
		return err
	}
	movement := p.loadMovementArtifact()

	penalty := fit.PenaltyConfig{
		Budget:       fit.Weights{Over: p.cfg.Fit.BudgetOverWeight, Under: p.cfg.Fit.BudgetUnderWeight},
		Distance:     fit.Weights{Over: p.cfg.Fit.DistanceOverWeight, Under: p.cfg.Fit.DistanceUnderWeight},
		BudgetTerm:   p.cfg.Fit.BudgetTermWeight,
		DistanceTerm: p.cfg.Fit.DistanceTermWeight,
	}
	fitCfg := fit.Config{
		LearningRate:  p.cfg.Fit.LearningRate,
		MaxIterations: p.cfg.Fit.MaxIterations,
		Tolerance:     p.cfg.Fit.Tolerance,
		Penalty:       penalty,
	}

	payload := map[string]model.PropulsionDataset{}
	for _, dataset := range p.sortedDatasets() {
		table, err := p.loadDatasetTable(dataset)
		if err != nil {
			return err
		}
		if table == nil {
			continue
		}

		lookup := map[string]model.MovementAthlete{}
		if entry, ok := movement[dataset]; ok {
			lookup = movementLookup(entry)
		}

		built, stats := samples.Build(table, roster, lookup, samples.Options{
			Dataset:        dataset,
			MinDistanceM:   p.cfg.MinDistanceM,
			SplitDistanceM: p.cfg.SplitDistanceM,
		})
		for reason, count := range stats.Discarded {
			p.log.Warn("rows excluded from fit",
				"dataset", dataset, "reason", string(reason), "count", count)
		}
		if len(built) == 0 {
			p.log.Warn("no fit samples", "dataset", dataset)
			continue
		}

		result, err := fit.Fit(built, fitCfg)
		if err != nil {
			return fmt.Errorf("dataset %s: %w", dataset, err)
		}
		if result.Degenerate {
			p.log.Warn("descent stopped on degenerate penalty", "dataset", dataset,
				"iterations", result.Iterations)
		}
		p.log.Info("oxygen fit complete", "dataset", dataset,
			"samples", len(built), "iterations", result.Iterations, "converged", result.Converged)

		ds := fit.BuildDataset(dataset, built, result, lookup, p.cfg.SplitDistanceM)
		payload[dataset] = ds

		csvPath := p.ArtifactPath(dataset + "_propulsion_fit.csv")
		if err := fit.WriteAttemptsCSV(csvPath, ds); err != nil {
			p.log.Warn("attempt CSV export failed", "dataset", dataset, "error", err)
		}
	}

	if len(payload) == 0 {
		return fmt.Errorf("no dataset produced a propulsion fit")
	}
	return p.writeArtifact(ArtifactPropulsion, payload)
}
