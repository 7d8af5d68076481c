package pipeline

import (
	"fmt"

	"github.com/apnea-signal/energy-model/internal/model"
	"github.com/apnea-signal/energy-model/internal/splits"
)

// RunSplits computes distance-weighted split statistics and the STA
// projection parameters per dataset. Datasets whose sheet is missing are
// skipped with a warning; the stage fails only when no dataset produces
// output.
func (p *Pipeline) RunSplits() error {
	roster := p.loadRosterLenient()

	payload := map[string]model.SplitStatsDataset{}
	for _, dataset := range p.sortedDatasets() {
		table, err := p.loadDatasetTable(dataset)
		if err != nil {
			return err
		}
		if table == nil {
			continue
		}

		stats, err := splits.ComputeSplitStats(table)
		if err != nil {
			return fmt.Errorf("dataset %s: %w", dataset, err)
		}
		entry := model.SplitStatsDataset{Splits: stats}

		if projection, ok := splits.ComputeStaProjection(table, roster); ok {
			entry.StaProjection = projection
		} else {
			p.log.Warn("too few roster matches for STA projection", "dataset", dataset)
		}
		payload[dataset] = entry
		p.log.Info("split stats computed", "dataset", dataset, "splits", len(stats))
	}

	if len(payload) == 0 {
		return fmt.Errorf("no dataset produced split statistics")
	}
	return p.writeArtifact(ArtifactSplitStats, payload)
}
