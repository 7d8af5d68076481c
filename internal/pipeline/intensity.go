package pipeline

import (
	"fmt"

	"github.com/apnea-signal/energy-model/internal/data"
	"github.com/apnea-signal/energy-model/internal/intensity"
	"github.com/apnea-signal/energy-model/internal/model"
)

// RunIntensity derives per-athlete movement intensities from the first-split
// columns. Datasets without those columns are skipped with a warning; only
// pool sheets carry stroke-count detail.
func (p *Pipeline) RunIntensity() error {
	payload := map[string]model.MovementDataset{}
	for _, dataset := range p.sortedDatasets() {
		table, err := p.loadDatasetTable(dataset)
		if err != nil {
			return err
		}
		if table == nil {
			continue
		}
		if !hasIntensityColumns(table) {
			p.log.Warn("sheet lacks first-split columns, skipping", "dataset", dataset)
			continue
		}

		records, err := intensity.ComputeRecords(table, p.cfg.SplitDistanceM, p.cfg.ArmLegRatio)
		if err != nil {
			return fmt.Errorf("dataset %s: %w", dataset, err)
		}
		if len(records) == 0 {
			p.log.Warn("no usable first-split rows", "dataset", dataset)
			continue
		}

		payload[dataset] = model.MovementDataset{
			Metadata: intensity.BuildMetadata(records, p.cfg.SplitDistanceM, p.cfg.ArmLegRatio),
			Athletes: intensity.AggregateByAthlete(records),
		}
		p.log.Info("movement intensity computed",
			"dataset", dataset, "records", len(records), "athletes", len(payload[dataset].Athletes))
	}

	if len(payload) == 0 {
		return fmt.Errorf("no dataset produced movement intensities")
	}
	return p.writeArtifact(ArtifactMovement, payload)
}

func hasIntensityColumns(table *data.Table) bool {
	for _, column := range []string{
		intensity.ColName, intensity.ColSplitTime, intensity.ColArmPulls,
		intensity.ColKicksPerArm, intensity.ColWallKicks,
	} {
		if !table.HasColumn(column) {
			return false
		}
	}
	return true
}
