package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apnea-signal/energy-model/internal/data"
	"github.com/apnea-signal/energy-model/internal/model"
	"github.com/apnea-signal/energy-model/internal/report"
)

// RunCharts renders PNG previews for every band artifact that exists.
// Missing artifacts are skipped with a warning so the stage can run after a
// partial pipeline.
func (p *Pipeline) RunCharts() error {
	chartDir := filepath.Join(p.cfg.OutputDir, "charts")
	if err := os.MkdirAll(chartDir, 0o755); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}

	rendered := 0

	static := map[string]model.StaticBandsDataset{}
	if err := data.ReadJSON(p.ArtifactPath(ArtifactStaticBands), &static); err != nil {
		p.log.Warn("static bands artifact unavailable, skipping its charts", "error", err)
	} else {
		for dataset, entry := range static {
			if entry.StaBand == nil {
				continue
			}
			path := filepath.Join(chartDir, dataset+"_sta_band.png")
			if err := report.SaveStaBandChart(entry.StaBand, dataset+" STA projection", path); err != nil {
				return err
			}
			rendered++
		}
	}

	movement := map[string]model.MovementBandsDataset{}
	if err := data.ReadJSON(p.ArtifactPath(ArtifactMovementBands), &movement); err != nil {
		p.log.Warn("movement bands artifact unavailable, skipping its charts", "error", err)
	} else {
		for dataset, entry := range movement {
			if entry.MovementIntensityBand != nil {
				path := filepath.Join(chartDir, dataset+"_movement_intensity.png")
				if err := report.SaveBandChart(entry.MovementIntensityBand,
					dataset+" movement intensity", "Distance (m)", "Intensity", path); err != nil {
					return err
				}
				rendered++
			}
			if entry.WorkBiasBand != nil {
				path := filepath.Join(chartDir, dataset+"_work_bias.png")
				if err := report.SaveBandChart(entry.WorkBiasBand,
					dataset+" leg/arm work bias", "Distance (m)", "Leg/arm work ratio", path); err != nil {
					return err
				}
				rendered++
			}
		}
	}

	distance := map[string]model.DistanceBandsDataset{}
	if err := data.ReadJSON(p.ArtifactPath(ArtifactDistanceBands), &distance); err != nil {
		p.log.Warn("distance bands artifact unavailable, skipping its charts", "error", err)
	} else {
		for dataset, entry := range distance {
			if entry.DistanceFitBand != nil {
				path := filepath.Join(chartDir, dataset+"_distance_fit.png")
				if err := report.SaveBandChart(entry.DistanceFitBand,
					dataset+" achievable distance", "Distance (m)", "Implied distance (m)", path); err != nil {
					return err
				}
				rendered++
			}
			if entry.DistanceCostBand != nil {
				path := filepath.Join(chartDir, dataset+"_split_cost.png")
				if err := report.SaveBandChart(entry.DistanceCostBand,
					dataset+" split O2 cost", "Distance (m)", "Cost per split", path); err != nil {
					return err
				}
				rendered++
			}
		}
	}

	if rendered == 0 {
		p.log.Warn("no band artifacts found, nothing to chart")
		return nil
	}
	p.log.Info("charts rendered", "dir", chartDir, "count", rendered)
	return nil
}
