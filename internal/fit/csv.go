package fit

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/apnea-signal/energy-model/internal/model"
)

// WriteAttemptsCSV exports a dataset's per-attempt decomposition as a flat
// CSV for spreadsheet review. The JSON artifact stays the source of truth;
// this is a convenience view.
func WriteAttemptsCSV(path string, ds model.PropulsionDataset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"name",
		"distance_m",
		"total_time_s",
		"sta_budget_s",
		"movement_intensity",
		"prediction_s",
		"residual_s",
		"arm_pulls",
		"leg_kicks",
		"split_o2_cost",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, a := range ds.Attempts {
		splitCost := ""
		if a.SplitO2Cost != nil {
			splitCost = fmtFloat(*a.SplitO2Cost)
		}
		row := []string{
			a.Name,
			fmtFloat(a.DistanceM),
			fmtFloat(a.TotalTimeS),
			fmtFloat(a.StaBudgetS),
			fmtFloat(a.MovementIntensity),
			fmtFloat(a.PredictionS),
			fmtFloat(a.ResidualS),
			fmtFloat(a.ArmPulls),
			fmtFloat(a.LegKicks),
			splitCost,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
