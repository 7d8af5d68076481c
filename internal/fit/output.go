package fit

import (
	"math"
	"sort"

	"github.com/apnea-signal/energy-model/internal/model"
)

const designNote = "Fit solves for (STA - swim_time) using intensity-scaled movement counts plus heart-rate and anaerobic time terms; swim_time is added back afterward"

// BuildDataset assembles the propulsion-fit artifact for one dataset:
// fitted parameters, per-attempt decomposition, and aggregate error metrics.
func BuildDataset(dataset string, samplesIn []model.AttemptSample, res *Result, movement map[string]model.MovementAthlete, splitDistanceM float64) model.PropulsionDataset {
	attempts := make([]model.PropulsionAttempt, 0, len(samplesIn))
	for i, s := range samplesIn {
		attempts = append(attempts, buildAttempt(s, res.Predictions[i], res.Residuals[i], res.Parameters, movement, splitDistanceM))
	}

	params := make(map[string]float64, model.NumParams)
	for i, name := range model.ParameterNames {
		params[name] = model.Round(res.Parameters[i], 6)
	}

	return model.PropulsionDataset{
		Dataset:                 dataset,
		Parameters:              params,
		UnconstrainedParameters: params,
		Metrics:                 buildMetrics(attempts),
		Attempts:                attempts,
		ParameterOrder:          model.ParameterNames[:],
		DesignNote:              designNote,
	}
}

func buildAttempt(s model.AttemptSample, prediction, residual float64, params model.CostParameters, movement map[string]model.MovementAthlete, splitDistanceM float64) model.PropulsionAttempt {
	featureVector := s.FeatureVector()
	features := make(map[string]float64, model.NumParams)
	costs := make(map[string]float64, model.NumParams)
	for i := model.ParamWallPush; i <= model.ParamAnaerobicRecovery; i++ {
		name := model.ParameterNames[i]
		features[name] = model.Round(featureVector[i], 4)
		costs[name] = model.Round(params[i]*featureVector[i], 4)
	}
	// The static term uses the raw total time, not a feature-vector entry.
	staticName := model.ParameterNames[model.ParamStaticRate]
	features[staticName] = model.Round(s.TotalTimeS, 4)
	costs[staticName] = model.Round(params[model.ParamStaticRate]*s.TotalTimeS, 4)

	var entry *model.MovementAthlete
	if e, ok := movement[s.NormalizedName]; ok {
		entry = &e
	}
	var splitCost *float64
	if cost, ok := SplitO2Cost(s, params, entry, splitDistanceM); ok {
		rounded := model.Round(cost, 4)
		splitCost = &rounded
	}

	return model.PropulsionAttempt{
		Name:              s.Name,
		DistanceM:         model.Round(s.DistanceM, 2),
		TotalTimeS:        model.Round(s.TotalTimeS, 3),
		StaBudgetS:        model.Round(s.StaBudgetS, 3),
		MovementIntensity: model.Round(s.MovementIntensity, 4),
		PredictionS:       model.Round(prediction, 3),
		ResidualS:         model.Round(residual, 3),
		Features:          features,
		ComponentCosts:    costs,
		ArmPulls:          model.Round(s.ArmPulls, 3),
		LegKicks:          model.Round(s.LegKicks, 3),
		SplitO2Cost:       splitCost,
	}
}

func buildMetrics(attempts []model.PropulsionAttempt) model.PropulsionMetrics {
	m := model.PropulsionMetrics{Attempts: len(attempts)}
	if len(attempts) == 0 {
		return m
	}

	absResiduals := make([]float64, 0, len(attempts))
	sum := 0.0
	maxAbs := 0.0
	var pctErrors []float64
	for _, a := range attempts {
		abs := math.Abs(a.ResidualS)
		absResiduals = append(absResiduals, abs)
		sum += abs
		if abs > maxAbs {
			maxAbs = abs
		}
		if a.StaBudgetS > 0 {
			pctErrors = append(pctErrors, abs/a.StaBudgetS)
		}
	}
	m.MeanAbsErrorS = model.Round(sum/float64(len(attempts)), 4)
	m.MedianAbsErrorS = model.Round(median(absResiduals), 4)
	m.MaxAbsErrorS = model.Round(maxAbs, 4)
	if len(pctErrors) > 0 {
		total := 0.0
		for _, v := range pctErrors {
			total += v
		}
		pct := model.Round(total/float64(len(pctErrors)), 4)
		m.MeanAbsPctError = &pct
	}
	return m
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
