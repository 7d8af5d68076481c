// Package fit implements the penalized gradient descent that calibrates the
// oxygen-cost coefficients, and the per-attempt cost decomposition built on
// top of the fitted model.
package fit

import (
	"fmt"
	"math"

	"github.com/apnea-signal/energy-model/internal/model"
)

// Config tunes the descent. The learning rate and tolerance are empirical;
// see the pipeline configuration for the defaults.
type Config struct {
	LearningRate  float64
	MaxIterations int
	Tolerance     float64
	Penalty       PenaltyConfig
}

// Result is the frozen outcome of a fit.
type Result struct {
	Parameters model.CostParameters
	// UnconstrainedParameters mirrors Parameters in the current optimizer
	// (bounds are enforced in-loop); the artifact keeps both fields so the
	// dashboard can diff them if the optimizer ever changes.
	UnconstrainedParameters model.CostParameters

	// Residuals and Predictions are index-aligned with the input samples.
	// The residual is the raw signed prediction minus budget; no penalty
	// asymmetry is applied to reported values.
	Residuals   []float64
	Predictions []float64

	Iterations int
	Converged  bool
	// Degenerate is set when some iteration found no sample with a defined
	// penalty; the descent stops immediately in that case.
	Degenerate bool
}

// Fit runs the penalized descent over the samples and re-evaluates the final
// coefficients to produce residuals.
func Fit(samplesIn []model.AttemptSample, cfg Config) (*Result, error) {
	if len(samplesIn) == 0 {
		return nil, fmt.Errorf("no samples")
	}
	if cfg.LearningRate <= 0 || cfg.MaxIterations <= 0 || cfg.Tolerance <= 0 {
		return nil, fmt.Errorf("invalid fit config: lr=%g iters=%d tol=%g",
			cfg.LearningRate, cfg.MaxIterations, cfg.Tolerance)
	}

	features := make([][model.NumParams]float64, len(samplesIn))
	for i, s := range samplesIn {
		features[i] = s.FeatureVector()
	}

	params := model.DefaultCostParameters()
	res := &Result{}
	for iter := 0; iter < cfg.MaxIterations; iter++ {
		res.Iterations = iter + 1

		var grad [model.NumParams]float64
		valid := 0
		for i, s := range samplesIn {
			prediction := dot(features[i], params)
			_, derivative, ok := cfg.Penalty.combined(s, prediction)
			if !ok {
				continue
			}
			valid++
			if math.IsNaN(derivative) || math.IsInf(derivative, 0) {
				continue
			}
			for j := range grad {
				grad[j] += derivative * features[i][j]
			}
		}
		if valid == 0 {
			res.Degenerate = true
			break
		}

		stepNorm := 0.0
		for j := range grad {
			update := cfg.LearningRate * grad[j] / float64(valid)
			params[j] -= update
			stepNorm += update * update
		}
		params.EnforceBounds()
		if math.Sqrt(stepNorm) < cfg.Tolerance {
			res.Converged = true
			break
		}
	}

	res.Parameters = params
	res.UnconstrainedParameters = params
	res.Predictions = make([]float64, len(samplesIn))
	res.Residuals = make([]float64, len(samplesIn))
	for i, s := range samplesIn {
		prediction := dot(features[i], params)
		res.Predictions[i] = prediction
		res.Residuals[i] = prediction - s.StaBudgetS
	}
	return res, nil
}

func dot(features [model.NumParams]float64, params model.CostParameters) float64 {
	total := 0.0
	for i := range features {
		total += features[i] * params[i]
	}
	return total
}
