package fit

import (
	"math"

	"github.com/apnea-signal/energy-model/internal/model"
)

// Weights holds an asymmetric penalty pair: the cost of overshooting versus
// undershooting a target.
type Weights struct {
	Over  float64
	Under float64
}

func (w Weights) pick(delta float64) float64 {
	if delta >= 0 {
		return w.Over
	}
	return w.Under
}

// PenaltyConfig combines the budget and distance penalty terms.
type PenaltyConfig struct {
	Budget   Weights
	Distance Weights

	// Term weights for the combined objective; the distance term dominates
	// in the default configuration.
	BudgetTerm   float64
	DistanceTerm float64
}

// budgetPenalty scores the relative deviation of the prediction from the
// athlete's STA budget. Overshooting the budget (predicting more time than
// the athlete actually has) is weighted harder, which keeps the fitted model
// under the ceiling.
func budgetPenalty(w Weights, s model.AttemptSample, prediction float64) (penalty, grad float64) {
	budget := s.StaBudgetS
	residual := prediction - budget
	weight := w.pick(residual)
	penalty = weight * math.Abs(residual) / budget
	grad = weight * sign(residual) / budget
	return penalty, grad
}

// distancePenalty converts the prediction into an implied achievable distance
// (budget scales with distance at fixed pace) and scores its relative
// deviation from the actual distance. Overestimating achievable distance is
// the worse planning error, so it carries the heavier weight. Undefined when
// the prediction is non-positive.
func distancePenalty(w Weights, s model.AttemptSample, prediction float64) (penalty, grad float64, ok bool) {
	if prediction <= 0 || s.DistanceM <= 0 {
		return 0, 0, false
	}
	numerator := s.StaBudgetS * s.DistanceM
	predictedDistance := numerator / prediction
	delta := predictedDistance - s.DistanceM
	weight := w.pick(delta)
	penalty = weight * math.Abs(delta) / s.DistanceM
	gradPredicted := -numerator / (prediction * prediction)
	grad = weight * sign(delta) * gradPredicted / s.DistanceM
	return penalty, grad, true
}

// combined returns the weighted average of the defined penalty terms and its
// derivative with respect to the prediction. ok is false when neither term
// is defined for this sample.
func (c PenaltyConfig) combined(s model.AttemptSample, prediction float64) (penalty, grad float64, ok bool) {
	totalWeight := 0.0
	weightedPenalty := 0.0
	weightedGrad := 0.0

	bp, bg := budgetPenalty(c.Budget, s, prediction)
	if !math.IsNaN(bp) {
		weightedPenalty += bp * c.BudgetTerm
		weightedGrad += bg * c.BudgetTerm
		totalWeight += c.BudgetTerm
	}
	if dp, dg, defined := distancePenalty(c.Distance, s, prediction); defined {
		weightedPenalty += dp * c.DistanceTerm
		weightedGrad += dg * c.DistanceTerm
		totalWeight += c.DistanceTerm
	}
	if totalWeight <= 0 {
		return 0, 0, false
	}
	return weightedPenalty / totalWeight, weightedGrad / totalWeight, true
}

func sign(v float64) float64 {
	if v >= 0 {
		return 1
	}
	return -1
}
