package model

// AttemptSample is one validated competition attempt, joined with the
// athlete's STA reference budget and movement intensity. Built once by the
// sample builder and treated as immutable by the fit and decomposition
// stages.
type AttemptSample struct {
	Name           string
	NormalizedName string
	Dataset        string

	DistanceM  float64
	TotalTimeS float64
	StaBudgetS float64

	// MovementIntensity is a per-athlete propulsion-effort multiplier
	// derived upstream; 1.0 when unknown.
	MovementIntensity float64

	WallPushes   float64
	ArmPulls     float64
	LegKicks     float64
	DolphinKicks float64

	// MovementAllowanceS is StaBudgetS - TotalTimeS; always positive for a
	// sample that survived the builder.
	MovementAllowanceS float64
}

// FeatureVector returns the per-sample regression features in parameter
// order. The first six entries are the intensity-scaled movement terms; the
// last is the raw total time multiplied by the static rate, so
// prediction = dot(features, params).
func (s AttemptSample) FeatureVector() [NumParams]float64 {
	multiplier := s.MovementIntensity
	if multiplier == 0 {
		multiplier = 1.0
	}
	return [NumParams]float64{
		ParamWallPush:          s.WallPushes * multiplier,
		ParamArm:               s.ArmPulls * multiplier,
		ParamLeg:               s.LegKicks * multiplier,
		ParamDolphin:           s.DolphinKicks * multiplier,
		ParamIntensityTime:     multiplier * s.TotalTimeS,
		ParamAnaerobicRecovery: -s.TotalTimeS,
		ParamStaticRate:        s.TotalTimeS,
	}
}

// Predict evaluates the fitted linear model for this sample.
func (s AttemptSample) Predict(params CostParameters) float64 {
	features := s.FeatureVector()
	total := 0.0
	for i := range features {
		total += features[i] * params[i]
	}
	return total
}
