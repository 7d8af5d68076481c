package model

// Cost parameter indices. The order is load-bearing: it matches the
// feature vector layout and the parameter_order array in the fit artifact.
const (
	ParamWallPush = iota
	ParamArm
	ParamLeg
	ParamDolphin
	ParamIntensityTime
	ParamAnaerobicRecovery
	ParamStaticRate
	NumParams
)

// ParameterNames maps indices to the artifact key names.
var ParameterNames = [NumParams]string{
	"wall_push_o2_cost",
	"arm_o2_cost",
	"leg_o2_cost",
	"dolphin_o2_cost",
	"intensity_time_o2_cost",
	"anaerobic_recovery_o2_cost",
	"static_o2_rate",
}

// Constraint constants for the oxygen-cost coefficients.
// Units are notional O2 units per movement (or per second for the time terms).
const (
	// StaticRateMin keeps the resting metabolic rate from collapsing to zero;
	// a fitted rate below one unit/second is physiologically meaningless.
	StaticRateMin = 1.0
	// WallLegEps raises the wall-push coefficient just above the leg
	// coefficient when the hierarchy constraint trips.
	WallLegEps = 1e-6
	// ArmLegRatioMax caps how much more expensive an arm pull can be than a
	// leg kick.
	ArmLegRatioMax = 1.5
)

// CostParameters holds the oxygen-cost coefficients in fixed order.
type CostParameters [NumParams]float64

// DefaultCostParameters returns the empirically tuned starting point for the
// gradient descent.
func DefaultCostParameters() CostParameters {
	return CostParameters{
		ParamWallPush:          2.5,
		ParamArm:               3.5,
		ParamLeg:               2.5,
		ParamDolphin:           0.0,
		ParamIntensityTime:     0.39,
		ParamAnaerobicRecovery: 0.1,
		ParamStaticRate:        1.0,
	}
}

// EnforceBounds clamps the coefficients into their feasible region after a
// gradient step: every coefficient non-negative, the static rate at or above
// its floor, then the hierarchy constraints (wall push >= leg, arm <= 1.5x leg).
func (p *CostParameters) EnforceBounds() {
	for i := range p {
		if i == ParamStaticRate {
			if p[i] < StaticRateMin {
				p[i] = StaticRateMin
			}
			continue
		}
		if p[i] < 0 {
			p[i] = 0
		}
	}
	if p[ParamWallPush] < p[ParamLeg] {
		p[ParamWallPush] = p[ParamLeg] + WallLegEps
	}
	if maxArm := p[ParamLeg] * ArmLegRatioMax; p[ParamLeg] > 0 && p[ParamArm] > maxArm {
		p[ParamArm] = maxArm
	}
}

// Map returns the coefficients keyed by artifact name.
func (p CostParameters) Map() map[string]float64 {
	out := make(map[string]float64, NumParams)
	for i, name := range ParameterNames {
		out[name] = p[i]
	}
	return out
}
