package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnforceBoundsNonNegative(t *testing.T) {
	p := CostParameters{-1, -2, -3, -4, -5, -6, -7}
	p.EnforceBounds()
	for i := 0; i < NumParams; i++ {
		assert.GreaterOrEqual(t, p[i], 0.0, "param %s", ParameterNames[i])
	}
	assert.Equal(t, StaticRateMin, p[ParamStaticRate])
}

func TestEnforceBoundsHierarchy(t *testing.T) {
	p := DefaultCostParameters()
	p[ParamLeg] = 3.0
	p[ParamWallPush] = 1.0
	p[ParamArm] = 10.0
	p.EnforceBounds()

	assert.InDelta(t, 3.0+WallLegEps, p[ParamWallPush], 1e-12)
	assert.InDelta(t, 4.5, p[ParamArm], 1e-12)
}

func TestEnforceBoundsZeroLegSkipsArmCap(t *testing.T) {
	p := DefaultCostParameters()
	p[ParamLeg] = 0
	p[ParamArm] = 9.0
	p.EnforceBounds()

	// With no leg cost the arm cap would force arm to zero; the cap only
	// applies against a positive leg coefficient. Wall push already sits
	// above leg, so the hierarchy constraint leaves it alone.
	assert.Equal(t, 9.0, p[ParamArm])
	assert.GreaterOrEqual(t, p[ParamWallPush], p[ParamLeg])
	assert.Equal(t, DefaultCostParameters()[ParamWallPush], p[ParamWallPush])
}

func TestFeatureVectorLayout(t *testing.T) {
	s := AttemptSample{
		TotalTimeS:        100,
		MovementIntensity: 1.2,
		WallPushes:        2,
		ArmPulls:          30,
		LegKicks:          40,
		DolphinKicks:      5,
	}
	f := s.FeatureVector()

	assert.InDelta(t, 2.4, f[ParamWallPush], 1e-9)
	assert.InDelta(t, 36, f[ParamArm], 1e-9)
	assert.InDelta(t, 48, f[ParamLeg], 1e-9)
	assert.InDelta(t, 6, f[ParamDolphin], 1e-9)
	assert.InDelta(t, 120, f[ParamIntensityTime], 1e-9)
	assert.InDelta(t, -100, f[ParamAnaerobicRecovery], 1e-9)
	assert.InDelta(t, 100, f[ParamStaticRate], 1e-9)
}

func TestPredictMatchesDot(t *testing.T) {
	s := AttemptSample{
		TotalTimeS:        60,
		MovementIntensity: 1.0,
		WallPushes:        1,
		ArmPulls:          10,
		LegKicks:          12,
	}
	p := DefaultCostParameters()
	f := s.FeatureVector()

	want := 0.0
	for i := range f {
		want += f[i] * p[i]
	}
	assert.InDelta(t, want, s.Predict(p), 1e-9)
}
