package fit

import (
	"math"

	"github.com/apnea-signal/energy-model/internal/model"
)

// EstimateSplitCount returns the (possibly fractional) number of splits an
// attempt covered, floor one. NaN for an unusable distance.
func EstimateSplitCount(distanceM, splitDistanceM float64) float64 {
	if !finite(distanceM) || distanceM <= 0 {
		return math.NaN()
	}
	if !finite(splitDistanceM) || splitDistanceM <= 0 {
		splitDistanceM = 50
	}
	return math.Max(1, distanceM/splitDistanceM)
}

// splitCounts holds per-split movement counts after default filling.
type splitCounts struct {
	wallPushes   float64
	armPulls     float64
	legKicks     float64
	dolphinKicks float64
}

// resolveSplitCounts prefers the athlete's observed first-split counts and
// falls back to dividing the attempt totals evenly across splits. The even
// division is an approximation: aggregated per-split costs then only
// approximate the whole-attempt totals.
func resolveSplitCounts(s model.AttemptSample, entry *model.MovementAthlete, splits float64) splitCounts {
	counts := splitCounts{
		armPulls:     s.ArmPulls / splits,
		legKicks:     s.LegKicks / splits,
		dolphinKicks: s.DolphinKicks / splits,
	}
	if entry != nil {
		if finite(entry.ArmPulls) && entry.ArmPulls >= 0 {
			counts.armPulls = entry.ArmPulls
		}
		if finite(entry.LegKicks) && entry.LegKicks >= 0 {
			counts.legKicks = entry.LegKicks
		}
	}
	for _, v := range []*float64{&counts.armPulls, &counts.legKicks, &counts.dolphinKicks} {
		if !finite(*v) || *v < 0 {
			*v = 0
		}
	}
	counts.wallPushes = s.WallPushes / splits
	if !finite(counts.wallPushes) || counts.wallPushes <= 0 {
		counts.wallPushes = 1
	}
	return counts
}

// SplitO2Cost estimates the oxygen cost of a single split by applying the
// fitted coefficients to per-split quantities: observed first-split counts
// when available, otherwise even division of the attempt totals. Returns
// false when no usable split time exists.
func SplitO2Cost(s model.AttemptSample, params model.CostParameters, entry *model.MovementAthlete, splitDistanceM float64) (float64, bool) {
	splits := EstimateSplitCount(s.DistanceM, splitDistanceM)
	if !finite(splits) || splits <= 0 {
		return 0, false
	}

	splitTime := math.NaN()
	if entry != nil && finite(entry.SplitTimeS) && entry.SplitTimeS > 0 {
		splitTime = entry.SplitTimeS
	}
	if !finite(splitTime) || splitTime <= 0 {
		splitTime = s.TotalTimeS / splits
	}
	if !finite(splitTime) || splitTime <= 0 {
		return 0, false
	}

	counts := resolveSplitCounts(s, entry, splits)
	multiplier := s.MovementIntensity
	if multiplier == 0 {
		multiplier = 1.0
	}

	movementFeatures := [model.NumParams]float64{
		model.ParamWallPush:          counts.wallPushes * multiplier,
		model.ParamArm:               counts.armPulls * multiplier,
		model.ParamLeg:               counts.legKicks * multiplier,
		model.ParamDolphin:           counts.dolphinKicks * multiplier,
		model.ParamIntensityTime:     splitTime * multiplier,
		model.ParamAnaerobicRecovery: -splitTime,
	}
	movementCost := 0.0
	for i := model.ParamWallPush; i <= model.ParamAnaerobicRecovery; i++ {
		movementCost += params[i] * movementFeatures[i]
	}
	total := movementCost + params[model.ParamStaticRate]*splitTime
	if !finite(total) {
		return 0, false
	}
	return total, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
