// Package samples builds validated fit inputs from raw attempt sheets.
package samples

import (
	"math"

	"github.com/apnea-signal/energy-model/internal/data"
	"github.com/apnea-signal/energy-model/internal/model"
)

// Attempt sheet column names.
const (
	ColName         = "Name"
	ColDistance     = "Dist"
	ColTotalTime    = "TT"
	ColArmPulls     = "TA"
	ColLegKicks     = "TK"
	ColDolphinKicks = "TDK"
	ColWallPushes   = "TW"
)

// DiscardReason tags why a row was excluded from the fit. Rows are filtered
// silently; the reasons exist so tests and logs can see what happened.
type DiscardReason string

const (
	DiscardEmptyName   DiscardReason = "empty_name"
	DiscardBadDistance DiscardReason = "bad_distance"
	DiscardNoBudget    DiscardReason = "no_budget"
	DiscardNoSlack     DiscardReason = "no_slack"
	DiscardBadCounts   DiscardReason = "bad_counts"
)

// BuildStats counts discarded rows per reason.
type BuildStats struct {
	Kept      int
	Discarded map[DiscardReason]int
}

func (s *BuildStats) discard(reason DiscardReason) {
	if s.Discarded == nil {
		s.Discarded = map[DiscardReason]int{}
	}
	s.Discarded[reason]++
}

// Options configures the sample builder.
type Options struct {
	Dataset string
	// MinDistanceM drops short attempts that carry too little signal.
	MinDistanceM float64
	// SplitDistanceM is used to derive wall pushes when the sheet has no
	// explicit count.
	SplitDistanceM float64
}

// Build joins attempt rows with the STA roster and the per-athlete movement
// intensities, producing only the rows that satisfy every sample invariant.
// Per-row problems never raise; they are tallied in the returned stats.
func Build(table *data.Table, roster map[string]float64, movement map[string]model.MovementAthlete, opts Options) ([]model.AttemptSample, BuildStats) {
	splitDistance := opts.SplitDistanceM
	if splitDistance <= 0 {
		splitDistance = 50
	}

	var stats BuildStats
	out := make([]model.AttemptSample, 0, len(table.Rows))
	for _, row := range table.Rows {
		sample, reason := buildRow(row, roster, movement, opts.MinDistanceM, splitDistance)
		if reason != "" {
			stats.discard(reason)
			continue
		}
		sample.Dataset = opts.Dataset
		out = append(out, sample)
		stats.Kept++
	}
	return out, stats
}

func buildRow(row data.Row, roster map[string]float64, movement map[string]model.MovementAthlete, minDistance, splitDistance float64) (model.AttemptSample, DiscardReason) {
	normalized := model.NormalizeName(row.Get(ColName))
	if normalized == "" {
		return model.AttemptSample{}, DiscardEmptyName
	}

	distance := model.CoerceFloat(row.Get(ColDistance))
	if !finite(distance) || distance <= 0 || distance < minDistance {
		return model.AttemptSample{}, DiscardBadDistance
	}

	budget, ok := roster[normalized]
	if !ok || !finite(budget) {
		return model.AttemptSample{}, DiscardNoBudget
	}

	totalTime := model.ParseTimeSeconds(row.Get(ColTotalTime))
	armPulls := model.CoerceFloat(row.Get(ColArmPulls))
	legKicks := model.CoerceFloat(row.Get(ColLegKicks))
	dolphinKicks := model.CoerceFloat(row.Get(ColDolphinKicks))
	wallPushes := resolveWallPushes(row, distance, splitDistance)

	allowance := budget - totalTime
	if !finite(allowance) || allowance <= 0 {
		return model.AttemptSample{}, DiscardNoSlack
	}
	for _, v := range []float64{totalTime, armPulls, legKicks, dolphinKicks, wallPushes} {
		if !finite(v) {
			return model.AttemptSample{}, DiscardBadCounts
		}
	}
	if totalTime <= 0 || armPulls < 0 || legKicks < 0 || dolphinKicks < 0 || wallPushes <= 0 {
		return model.AttemptSample{}, DiscardBadCounts
	}

	return model.AttemptSample{
		Name:               row.Get(ColName),
		NormalizedName:     normalized,
		DistanceM:          distance,
		TotalTimeS:         totalTime,
		StaBudgetS:         budget,
		MovementIntensity:  resolveIntensity(movement, normalized),
		WallPushes:         wallPushes,
		ArmPulls:           armPulls,
		LegKicks:           legKicks,
		DolphinKicks:       dolphinKicks,
		MovementAllowanceS: allowance,
	}, ""
}

// resolveWallPushes prefers the explicit count column, falling back to one
// push per split (a turn at every wall), floor one.
func resolveWallPushes(row data.Row, distance, splitDistance float64) float64 {
	tw := model.CoerceFloat(row.Get(ColWallPushes))
	if finite(tw) && tw > 0 {
		return tw
	}
	if finite(distance) && distance > 0 {
		return math.Max(1, math.Ceil(distance/splitDistance))
	}
	return math.NaN()
}

// resolveIntensity looks up the athlete's movement intensity, defaulting to
// the neutral multiplier when unknown or implausible.
func resolveIntensity(movement map[string]model.MovementAthlete, normalized string) float64 {
	entry, ok := movement[normalized]
	if !ok || entry.MovementIntensity == nil {
		return 1.0
	}
	v := *entry.MovementIntensity
	if !finite(v) || v <= 0 {
		return 1.0
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
