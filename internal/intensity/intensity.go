// Package intensity estimates per-athlete propulsion intensities from the
// opening split of each attempt.
//
// The work model is deliberately crude: total mechanical work over a split
// is proportional to distance times speed squared, divided between arms and
// legs by a fixed mechanical ratio. Per-movement work is then normalized by
// the field's median so a value of 1.0 means "typical effort".
package intensity

import (
	"fmt"
	"math"
	"sort"

	"github.com/apnea-signal/energy-model/internal/data"
	"github.com/apnea-signal/energy-model/internal/model"
)

// First-split sheet columns. ST_K is stroke-cycle leg kicks per arm pull,
// ST_WK the kicks taken off each wall.
const (
	ColName        = "Name"
	ColSplitTime   = "T50"
	ColArmPulls    = "A50"
	ColKicksPerArm = "ST_K"
	ColWallKicks   = "ST_WK"
)

// Record is one attempt's first-split intensity decomposition.
type Record struct {
	Name           string
	NormalizedName string

	SplitTimeS   float64
	SplitSpeedMS float64
	ArmPulls     float64
	LegKicks     float64

	ArmWorkPerPull  float64
	LegWorkPerKick  *float64
	ArmWorkTotal    float64
	LegWorkTotal    float64
	LegArmWorkRatio *float64

	MovementIntensity *float64
}

// ComputeRecords builds intensity records for every usable row. A sheet
// without the first-split columns is a schema mismatch and returns an error;
// individual unusable rows are skipped.
func ComputeRecords(table *data.Table, splitDistanceM, armLegRatio float64) ([]Record, error) {
	if splitDistanceM <= 0 {
		return nil, fmt.Errorf("split distance must be positive (got %g)", splitDistanceM)
	}
	if armLegRatio <= 0 {
		return nil, fmt.Errorf("arm/leg ratio must be positive (got %g)", armLegRatio)
	}
	if err := table.EnsureColumns(ColName, ColSplitTime, ColArmPulls, ColKicksPerArm, ColWallKicks); err != nil {
		return nil, fmt.Errorf("intensity computation: %w", err)
	}

	records := make([]Record, 0, len(table.Rows))
	for _, row := range table.Rows {
		normalized := model.NormalizeName(row.Get(ColName))
		if normalized == "" {
			continue
		}
		splitSeconds := model.ParseTimeSeconds(row.Get(ColSplitTime))
		armPulls := model.CoerceFloat(row.Get(ColArmPulls))
		kicksPerArm := nonNegative(model.CoerceFloat(row.Get(ColKicksPerArm)))
		wallKicks := nonNegative(model.CoerceFloat(row.Get(ColWallKicks)))
		if !(finite(splitSeconds) && splitSeconds > 0 && finite(armPulls) && armPulls > 0) {
			continue
		}

		legKicks := kicksPerArm*armPulls + wallKicks
		speed := splitDistanceM / splitSeconds
		workTotal := splitDistanceM * speed * speed
		armShare := computeArmShare(armPulls, legKicks, armLegRatio)
		armWork := workTotal * armShare
		legWork := workTotal - armWork

		r := Record{
			Name:           row.Get(ColName),
			NormalizedName: normalized,
			SplitTimeS:     splitSeconds,
			SplitSpeedMS:   speed,
			ArmPulls:       armPulls,
			LegKicks:       legKicks,
			ArmWorkPerPull: armWork / armPulls,
			ArmWorkTotal:   armWork,
			LegWorkTotal:   legWork,
		}
		if legKicks > 0 {
			perKick := legWork / legKicks
			r.LegWorkPerKick = &perKick
		}
		if armWork > 0 {
			ratio := legWork / armWork
			r.LegArmWorkRatio = &ratio
		}
		records = append(records, r)
	}
	if len(records) == 0 {
		return nil, nil
	}

	normalizeIntensities(records)
	return records, nil
}

// computeArmShare estimates the fraction of split work performed by the
// arms, treating one arm pull as armLegRatio leg kicks.
func computeArmShare(armPulls, legKicks, armLegRatio float64) float64 {
	numerator := armLegRatio * armPulls
	denominator := numerator + math.Max(legKicks, 0)
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator
}

// normalizeIntensities divides each athlete's per-movement work by the field
// median and averages the defined components into a single multiplier.
func normalizeIntensities(records []Record) {
	armValues := make([]float64, 0, len(records))
	legValues := make([]float64, 0, len(records))
	for _, r := range records {
		armValues = append(armValues, r.ArmWorkPerPull)
		if r.LegWorkPerKick != nil {
			legValues = append(legValues, *r.LegWorkPerKick)
		}
	}
	armMedian := median(armValues)
	legMedian := median(legValues)

	for i := range records {
		var components []float64
		if armMedian != 0 {
			components = append(components, records[i].ArmWorkPerPull/armMedian)
		}
		if legMedian != 0 && records[i].LegWorkPerKick != nil {
			components = append(components, *records[i].LegWorkPerKick/legMedian)
		}
		if len(components) == 0 {
			continue
		}
		total := 0.0
		for _, c := range components {
			total += c
		}
		v := total / float64(len(components))
		records[i].MovementIntensity = &v
	}
}

// AggregateByAthlete collapses multiple attempts per athlete into medians,
// sorted by normalized name for stable artifacts.
func AggregateByAthlete(records []Record) []model.MovementAthlete {
	grouped := map[string][]Record{}
	order := make([]string, 0)
	for _, r := range records {
		if _, seen := grouped[r.NormalizedName]; !seen {
			order = append(order, r.NormalizedName)
		}
		grouped[r.NormalizedName] = append(grouped[r.NormalizedName], r)
	}
	sort.Strings(order)

	athletes := make([]model.MovementAthlete, 0, len(grouped))
	for _, key := range order {
		entries := grouped[key]
		a := model.MovementAthlete{
			Name:           entries[0].Name,
			Samples:        len(entries),
			SplitTimeS:     model.Round(medianOf(entries, func(r Record) float64 { return r.SplitTimeS }), 3),
			SplitSpeedMS:   model.Round(medianOf(entries, func(r Record) float64 { return r.SplitSpeedMS }), 4),
			ArmPulls:       model.Round(medianOf(entries, func(r Record) float64 { return r.ArmPulls }), 3),
			LegKicks:       model.Round(medianOf(entries, func(r Record) float64 { return r.LegKicks }), 3),
			ArmWorkPerPull: model.Round(medianOf(entries, func(r Record) float64 { return r.ArmWorkPerPull }), 4),
			ArmWorkTotal:   model.Round(medianOf(entries, func(r Record) float64 { return r.ArmWorkTotal }), 4),
			LegWorkTotal:   model.Round(medianOf(entries, func(r Record) float64 { return r.LegWorkTotal }), 4),
		}
		a.LegWorkPerKick = roundOptional(medianOptional(entries, func(r Record) *float64 { return r.LegWorkPerKick }), 4)
		a.LegArmWorkRatio = roundOptional(medianOptional(entries, func(r Record) *float64 { return r.LegArmWorkRatio }), 4)
		a.MovementIntensity = roundOptional(medianOptional(entries, func(r Record) *float64 { return r.MovementIntensity }), 4)
		athletes = append(athletes, a)
	}
	return athletes
}

// BuildMetadata summarizes the dataset's intensity distribution.
func BuildMetadata(records []Record, splitDistanceM, armLegRatio float64) model.MovementMetadata {
	meta := model.MovementMetadata{
		SplitDistanceM: splitDistanceM,
		ArmLegRatio:    armLegRatio,
	}
	meta.SplitTimeSMedian = roundOptional(medianPtr(records, func(r Record) float64 { return r.SplitTimeS }), 4)
	meta.ArmPullsMedian = roundOptional(medianPtr(records, func(r Record) float64 { return r.ArmPulls }), 4)
	meta.LegKicksMedian = roundOptional(medianPtr(records, func(r Record) float64 { return r.LegKicks }), 4)
	meta.ArmWorkPerPullMedian = roundOptional(medianPtr(records, func(r Record) float64 { return r.ArmWorkPerPull }), 4)
	meta.LegWorkPerKickMedian = roundOptional(medianOptional(records, func(r Record) *float64 { return r.LegWorkPerKick }), 4)
	meta.ArmWorkTotalMedian = roundOptional(medianPtr(records, func(r Record) float64 { return r.ArmWorkTotal }), 4)
	meta.LegWorkTotalMedian = roundOptional(medianPtr(records, func(r Record) float64 { return r.LegWorkTotal }), 4)
	if meta.ArmWorkTotalMedian != nil && meta.LegWorkTotalMedian != nil {
		total := model.Round(*meta.ArmWorkTotalMedian+*meta.LegWorkTotalMedian, 4)
		meta.TotalWorkPerSplitMedian = &total
	}
	meta.MovementIntensityMedian = roundOptional(medianOptional(records, func(r Record) *float64 { return r.MovementIntensity }), 4)
	return meta
}

func medianOf(records []Record, get func(Record) float64) float64 {
	values := make([]float64, 0, len(records))
	for _, r := range records {
		if v := get(r); finite(v) {
			values = append(values, v)
		}
	}
	return median(values)
}

func medianPtr(records []Record, get func(Record) float64) *float64 {
	values := make([]float64, 0, len(records))
	for _, r := range records {
		if v := get(r); finite(v) {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil
	}
	v := median(values)
	return &v
}

func medianOptional(records []Record, get func(Record) *float64) *float64 {
	values := make([]float64, 0, len(records))
	for _, r := range records {
		if p := get(r); p != nil && finite(*p) {
			values = append(values, *p)
		}
	}
	if len(values) == 0 {
		return nil
	}
	v := median(values)
	return &v
}

func roundOptional(v *float64, decimals int) *float64 {
	if v == nil {
		return nil
	}
	rounded := model.Round(*v, decimals)
	return &rounded
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

func nonNegative(v float64) float64 {
	if !finite(v) || v < 0 {
		return 0
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
