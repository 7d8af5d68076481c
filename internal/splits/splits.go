// Package splits computes distance-weighted split summaries and the STA
// projection parameters for a competition dataset.
package splits

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"

	"github.com/apnea-signal/energy-model/internal/data"
	"github.com/apnea-signal/energy-model/internal/model"
)

// splitPattern matches split checkpoint columns: T50, T100, ...
var splitPattern = regexp.MustCompile(`^T(\d+)$`)

// MinStaSamples is the minimum roster overlap for an STA projection.
const MinStaSamples = 3

// ComputeSplitStats averages each split column's times weighted by the
// total distance of the attempt, so long attempts (which pass through more
// checkpoints at race pace) dominate the summary. A missing Dist column is a
// schema error.
func ComputeSplitStats(table *data.Table) ([]model.SplitStat, error) {
	if err := table.EnsureColumns("Dist"); err != nil {
		return nil, fmt.Errorf("split weighting: %w", err)
	}

	stats := make([]model.SplitStat, 0)
	for _, column := range splitColumns(table.Columns) {
		weightedTotal := 0.0
		weightSum := 0.0
		count := 0
		for _, row := range table.Rows {
			seconds := model.ParseTimeSeconds(row.Get(column.label))
			distance := model.CoerceFloat(row.Get("Dist"))
			if math.IsNaN(seconds) || seconds < 0 || math.IsNaN(distance) {
				continue
			}
			weightedTotal += seconds * distance
			weightSum += distance
			count++
		}
		if count == 0 || weightSum <= 0 {
			continue
		}
		weighted := weightedTotal / weightSum
		stats = append(stats, model.SplitStat{
			SplitLabel:      column.label,
			SplitDistanceM:  column.distance,
			WeightedTimeS:   model.Round(weighted, 3),
			WeightedTimeStr: model.FormatSeconds(weighted),
			Samples:         count,
		})
	}
	return stats, nil
}

type splitColumn struct {
	distance int
	label    string
}

func splitColumns(columns []string) []splitColumn {
	out := make([]splitColumn, 0)
	for _, column := range columns {
		m := splitPattern.FindStringSubmatch(column)
		if m == nil {
			continue
		}
		distance, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		out = append(out, splitColumn{distance: distance, label: column})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].distance < out[j].distance })
	return out
}

// ComputeStaProjection derives the heuristic slope/offset used by the
// dashboard to project a distance from an STA time. The slope formula is
// empirical (span ratio plus a spread correction); it is exported data, not
// something downstream stages recompute.
func ComputeStaProjection(table *data.Table, roster map[string]float64) (*model.StaProjection, bool) {
	staValues := make([]float64, 0)
	distances := make([]float64, 0)
	for _, row := range table.Rows {
		name := model.NormalizeName(row.Get("Name"))
		if name == "" {
			continue
		}
		sta, ok := roster[name]
		if !ok {
			continue
		}
		distance := model.CoerceFloat(row.Get("Dist"))
		if math.IsNaN(distance) {
			continue
		}
		staValues = append(staValues, sta)
		distances = append(distances, distance)
	}
	if len(staValues) < MinStaSamples {
		return nil, false
	}

	staMin, staMax := minMax(staValues)
	distMin, distMax := minMax(distances)
	staSpan := math.Max(staMax-staMin, 1)
	distMedian := median(distances)
	rangeRatio := (distMax - distMin) / staSpan
	spread := math.Max(0, distMax-distMedian)
	slope := math.Max(0.05, rangeRatio+0.0003*spread+0.02)
	angle := math.Atan(slope) * 180 / math.Pi

	return &model.StaProjection{
		Slope:          model.Round(slope, 6),
		OffsetSeconds:  model.Round(staMin, 3),
		AngleDegrees:   model.Round(angle, 3),
		StaSecondsMin:  staMin,
		StaSecondsMax:  staMax,
		DistanceMin:    distMin,
		DistanceMax:    distMax,
		DistanceMedian: distMedian,
		SampleCount:    len(staValues),
	}, true
}

func minMax(values []float64) (minVal, maxVal float64) {
	minVal, maxVal = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	return minVal, maxVal
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	if len(sorted) == 0 {
		return 0
	}
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
