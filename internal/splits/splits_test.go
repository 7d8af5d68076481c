package splits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apnea-signal/energy-model/internal/data"
)

func TestComputeSplitStatsMissingDistColumn(t *testing.T) {
	table := &data.Table{
		Columns: []string{"Name", "T50"},
		Rows:    []data.Row{{"Name": "A", "T50": "35"}},
	}
	_, err := ComputeSplitStats(table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Dist")
}

func TestComputeSplitStatsWeightedMean(t *testing.T) {
	table := &data.Table{
		Columns: []string{"Name", "Dist", "T50", "T100"},
		Rows: []data.Row{
			{"Name": "A", "Dist": "100", "T50": "30", "T100": "70"},
			{"Name": "B", "Dist": "50", "T50": "45", "T100": "-"},
		},
	}
	stats, err := ComputeSplitStats(table)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	// (30*100 + 45*50) / 150 = 35.
	assert.Equal(t, "T50", stats[0].SplitLabel)
	assert.Equal(t, 50, stats[0].SplitDistanceM)
	assert.InDelta(t, 35.0, stats[0].WeightedTimeS, 1e-9)
	assert.Equal(t, "0:35", stats[0].WeightedTimeStr)
	assert.Equal(t, 2, stats[0].Samples)

	// Only A reached 100 m.
	assert.Equal(t, "T100", stats[1].SplitLabel)
	assert.InDelta(t, 70.0, stats[1].WeightedTimeS, 1e-9)
	assert.Equal(t, 1, stats[1].Samples)
}

func TestComputeSplitStatsSkipsNegativeTimes(t *testing.T) {
	table := &data.Table{
		Columns: []string{"Dist", "T50"},
		Rows: []data.Row{
			{"Dist": "100", "T50": "-5"},
			{"Dist": "100", "T50": "40"},
		},
	}
	stats, err := ComputeSplitStats(table)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].Samples)
	assert.InDelta(t, 40.0, stats[0].WeightedTimeS, 1e-9)
}

func TestComputeSplitStatsIgnoresNonSplitColumns(t *testing.T) {
	table := &data.Table{
		Columns: []string{"Dist", "TT", "TW", "T50x", "T50"},
		Rows:    []data.Row{{"Dist": "100", "TT": "80", "TW": "2", "T50x": "1", "T50": "35"}},
	}
	stats, err := ComputeSplitStats(table)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "T50", stats[0].SplitLabel)
}

func staTable() *data.Table {
	return &data.Table{
		Columns: []string{"Name", "Dist"},
		Rows: []data.Row{
			{"Name": "A", "Dist": "100"},
			{"Name": "B", "Dist": "120"},
			{"Name": "C", "Dist": "150"},
			{"Name": "Unknown", "Dist": "90"},
		},
	}
}

func TestComputeStaProjection(t *testing.T) {
	roster := map[string]float64{"a": 240, "b": 280, "c": 330}
	projection, ok := ComputeStaProjection(staTable(), roster)
	require.True(t, ok)

	assert.Equal(t, 3, projection.SampleCount, "rows without roster entries are ignored")
	assert.Equal(t, 240.0, projection.StaSecondsMin)
	assert.Equal(t, 330.0, projection.StaSecondsMax)
	assert.Equal(t, 100.0, projection.DistanceMin)
	assert.Equal(t, 150.0, projection.DistanceMax)
	assert.Equal(t, 120.0, projection.DistanceMedian)
	assert.Equal(t, 240.0, projection.OffsetSeconds)

	// slope = max(0.05, 50/90 + 0.0003*30 + 0.02)
	assert.InDelta(t, 50.0/90.0+0.009+0.02, projection.Slope, 1e-6)
	assert.Greater(t, projection.AngleDegrees, 0.0)
}

func TestComputeStaProjectionTooFewSamples(t *testing.T) {
	roster := map[string]float64{"a": 240}
	_, ok := ComputeStaProjection(staTable(), roster)
	assert.False(t, ok)
}
