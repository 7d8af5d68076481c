package intensity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apnea-signal/energy-model/internal/data"
)

func intensityTable(rows ...data.Row) *data.Table {
	return &data.Table{
		Columns: []string{ColName, ColSplitTime, ColArmPulls, ColKicksPerArm, ColWallKicks},
		Rows:    rows,
	}
}

func TestComputeRecordsMissingColumns(t *testing.T) {
	table := &data.Table{
		Columns: []string{ColName, ColSplitTime},
		Rows:    []data.Row{{ColName: "A", ColSplitTime: "35"}},
	}
	_, err := ComputeRecords(table, 50, 1.5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ColKicksPerArm)
}

func TestComputeRecordsRejectsBadTuning(t *testing.T) {
	table := intensityTable()
	_, err := ComputeRecords(table, 0, 1.5)
	assert.Error(t, err)
	_, err = ComputeRecords(table, 50, 0)
	assert.Error(t, err)
}

func TestComputeRecordsLegKickFormula(t *testing.T) {
	table := intensityTable(data.Row{
		ColName: "Jane", ColSplitTime: "40", ColArmPulls: "10",
		ColKicksPerArm: "1.2", ColWallKicks: "2",
	})
	records, err := ComputeRecords(table, 50, 1.5)
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "jane", r.NormalizedName)
	assert.Equal(t, 40.0, r.SplitTimeS)
	assert.InDelta(t, 1.25, r.SplitSpeedMS, 1e-9)
	// leg kicks = 1.2*10 + 2
	assert.InDelta(t, 14.0, r.LegKicks, 1e-9)

	// work total = 50 * 1.25^2; arm share = 1.5*10 / (1.5*10 + 14).
	workTotal := 50 * 1.25 * 1.25
	armShare := 15.0 / 29.0
	assert.InDelta(t, workTotal*armShare, r.ArmWorkTotal, 1e-9)
	assert.InDelta(t, workTotal*(1-armShare), r.LegWorkTotal, 1e-9)
	require.NotNil(t, r.LegWorkPerKick)
	assert.InDelta(t, workTotal*(1-armShare)/14, *r.LegWorkPerKick, 1e-9)
	require.NotNil(t, r.LegArmWorkRatio)
	assert.InDelta(t, (1-armShare)/armShare, *r.LegArmWorkRatio, 1e-9)
}

func TestComputeRecordsSkipsUnusableRows(t *testing.T) {
	table := intensityTable(
		data.Row{ColName: " ", ColSplitTime: "40", ColArmPulls: "10", ColKicksPerArm: "1", ColWallKicks: "0"},
		data.Row{ColName: "A", ColSplitTime: "-", ColArmPulls: "10", ColKicksPerArm: "1", ColWallKicks: "0"},
		data.Row{ColName: "B", ColSplitTime: "40", ColArmPulls: "0", ColKicksPerArm: "1", ColWallKicks: "0"},
		data.Row{ColName: "C", ColSplitTime: "40", ColArmPulls: "10", ColKicksPerArm: "1", ColWallKicks: "0"},
	)
	records, err := ComputeRecords(table, 50, 1.5)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "c", records[0].NormalizedName)
}

func TestComputeRecordsNegativeKickCountsCoerceToZero(t *testing.T) {
	table := intensityTable(data.Row{
		ColName: "A", ColSplitTime: "40", ColArmPulls: "10",
		ColKicksPerArm: "-1", ColWallKicks: "-",
	})
	records, err := ComputeRecords(table, 50, 1.5)
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, 0.0, r.LegKicks)
	assert.Nil(t, r.LegWorkPerKick, "no kicks means no per-kick work")
	// All work is attributed to the arms.
	assert.InDelta(t, r.ArmWorkTotal, 50*1.25*1.25, 1e-9)
	assert.Equal(t, 0.0, r.LegWorkTotal)
}

func TestNormalizationCentersOnMedian(t *testing.T) {
	table := intensityTable(
		data.Row{ColName: "A", ColSplitTime: "36", ColArmPulls: "10", ColKicksPerArm: "1", ColWallKicks: "0"},
		data.Row{ColName: "B", ColSplitTime: "40", ColArmPulls: "10", ColKicksPerArm: "1", ColWallKicks: "0"},
		data.Row{ColName: "C", ColSplitTime: "44", ColArmPulls: "10", ColKicksPerArm: "1", ColWallKicks: "0"},
	)
	records, err := ComputeRecords(table, 50, 1.5)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// B is the field median on both components, so its intensity is 1.0;
	// the faster split gets a higher multiplier.
	var a, b *Record
	for i := range records {
		switch records[i].NormalizedName {
		case "a":
			a = &records[i]
		case "b":
			b = &records[i]
		}
	}
	require.NotNil(t, a)
	require.NotNil(t, b)
	require.NotNil(t, b.MovementIntensity)
	assert.InDelta(t, 1.0, *b.MovementIntensity, 1e-9)
	require.NotNil(t, a.MovementIntensity)
	assert.Greater(t, *a.MovementIntensity, 1.0)
}

func TestAggregateByAthleteMedians(t *testing.T) {
	table := intensityTable(
		data.Row{ColName: "Jane", ColSplitTime: "38", ColArmPulls: "10", ColKicksPerArm: "1", ColWallKicks: "0"},
		data.Row{ColName: "jane ", ColSplitTime: "42", ColArmPulls: "12", ColKicksPerArm: "1", ColWallKicks: "0"},
		data.Row{ColName: "Bob", ColSplitTime: "40", ColArmPulls: "11", ColKicksPerArm: "1", ColWallKicks: "0"},
	)
	records, err := ComputeRecords(table, 50, 1.5)
	require.NoError(t, err)

	athletes := AggregateByAthlete(records)
	require.Len(t, athletes, 2)

	// Sorted by normalized name.
	assert.Equal(t, "Bob", athletes[0].Name)
	assert.Equal(t, 1, athletes[0].Samples)
	assert.Equal(t, 2, athletes[1].Samples, "casing and whitespace variants collapse")
	assert.InDelta(t, 40.0, athletes[1].SplitTimeS, 1e-9)
	assert.InDelta(t, 11.0, athletes[1].ArmPulls, 1e-9)
}

func TestBuildMetadata(t *testing.T) {
	table := intensityTable(
		data.Row{ColName: "A", ColSplitTime: "40", ColArmPulls: "10", ColKicksPerArm: "1", ColWallKicks: "0"},
		data.Row{ColName: "B", ColSplitTime: "40", ColArmPulls: "10", ColKicksPerArm: "1", ColWallKicks: "0"},
	)
	records, err := ComputeRecords(table, 50, 1.5)
	require.NoError(t, err)

	meta := BuildMetadata(records, 50, 1.5)
	assert.Equal(t, 50.0, meta.SplitDistanceM)
	assert.Equal(t, 1.5, meta.ArmLegRatio)
	require.NotNil(t, meta.SplitTimeSMedian)
	assert.InDelta(t, 40.0, *meta.SplitTimeSMedian, 1e-9)
	require.NotNil(t, meta.TotalWorkPerSplitMedian)
	require.NotNil(t, meta.ArmWorkTotalMedian)
	require.NotNil(t, meta.LegWorkTotalMedian)
	assert.InDelta(t, *meta.ArmWorkTotalMedian+*meta.LegWorkTotalMedian, *meta.TotalWorkPerSplitMedian, 1e-6)
}
