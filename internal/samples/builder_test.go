package samples

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apnea-signal/energy-model/internal/data"
	"github.com/apnea-signal/energy-model/internal/model"
)

func attemptTable(rows ...data.Row) *data.Table {
	return &data.Table{
		Columns: []string{ColName, ColDistance, ColTotalTime, ColArmPulls, ColLegKicks, ColDolphinKicks, ColWallPushes},
		Rows:    rows,
	}
}

func validRow() data.Row {
	return data.Row{
		ColName:         "Jane Doe",
		ColDistance:     "100",
		ColTotalTime:    "1:20",
		ColArmPulls:     "20",
		ColLegKicks:     "24",
		ColDolphinKicks: "0",
		ColWallPushes:   "2",
	}
}

func rosterFor(seconds float64) map[string]float64 {
	return map[string]float64{"jane doe": seconds}
}

func TestBuildKeepsValidRow(t *testing.T) {
	built, stats := Build(attemptTable(validRow()), rosterFor(300), nil, Options{Dataset: "DNF", SplitDistanceM: 50})

	require.Len(t, built, 1)
	assert.Equal(t, 1, stats.Kept)
	assert.Empty(t, stats.Discarded)

	s := built[0]
	assert.Equal(t, "DNF", s.Dataset)
	assert.Equal(t, "jane doe", s.NormalizedName)
	assert.Equal(t, 100.0, s.DistanceM)
	assert.Equal(t, 80.0, s.TotalTimeS)
	assert.Equal(t, 300.0, s.StaBudgetS)
	assert.Equal(t, 220.0, s.MovementAllowanceS)
	assert.Equal(t, 1.0, s.MovementIntensity)
}

func TestBuildDerivesWallPushes(t *testing.T) {
	row := validRow()
	row[ColWallPushes] = ""
	built, _ := Build(attemptTable(row), rosterFor(300), nil, Options{SplitDistanceM: 50})

	require.Len(t, built, 1)
	// 100 m at 50 m splits: one push per wall.
	assert.Equal(t, 2.0, built[0].WallPushes)

	row = validRow()
	row[ColWallPushes] = "-"
	row[ColDistance] = "30"
	built, _ = Build(attemptTable(row), rosterFor(300), nil, Options{SplitDistanceM: 50})
	require.Len(t, built, 1)
	assert.Equal(t, 1.0, built[0].WallPushes, "short attempts still push off once")
}

func TestBuildDiscardReasons(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(data.Row) data.Row
		reason DiscardReason
	}{
		{"blank name", func(r data.Row) data.Row { r[ColName] = "  "; return r }, DiscardEmptyName},
		{"zero distance", func(r data.Row) data.Row { r[ColDistance] = "0"; return r }, DiscardBadDistance},
		{"unparsable distance", func(r data.Row) data.Row { r[ColDistance] = "dnf"; return r }, DiscardBadDistance},
		{"unknown athlete", func(r data.Row) data.Row { r[ColName] = "Nobody"; return r }, DiscardNoBudget},
		{"swim time exceeds budget", func(r data.Row) data.Row { r[ColTotalTime] = "6:00"; return r }, DiscardNoSlack},
		{"missing total time", func(r data.Row) data.Row { r[ColTotalTime] = "-"; return r }, DiscardNoSlack},
		{"negative arm pulls", func(r data.Row) data.Row { r[ColArmPulls] = "-3"; return r }, DiscardBadCounts},
		{"unparsable leg kicks", func(r data.Row) data.Row { r[ColLegKicks] = "?"; return r }, DiscardBadCounts},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			built, stats := Build(attemptTable(tt.mutate(validRow())), rosterFor(300), nil, Options{SplitDistanceM: 50})
			assert.Empty(t, built)
			assert.Equal(t, 1, stats.Discarded[tt.reason])
		})
	}
}

func TestBuildMinDistanceFilter(t *testing.T) {
	built, stats := Build(attemptTable(validRow()), rosterFor(300), nil, Options{MinDistanceM: 150, SplitDistanceM: 50})
	assert.Empty(t, built)
	assert.Equal(t, 1, stats.Discarded[DiscardBadDistance])
}

func TestBuildUsesMovementIntensity(t *testing.T) {
	intensity := 1.3
	movement := map[string]model.MovementAthlete{
		"jane doe": {Name: "Jane Doe", MovementIntensity: &intensity},
	}
	built, _ := Build(attemptTable(validRow()), rosterFor(300), movement, Options{SplitDistanceM: 50})

	require.Len(t, built, 1)
	assert.Equal(t, 1.3, built[0].MovementIntensity)

	bad := -2.0
	movement["jane doe"] = model.MovementAthlete{Name: "Jane Doe", MovementIntensity: &bad}
	built, _ = Build(attemptTable(validRow()), rosterFor(300), movement, Options{SplitDistanceM: 50})
	require.Len(t, built, 1)
	assert.Equal(t, 1.0, built[0].MovementIntensity, "implausible intensity falls back to neutral")
}
