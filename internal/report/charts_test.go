package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apnea-signal/energy-model/internal/model"
)

func sampleBand() *model.Band {
	return &model.Band{
		BandWidth: 4,
		Samples: []model.BandSample{
			{X: 50, Center: 10, Lower: 8, Upper: 12},
			{X: 100, Center: 20, Lower: 18, Upper: 22},
			{X: 150, Center: 30, Lower: 28, Upper: 32},
		},
		Metadata: model.BandMeta{Label: "movement_intensity", SourcePoints: 3},
	}
}

func TestSaveBandChartWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "band.png")

	err := SaveBandChart(sampleBand(), "DNF movement intensity", "Distance (m)", "Intensity", path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSaveStaBandChartWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sta.png")
	band := &model.StaBand{
		BandWidth: 10,
		Samples: []model.BandSample{
			{X: 200, Center: 100, Lower: 95, Upper: 105},
			{X: 300, Center: 150, Lower: 145, Upper: 155},
		},
		Metadata: model.StaBandMeta{AngleDegrees: 35, SourcePoints: 2},
	}

	err := SaveStaBandChart(band, "DNF STA projection", path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSaveBandChartRejectsEmptyBand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")

	err := SaveBandChart(nil, "empty", "x", "y", path)
	assert.Error(t, err)

	err = SaveBandChart(&model.Band{}, "empty", "x", "y", path)
	assert.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
