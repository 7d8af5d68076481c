package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apnea-signal/energy-model/internal/config"
	"github.com/apnea-signal/energy-model/internal/pipeline"
)

func testRouter(t *testing.T, outputDir string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.OutputDir = outputDir
	p := pipeline.New(cfg, nil)

	artifactHandler := NewArtifactHandler(p)
	datasetHandler := NewDatasetHandler(cfg)

	router := gin.New()
	router.GET("/api/v1/artifacts", artifactHandler.ListArtifacts)
	router.GET("/api/v1/artifacts/:stage", artifactHandler.GetArtifact)
	router.GET("/api/v1/datasets", datasetHandler.ListDatasets)
	return router
}

func TestListArtifacts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, pipeline.ArtifactSplitStats), []byte(`{"DNF":{}}`), 0o644))
	router := testRouter(t, dir)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/artifacts", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Artifacts []struct {
			Stage  string `json:"stage"`
			File   string `json:"file"`
			Exists bool   `json:"exists"`
		} `json:"artifacts"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 6, body.Count, "one entry per artifact-producing stage")

	byStage := map[string]bool{}
	for _, a := range body.Artifacts {
		byStage[a.Stage] = a.Exists
	}
	assert.True(t, byStage["splits"])
	assert.False(t, byStage["oxygenfit"])
}

func TestGetArtifact(t *testing.T) {
	dir := t.TempDir()
	payload := `{"DNF":{"splits":[]}}`
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, pipeline.ArtifactSplitStats), []byte(payload), 0o644))
	router := testRouter(t, dir)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/artifacts/splits", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, payload, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}

func TestGetArtifactMissing(t *testing.T) {
	router := testRouter(t, t.TempDir())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/artifacts/splits", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetArtifactUnknownStage(t *testing.T) {
	router := testRouter(t, t.TempDir())

	for _, stage := range []string{"bogus", "charts"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/artifacts/"+stage, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code, "stage %q", stage)
	}
}

func TestListDatasets(t *testing.T) {
	router := testRouter(t, t.TempDir())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/datasets", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Datasets []struct {
			ID      string `json:"id"`
			CSVFile string `json:"csv_file"`
		} `json:"datasets"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Datasets, 2)
	assert.Equal(t, "DNF", body.Datasets[0].ID, "sorted by id")
	assert.Equal(t, "DYNB", body.Datasets[1].ID)
}
