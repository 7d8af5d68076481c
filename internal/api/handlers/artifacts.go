package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/apnea-signal/energy-model/internal/api/models"
	"github.com/apnea-signal/energy-model/internal/data"
	"github.com/apnea-signal/energy-model/internal/pipeline"

	"github.com/gin-gonic/gin"
)

// artifactCacheTTL bounds how stale a served artifact can be relative to a
// concurrent pipeline run; the cache also invalidates on file mtime.
const artifactCacheTTL = 30 * time.Second

// ArtifactHandler serves the generated pipeline artifacts.
type ArtifactHandler struct {
	p     *pipeline.Pipeline
	cache *data.ArtifactCache
}

// NewArtifactHandler creates an artifact handler over the pipeline's output
// directory.
func NewArtifactHandler(p *pipeline.Pipeline) *ArtifactHandler {
	return &ArtifactHandler{
		p:     p,
		cache: data.NewArtifactCache(artifactCacheTTL),
	}
}

// ListArtifacts handles GET /api/v1/artifacts
func (h *ArtifactHandler) ListArtifacts(c *gin.Context) {
	artifacts := []models.ArtifactInfo{}
	for _, stage := range pipeline.Stages() {
		if stage.Artifact == "" {
			continue
		}
		info := models.ArtifactInfo{Stage: stage.Name, File: stage.Artifact}
		if stat, err := os.Stat(h.p.ArtifactPath(stage.Artifact)); err == nil {
			info.Exists = true
			info.SizeBytes = stat.Size()
			mod := stat.ModTime().UTC()
			info.ModifiedAt = &mod
		}
		artifacts = append(artifacts, info)
	}
	c.JSON(http.StatusOK, gin.H{"artifacts": artifacts, "count": len(artifacts)})
}

// GetArtifact handles GET /api/v1/artifacts/:stage
func (h *ArtifactHandler) GetArtifact(c *gin.Context) {
	name := c.Param("stage")
	stage, ok := pipeline.Lookup(name)
	if !ok || stage.Artifact == "" {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "UNKNOWN_STAGE",
				Message: fmt.Sprintf("no artifact-producing stage named %q", name),
			},
		})
		return
	}

	raw, err := h.cache.Load(h.p.ArtifactPath(stage.Artifact))
	if err != nil {
		status := http.StatusInternalServerError
		code := "ARTIFACT_READ_ERROR"
		var invalid *data.InvalidArtifactError
		switch {
		case errors.Is(err, os.ErrNotExist):
			status = http.StatusNotFound
			code = "ARTIFACT_MISSING"
		case errors.As(err, &invalid):
			code = "ARTIFACT_CORRUPT"
		}
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{Code: code, Message: err.Error()},
		})
		return
	}

	c.Data(http.StatusOK, "application/json", raw)
}
