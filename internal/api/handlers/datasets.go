package handlers

import (
	"net/http"
	"sort"

	"github.com/apnea-signal/energy-model/internal/api/models"
	"github.com/apnea-signal/energy-model/internal/config"

	"github.com/gin-gonic/gin"
)

// DatasetHandler serves the configured dataset list.
type DatasetHandler struct {
	cfg *config.Config
}

// NewDatasetHandler creates a dataset handler.
func NewDatasetHandler(cfg *config.Config) *DatasetHandler {
	return &DatasetHandler{cfg: cfg}
}

// ListDatasets handles GET /api/v1/datasets
func (h *DatasetHandler) ListDatasets(c *gin.Context) {
	datasets := make([]models.DatasetInfo, 0, len(h.cfg.Datasets))
	for id, file := range h.cfg.Datasets {
		datasets = append(datasets, models.DatasetInfo{ID: id, CSVFile: file})
	}
	sort.Slice(datasets, func(i, j int) bool { return datasets[i].ID < datasets[j].ID })

	c.JSON(http.StatusOK, gin.H{"datasets": datasets, "count": len(datasets)})
}
