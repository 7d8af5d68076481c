// Package pipeline orchestrates the analytics stages. Each stage reads raw
// sheets or upstream artifacts, computes one result set keyed by dataset
// name, and writes a single JSON artifact into the configured output
// directory.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/apnea-signal/energy-model/internal/config"
	"github.com/apnea-signal/energy-model/internal/data"
)

// Artifact file names, in stage order. Downstream stages and the API locate
// artifacts by these names.
const (
	ArtifactSplitStats    = "01_split_stats.json"
	ArtifactStaticBands   = "02_static_bands.json"
	ArtifactMovement      = "03_movement_intensity.json"
	ArtifactMovementBands = "04_movement_bands.json"
	ArtifactPropulsion    = "05_propulsion_fit.json"
	ArtifactDistanceBands = "06_distance_fit_bands.json"
)

// Stage is one runnable pipeline step.
type Stage struct {
	Name string
	// Artifact is the output file name, empty for stages that write
	// non-JSON output (charts).
	Artifact string
	Run      func(*Pipeline) error
}

// Pipeline binds the configuration and logger shared by all stages.
type Pipeline struct {
	cfg *config.Config
	log *slog.Logger
}

// New builds a pipeline. A nil logger falls back to slog.Default.
func New(cfg *config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, log: logger}
}

// Stages returns the stage registry in execution order.
func Stages() []Stage {
	return []Stage{
		{Name: "splits", Artifact: ArtifactSplitStats, Run: (*Pipeline).RunSplits},
		{Name: "stabands", Artifact: ArtifactStaticBands, Run: (*Pipeline).RunStaBands},
		{Name: "intensity", Artifact: ArtifactMovement, Run: (*Pipeline).RunIntensity},
		{Name: "movementbands", Artifact: ArtifactMovementBands, Run: (*Pipeline).RunMovementBands},
		{Name: "oxygenfit", Artifact: ArtifactPropulsion, Run: (*Pipeline).RunOxygenFit},
		{Name: "distancebands", Artifact: ArtifactDistanceBands, Run: (*Pipeline).RunDistanceBands},
		{Name: "charts", Run: (*Pipeline).RunCharts},
	}
}

// Lookup finds a stage by name.
func Lookup(name string) (Stage, bool) {
	for _, s := range Stages() {
		if s.Name == name {
			return s, true
		}
	}
	return Stage{}, false
}

// RunAll executes every stage in order and stops on the first failure.
func (p *Pipeline) RunAll() error {
	for _, stage := range Stages() {
		p.log.Info("running stage", "stage", stage.Name)
		if err := stage.Run(p); err != nil {
			return fmt.Errorf("stage %s: %w", stage.Name, err)
		}
	}
	return nil
}

// ArtifactPath returns the absolute location of an artifact file.
func (p *Pipeline) ArtifactPath(name string) string {
	return filepath.Join(p.cfg.OutputDir, name)
}

// writeArtifact persists a dataset-keyed payload and logs its location.
func (p *Pipeline) writeArtifact(name string, payload any) error {
	path := p.ArtifactPath(name)
	if err := data.WriteJSON(path, payload); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	p.log.Info("artifact written", "path", path)
	return nil
}

// loadDatasetTable loads one dataset's CSV. A missing file is reported as
// skippable (nil table, nil error) so stages can warn and move on; any other
// read problem is an error.
func (p *Pipeline) loadDatasetTable(dataset string) (*data.Table, error) {
	path := p.cfg.DatasetCSV(dataset)
	table, err := data.LoadTable(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			p.log.Warn("dataset sheet missing, skipping", "dataset", dataset, "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("dataset %s: %w", dataset, err)
	}
	return table, nil
}

// sortedDatasets returns the configured dataset names in stable order.
func (p *Pipeline) sortedDatasets() []string {
	names := make([]string, 0, len(p.cfg.Datasets))
	for name := range p.cfg.Datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
