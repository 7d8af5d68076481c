package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk pipeline configuration (YAML).
type Config struct {
	// DataRoot holds the competition CSV files.
	DataRoot string `yaml:"data_root"`
	// RosterFile is the STA personal-best sheet (Name, STA columns).
	RosterFile string `yaml:"roster_file"`
	// SettingsFile is the dashboard-owned STA band settings JSON.
	SettingsFile string `yaml:"settings_file"`
	// OutputDir receives the JSON artifacts.
	OutputDir string `yaml:"output_dir"`

	// Datasets maps dataset name (DNF, DYNB) to its CSV filename under
	// DataRoot. Intensity-derived stages only apply to datasets whose sheet
	// carries the first-split columns; the stages skip the rest with a warning.
	Datasets map[string]string `yaml:"datasets"`

	// MinDistanceM drops attempts shorter than this from the oxygen fit.
	MinDistanceM float64 `yaml:"min_distance_m"`
	// SplitDistanceM is the checkpoint spacing (meters).
	SplitDistanceM float64 `yaml:"split_distance_m"`
	// ArmLegRatio is the assumed mechanical load of one arm pull in leg kicks.
	ArmLegRatio float64 `yaml:"arm_leg_ratio"`

	Fit   FitConfig  `yaml:"fit"`
	Bands BandConfig `yaml:"bands"`
}

// FitConfig carries the gradient-descent tuning. The learning rate and
// tolerance are empirically tuned; treat them as configuration.
type FitConfig struct {
	LearningRate  float64 `yaml:"learning_rate"`
	MaxIterations int     `yaml:"max_iterations"`
	Tolerance     float64 `yaml:"tolerance"`

	// Asymmetric penalty weights: overshooting the STA budget (or the implied
	// distance) is penalized harder than undershooting.
	BudgetOverWeight    float64 `yaml:"budget_over_weight"`
	BudgetUnderWeight   float64 `yaml:"budget_under_weight"`
	DistanceOverWeight  float64 `yaml:"distance_over_weight"`
	DistanceUnderWeight float64 `yaml:"distance_under_weight"`

	// Relative weight of the two penalty terms in the combined objective.
	BudgetTermWeight   float64 `yaml:"budget_term_weight"`
	DistanceTermWeight float64 `yaml:"distance_term_weight"`
}

// BandConfig carries the robust band fitter tuning shared across stages.
type BandConfig struct {
	MinPoints      int     `yaml:"min_points"`
	SampleCount    int     `yaml:"sample_count"`
	CoverageTarget float64 `yaml:"coverage_target"`
	WidenFactor    float64 `yaml:"widen_factor"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		DataRoot:       "data/aida_greece_2025",
		RosterFile:     "data/aida_greece_2025/STA_PB.csv",
		SettingsFile:   "web/sta_band_settings.json",
		OutputDir:      "data/dashboard_data",
		Datasets:       map[string]string{"DNF": "DNF.csv", "DYNB": "DYNB.csv"},
		MinDistanceM:   0,
		SplitDistanceM: 50,
		ArmLegRatio:    1.5,
		Fit: FitConfig{
			LearningRate:        1e-5,
			MaxIterations:       40_000,
			Tolerance:           1e-6,
			BudgetOverWeight:    1.0,
			BudgetUnderWeight:   0.6,
			DistanceOverWeight:  1.6,
			DistanceUnderWeight: 0.6,
			BudgetTermWeight:    1.0,
			DistanceTermWeight:  2.0,
		},
		Bands: BandConfig{
			MinPoints:      5,
			SampleCount:    25,
			CoverageTarget: 0.60,
			WidenFactor:    1.2,
		},
	}
}

// Load reads, defaults, and validates a config file. An empty path returns
// the validated defaults. The file is decoded over a Default copy, so fields
// it omits keep their defaults while fields it sets, including explicit
// zeros, are kept as written.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Decoding into a populated map merges key-by-key; clear it so a
		// configured dataset list fully replaces the default one.
		c.Datasets = nil
		if err := yaml.Unmarshal(raw, c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		if len(c.Datasets) == 0 {
			c.Datasets = Default().Datasets
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads the config without defaulting or validation. Useful
// for debugging partial configs.
func LoadUnchecked(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &c, nil
}

// Validate checks the config for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.DataRoot == "" {
		return errors.New("data_root must be set")
	}
	if c.RosterFile == "" {
		return errors.New("roster_file must be set")
	}
	if c.OutputDir == "" {
		return errors.New("output_dir must be set")
	}
	if len(c.Datasets) == 0 {
		return errors.New("at least one dataset must be configured")
	}
	if c.MinDistanceM < 0 {
		return errors.New("min_distance_m must be >= 0")
	}
	if c.SplitDistanceM <= 0 {
		return errors.New("split_distance_m must be > 0")
	}
	if c.ArmLegRatio <= 0 {
		return errors.New("arm_leg_ratio must be > 0")
	}
	if c.Fit.LearningRate <= 0 {
		return errors.New("fit.learning_rate must be > 0")
	}
	if c.Fit.MaxIterations <= 0 {
		return errors.New("fit.max_iterations must be > 0")
	}
	if c.Fit.Tolerance <= 0 {
		return errors.New("fit.tolerance must be > 0")
	}
	if c.Fit.BudgetTermWeight < 0 || c.Fit.DistanceTermWeight < 0 {
		return errors.New("fit term weights must be >= 0")
	}
	if c.Fit.BudgetTermWeight+c.Fit.DistanceTermWeight == 0 {
		return errors.New("at least one fit term weight must be positive")
	}
	if c.Bands.MinPoints < 2 {
		return errors.New("bands.min_points must be >= 2")
	}
	if c.Bands.SampleCount < 2 {
		return errors.New("bands.sample_count must be >= 2")
	}
	if c.Bands.CoverageTarget <= 0 || c.Bands.CoverageTarget > 1 {
		return errors.New("bands.coverage_target must be in (0, 1]")
	}
	if c.Bands.WidenFactor <= 1 {
		return errors.New("bands.widen_factor must be > 1")
	}
	return nil
}

// DatasetCSV returns the path of a dataset's CSV file.
func (c *Config) DatasetCSV(dataset string) string {
	return filepath.Join(c.DataRoot, c.Datasets[dataset])
}
