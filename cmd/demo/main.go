package main

// Demo:
// - Generate a small synthetic competition (attempt sheets, STA roster,
//   band settings) in a scratch directory
// - Run the full pipeline over it
// - Print the artifacts that were produced
//
// The numbers are random but shaped like real pool data, so every stage has
// enough signal to produce output.

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/apnea-signal/energy-model/internal/config"
	"github.com/apnea-signal/energy-model/internal/data"
	"github.com/apnea-signal/energy-model/internal/pipeline"
)

func main() {
	dir := flag.String("dir", "demo_output", "Scratch directory for the synthetic competition")
	athletes := flag.Int("athletes", 14, "Number of synthetic athletes")
	seed := flag.Int64("seed", 7, "Random seed")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(*dir, *athletes, *seed); err != nil {
		slog.Error("demo failed", "error", err)
		os.Exit(1)
	}
}

func run(dir string, athletes int, seed int64) error {
	rng := rand.New(rand.NewSource(seed))

	dataDir := filepath.Join(dir, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	cfg := config.Default()
	cfg.DataRoot = dataDir
	cfg.RosterFile = filepath.Join(dataDir, "STA_PB.csv")
	cfg.SettingsFile = filepath.Join(dir, "sta_band_settings.json")
	cfg.OutputDir = filepath.Join(dir, "artifacts")
	cfg.Datasets = map[string]string{"DNF": "DNF.csv", "DYNB": "DYNB.csv"}

	names := make([]string, athletes)
	budgets := make([]float64, athletes)
	for i := range names {
		names[i] = fmt.Sprintf("Athlete %02d", i+1)
		budgets[i] = 240 + rng.Float64()*180 // 4:00 to 7:00 STA
	}

	if err := writeRoster(cfg.RosterFile, names, budgets); err != nil {
		return err
	}
	settings := map[string]data.StaBandSettings{
		"DNF":  {AngleDegrees: 35, OffsetSeconds: 200},
		"DYNB": {AngleDegrees: 40, OffsetSeconds: 200},
	}
	if err := data.WriteJSON(cfg.SettingsFile, settings); err != nil {
		return err
	}
	for dataset := range cfg.Datasets {
		if err := writeAttempts(cfg.DatasetCSV(dataset), names, budgets, rng); err != nil {
			return err
		}
	}

	p := pipeline.New(cfg, slog.Default())
	if err := p.RunAll(); err != nil {
		return err
	}

	fmt.Println("Artifacts:")
	for _, stage := range pipeline.Stages() {
		if stage.Artifact == "" {
			continue
		}
		path := p.ArtifactPath(stage.Artifact)
		info, err := os.Stat(path)
		if err != nil {
			fmt.Printf("  %-28s (missing)\n", stage.Artifact)
			continue
		}
		fmt.Printf("  %-28s %6d bytes\n", stage.Artifact, info.Size())
	}
	fmt.Printf("Charts: %s\n", filepath.Join(cfg.OutputDir, "charts"))
	return nil
}

func writeRoster(path string, names []string, budgets []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Name", "STA"}); err != nil {
		return err
	}
	for i, name := range names {
		mins := int(budgets[i]) / 60
		secs := int(budgets[i]) % 60
		if err := w.Write([]string{name, fmt.Sprintf("%d:%02d", mins, secs)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeAttempts(path string, names []string, budgets []float64, rng *rand.Rand) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header := []string{"Name", "Dist", "TT", "T50", "T100", "T150",
		"A50", "ST_K", "ST_WK", "TA", "TK", "TDK", "TW"}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}

	for i, name := range names {
		// Distance scales with the STA budget plus noise; pace around 36 s
		// per 50 m with per-athlete variation.
		distance := math.Round(budgets[i]*0.55 + rng.Float64()*20 - 10)
		if distance < 50 {
			distance = 50
		}
		pace := 34 + rng.Float64()*6
		splits := distance / 50
		total := splits * pace

		armPulls50 := 8 + rng.Float64()*4
		kicksPerArm := 0.5 + rng.Float64()
		wallKicks := float64(rng.Intn(3))

		record := []string{
			name,
			fmt.Sprintf("%.0f", distance),
			fmt.Sprintf("%.1f", total),
			fmt.Sprintf("%.1f", pace),
			fmt.Sprintf("%.1f", 2*pace),
			fmt.Sprintf("%.1f", 3*pace),
			fmt.Sprintf("%.0f", armPulls50),
			fmt.Sprintf("%.2f", kicksPerArm),
			fmt.Sprintf("%.0f", wallKicks),
			fmt.Sprintf("%.0f", armPulls50*splits),
			fmt.Sprintf("%.0f", (kicksPerArm*armPulls50+wallKicks)*splits),
			"0",
			fmt.Sprintf("%.0f", math.Max(1, math.Ceil(splits))),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
