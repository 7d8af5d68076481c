package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/apnea-signal/energy-model/internal/config"
	"github.com/apnea-signal/energy-model/internal/pipeline"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	name := os.Args[1]
	if name == "help" || name == "-h" || name == "--help" {
		usage()
		return
	}

	if name == "all" {
		runStages(os.Args[2:], "")
		return
	}
	if _, ok := pipeline.Lookup(name); ok {
		runStages(os.Args[2:], name)
		return
	}
	usage()
	os.Exit(2)
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli all --config config.yaml")
	fmt.Println("  cli <stage> --config config.yaml")
	fmt.Println("")
	fmt.Println("stages:")
	for _, s := range pipeline.Stages() {
		if s.Artifact != "" {
			fmt.Printf("  %-14s -> %s\n", s.Name, s.Artifact)
		} else {
			fmt.Printf("  %-14s -> chart PNGs\n", s.Name)
		}
	}
}

func runStages(args []string, stageName string) {
	fsName := "all"
	if stageName != "" {
		fsName = stageName
	}
	fs := flag.NewFlagSet(fsName, flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (optional, defaults apply)")
	verbose := fs.Bool("verbose", false, "Enable debug logging")
	_ = fs.Parse(args)

	setupLogging(*verbose)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	p := pipeline.New(cfg, slog.Default())
	if stageName == "" {
		if err := p.RunAll(); err != nil {
			slog.Error("pipeline failed", "error", err)
			os.Exit(1)
		}
		return
	}

	stage, _ := pipeline.Lookup(stageName)
	if err := stage.Run(p); err != nil {
		slog.Error("stage failed", "stage", stageName, "error", err)
		os.Exit(1)
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
