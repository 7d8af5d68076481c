package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/apnea-signal/energy-model/internal/api/handlers"
	"github.com/apnea-signal/energy-model/internal/api/middleware"
	"github.com/apnea-signal/energy-model/internal/config"
	"github.com/apnea-signal/energy-model/internal/pipeline"

	"github.com/gin-gonic/gin"
)

func main() {
	setupLogging()

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	cfg, err := config.Load(os.Getenv("PIPELINE_CONFIG"))
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	p := pipeline.New(cfg, slog.Default())

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	artifactHandler := handlers.NewArtifactHandler(p)
	datasetHandler := handlers.NewDatasetHandler(cfg)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/artifacts", artifactHandler.ListArtifacts)
		api.GET("/artifacts/:stage", artifactHandler.GetArtifact)
		api.GET("/datasets", datasetHandler.ListDatasets)
	}

	// Serve the dashboard bundle when present (SPA routing).
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./web/dist"
	}
	if _, err := os.Stat(staticDir); err == nil {
		router.Static("/assets", staticDir+"/assets")
		router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")
		router.NoRoute(func(c *gin.Context) {
			path := c.Request.URL.Path
			if len(path) >= 4 && path[:4] == "/api" {
				c.JSON(404, gin.H{"error": "Not found"})
			} else {
				c.File(staticDir + "/index.html")
			}
		})
		slog.Info("serving static files", "dir", staticDir)
	} else {
		slog.Info("static directory not found, skipping static file serving", "dir", staticDir)
	}

	addr := fmt.Sprintf(":%s", port)
	slog.Info("starting API server", "addr", addr, "output_dir", cfg.OutputDir)
	if err := router.Run(addr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogging() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	slog.SetDefault(slog.New(handler))
}
