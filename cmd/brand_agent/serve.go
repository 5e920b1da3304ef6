package main

import (
	"context"
	"fmt"
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jonathan/brand-content-generator/internal/config"
	"github.com/jonathan/brand-content-generator/internal/llm"
	"github.com/jonathan/brand-content-generator/internal/metrics"
	"github.com/jonathan/brand-content-generator/internal/pipeline"
	"github.com/jonathan/brand-content-generator/internal/server"
	"github.com/jonathan/brand-content-generator/internal/storage"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for generating, previewing, downloading, and publishing brand websites.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if servePort != 0 {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	registry := prometheus.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(registry)

	llmCfg := llm.DefaultConfig()
	llmCfg.OnRetry = recorder.IncGenerationRetry
	client, err := llm.NewGeminiClient(ctx, llmCfg, cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	store := storage.NewDirStore(cfg.OutputDir)

	// The server still runs without object-store credentials; full-mode runs
	// then report partial success and artifacts stay downloadable locally.
	var publisher storage.Publisher
	if err := cfg.ValidateS3(); err != nil {
		log.Printf("Warning: %v; publishing disabled", err)
	} else {
		s3pub, err := storage.NewS3Publisher(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to create S3 publisher: %w", err)
		}
		publisher = s3pub
	}

	runner := pipeline.New(client, store, publisher, recorder)

	srv, err := server.New(server.Config{
		Port:      cfg.Port,
		Runner:    runner,
		Store:     store,
		Publisher: publisher,
		Recorder:  recorder,
		Registry:  registry,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
