package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/brand-content-generator/internal/config"
	"github.com/jonathan/brand-content-generator/internal/llm"
	"github.com/jonathan/brand-content-generator/internal/observability"
	"github.com/jonathan/brand-content-generator/internal/pipeline"
	"github.com/jonathan/brand-content-generator/internal/storage"
	"github.com/jonathan/brand-content-generator/internal/types"
)

var (
	genCompany  string
	genIdentity string
	genTone     string
	genStyle    string
	genColor    string
	genPreview  bool
	genNoUpload bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run one generation pipeline from the command line",
	Long:  `Generate a brand website for the given parameters. By default the result is saved locally and published to S3; --preview prints the HTML to stdout instead, and --skip-upload saves locally without publishing.`,
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genCompany, "company", "", "Company name (required)")
	generateCmd.Flags().StringVar(&genIdentity, "identity", "", "Brand identity description (required)")
	generateCmd.Flags().StringVar(&genTone, "tone", "semiformal", "Tone: formal, semiformal, casual, or playful")
	generateCmd.Flags().StringVar(&genStyle, "style", "modern", "Design style: modern, minimalistic, corporate, or artistic")
	generateCmd.Flags().StringVar(&genColor, "color", "#336699", "Primary color in HEX format")
	generateCmd.Flags().BoolVar(&genPreview, "preview", false, "Print generated HTML to stdout without persisting")
	generateCmd.Flags().BoolVar(&genNoUpload, "skip-upload", false, "Save locally but do not publish to S3")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	req := &types.BrandRequest{
		CompanyName:   genCompany,
		BrandIdentity: genIdentity,
		Tone:          genTone,
		DesignStyle:   genStyle,
		PrimaryColor:  genColor,
	}

	store := storage.NewDirStore(cfg.OutputDir)
	runner := pipeline.New(client, store, nil, nil)
	runner.Printer = observability.NewPrinter(os.Stdout)

	if genPreview {
		html, err := runner.Preview(ctx, req)
		if err != nil {
			return err
		}
		fmt.Println(html)
		return nil
	}

	if !genNoUpload {
		if err := cfg.ValidateS3(); err != nil {
			return err
		}
		publisher, err := storage.NewS3Publisher(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to create S3 publisher: %w", err)
		}
		runner.Publisher = publisher
	}

	envelope, err := runner.Run(ctx, req)
	if err != nil {
		return err
	}

	if envelope.S3 != nil {
		fmt.Printf("Published: %s\n", envelope.S3.URL)
	} else {
		log.Printf("Saved locally: %s", envelope.LocalFile.Filepath)
	}
	return nil
}
