package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/brand-content-generator/internal/config"
	"github.com/jonathan/brand-content-generator/internal/storage"
)

var s3checkListMax int

var s3checkCmd = &cobra.Command{
	Use:   "s3check",
	Short: "Check object-store configuration and list published artifacts",
	RunE:  runS3Check,
}

func init() {
	s3checkCmd.Flags().IntVar(&s3checkListMax, "list", 0, "Also list up to N published artifacts")
	rootCmd.AddCommand(s3checkCmd)
}

func runS3Check(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if err := cfg.ValidateS3(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	publisher, err := storage.NewS3Publisher(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create S3 publisher: %w", err)
	}

	status, err := publisher.CheckConfig(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Bucket:    %s\n", status.Bucket)
	fmt.Printf("Region:    %s\n", status.Region)
	fmt.Printf("Reachable: %t\n", status.BucketReachable)

	if s3checkListMax > 0 {
		files, err := publisher.List(ctx, s3checkListMax)
		if err != nil {
			return err
		}
		fmt.Printf("\n%d object(s):\n", len(files))
		for _, f := range files {
			fmt.Printf("  %s  %d bytes  %s\n", f.Key, f.Size, f.LastModified.Format("2006-01-02 15:04:05"))
		}
	}

	return nil
}
