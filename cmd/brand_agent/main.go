// Package main provides the entry point for the Brand Content Generator HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "brand_agent",
	Short: "Brand Content Generator HTTP API Server",
	Long:  "Brand Content Generator produces complete single-file HTML websites from branding parameters via Gemini, saves them locally, and publishes them to S3 with time-limited access URLs.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
