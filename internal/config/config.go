// Package config provides configuration loading and validation for the service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Default values used when the corresponding environment variable is unset.
const (
	DefaultRegion     = "us-east-1"
	DefaultOutputDir  = "generated_sites"
	DefaultExpiryDays = 7
	DefaultKeyPrefix  = "brand-websites/"
	DefaultPort       = 8080
)

// AppConfig holds all externally provided configuration. It is constructed
// once at process start and passed by reference into the components that
// consume it; nothing reads the environment after Load returns.
type AppConfig struct {
	// Generation
	GeminiAPIKey string

	// Object store
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	S3Bucket           string
	S3KeyPrefix        string
	URLExpiry          time.Duration

	// Local persistence
	OutputDir string

	// Server
	Port int
}

// Load reads configuration from the environment, applying defaults.
// Call Validate before using the result.
func Load() *AppConfig {
	expiryDays := getEnvInt("S3_URL_EXPIRY_DAYS", DefaultExpiryDays)

	return &AppConfig{
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSRegion:          getEnvString("AWS_REGION", DefaultRegion),
		S3Bucket:           os.Getenv("S3_BUCKET_NAME"),
		S3KeyPrefix:        getEnvString("S3_KEY_PREFIX", DefaultKeyPrefix),
		URLExpiry:          time.Duration(expiryDays) * 24 * time.Hour,
		OutputDir:          getEnvString("OUTPUT_DIR", DefaultOutputDir),
		Port:               getEnvInt("PORT", DefaultPort),
	}
}

// Validate checks that the configuration required for full pipeline runs is
// present. The S3 fields are checked separately via ValidateS3 so that local
// preview-only usage works without object-store credentials.
func (c *AppConfig) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("config error: GEMINI_API_KEY is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("config error: output directory must not be empty")
	}
	if c.URLExpiry <= 0 {
		return fmt.Errorf("config error: URL expiry must be positive")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: invalid port %d", c.Port)
	}
	return nil
}

// ValidateS3 checks that the object-store configuration is complete.
func (c *AppConfig) ValidateS3() error {
	if c.S3Bucket == "" {
		return fmt.Errorf("config error: S3_BUCKET_NAME is required")
	}
	if c.AWSRegion == "" {
		return fmt.Errorf("config error: AWS_REGION must not be empty")
	}
	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
