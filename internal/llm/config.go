// Package llm provides the content-generation client abstraction over
// Google Gemini.
package llm

import "time"

// Config holds the model configuration for content generation.
type Config struct {
	// Model is the Gemini model used for website generation.
	Model string
	// Temperature controls output variety. Website generation wants some
	// creative range, unlike extraction tasks.
	Temperature float32
	// RetryBackoff is the wait before the single rate-limit retry.
	RetryBackoff time.Duration
	// Timeout bounds one GenerateHTML call, covering the retry if any.
	// Zero disables the deadline.
	Timeout time.Duration
	// OnRetry, if set, is invoked when a rate-limit retry happens.
	OnRetry func()
}

// DefaultConfig returns the default generation configuration.
func DefaultConfig() *Config {
	return &Config{
		Model:        "gemini-2.5-flash",
		Temperature:  0.7,
		RetryBackoff: 2 * time.Second,
		Timeout:      120 * time.Second,
	}
}
