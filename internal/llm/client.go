package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Client is an abstraction over LLM providers.
type Client interface {
	// GenerateHTML generates a complete HTML document from the prompt.
	GenerateHTML(ctx context.Context, prompt string) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// GenerationError reports an upstream text-generation failure.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("content generation failed: %v", e.Cause)
}

func (e *GenerationError) Unwrap() error { return e.Cause }

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateHTML generates a complete HTML document from the prompt. Rate-limit
// responses get exactly one retry after a short backoff; generation is
// non-idempotent in cost terms, so no other failure class is retried. Empty
// output after code-fence cleaning is a GenerationError, not a success.
func (c *GeminiClient) GenerateHTML(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	text, err := c.generate(ctx, prompt)
	if err != nil && isRateLimited(err) {
		if c.config.OnRetry != nil {
			c.config.OnRetry()
		}
		select {
		case <-time.After(c.config.RetryBackoff):
		case <-ctx.Done():
			return "", &GenerationError{Cause: ctx.Err()}
		}
		text, err = c.generate(ctx, prompt)
	}
	if err != nil {
		return "", &GenerationError{Cause: err}
	}

	html := CleanHTMLBlock(text)
	if strings.TrimSpace(html) == "" {
		return "", &GenerationError{Cause: fmt.Errorf("model returned empty content")}
	}
	return html, nil
}

// callContext applies the configured generation deadline. The deadline spans
// the whole GenerateHTML call, including the rate-limit retry.
func (c *GeminiClient) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.config.Timeout > 0 {
		return context.WithTimeout(ctx, c.config.Timeout)
	}
	return ctx, func() {}
}

func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.config.Model)
	model.SetTemperature(c.config.Temperature)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return extractTextFromResponse(resp)
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// isRateLimited reports whether the error is an upstream 429.
func isRateLimited(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusTooManyRequests
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}
