package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Supported providers.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

var (
	// ErrEmptyPrompt is returned when a request has no prompt text.
	ErrEmptyPrompt = errors.New("prompt is empty")
	// ErrMissingAPIKey is returned when a provider is built without a key.
	ErrMissingAPIKey = errors.New("API key is required")
)

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 1024
)

// Client defines the interface for LLM providers.
type Client interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

// Request is a single-turn generation request.
type Request struct {
	// System is sent as the provider's system instruction.
	System string
	Prompt string
}

// Response holds the generated text. Text may be empty when the provider
// returned no content.
type Response struct {
	Text string
}

// Config selects and tunes a provider.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	CacheTTL    time.Duration
	RateLimit   int
	Timeout     time.Duration
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 60 * time.Second
	}
	return c.Timeout
}

// settings is a Config with every provider default filled in.
type settings struct {
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
	timeout     time.Duration
}

// resolve applies the provider's defaults. A zero temperature counts as
// unset, matching how the config file leaves it out.
func (c Config) resolve(provider, model, baseURL string) (settings, error) {
	if c.APIKey == "" {
		return settings{}, fmt.Errorf("%s: %w", provider, ErrMissingAPIKey)
	}
	s := settings{
		apiKey:      c.APIKey,
		model:       cmpOr(c.Model, model),
		baseURL:     strings.TrimRight(cmpOr(c.BaseURL, baseURL), "/"),
		temperature: c.Temperature,
		maxTokens:   c.MaxTokens,
		timeout:     c.timeout(),
	}
	if s.temperature == 0 {
		s.temperature = defaultTemperature
	}
	if s.maxTokens <= 0 {
		s.maxTokens = defaultMaxTokens
	}
	return s, nil
}

func cmpOr(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
