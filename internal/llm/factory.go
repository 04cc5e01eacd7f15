package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// New creates a provider client wrapped with caching and rate limiting.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (Client, error) {
	provider, err := newProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return newManagedClient(provider, cfg, logger), nil
}

func newProvider(ctx context.Context, cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderGemini:
		return newGeminiClient(ctx, cfg)
	case ProviderOpenAI:
		return newOpenAIClient(cfg)
	case ProviderAnthropic:
		return newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

// managedClient adds a response cache, a request rate limit and a per-call
// timeout in front of a provider.
type managedClient struct {
	provider Client
	cache    *responseCache
	limiter  *rateLimiter
	logger   *slog.Logger
	cfg      Config
}

func newManagedClient(provider Client, cfg Config, logger *slog.Logger) *managedClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &managedClient{
		provider: provider,
		cache:    newResponseCache(cfg.CacheTTL),
		limiter:  newRateLimiter(cfg.RateLimit),
		logger:   logger,
		cfg:      cfg,
	}
}

// Generate returns a cached response when one is fresh, otherwise calls the
// provider. Empty responses are not cached.
func (c *managedClient) Generate(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return Response{}, ErrEmptyPrompt
	}

	key := cacheKey(req)
	if resp, ok := c.cache.get(key); ok {
		c.logger.Debug("llm cache hit", "provider", c.cfg.Provider)
		return resp, nil
	}

	if err := c.limiter.wait(ctx); err != nil {
		return Response{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout())
	defer cancel()

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return Response{}, err
	}

	if resp.Text != "" {
		c.cache.set(key, resp)
	}
	return resp, nil
}
