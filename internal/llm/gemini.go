package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-3-flash-preview"

// geminiClient calls the Gemini API through the genai SDK.
type geminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

func newGeminiClient(ctx context.Context, cfg Config) (Client, error) {
	s, err := cfg.resolve(ProviderGemini, defaultGeminiModel, "")
	if err != nil {
		return nil, err
	}

	clientCfg := &genai.ClientConfig{APIKey: s.apiKey, Backend: genai.BackendGeminiAPI}
	if s.baseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: s.baseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiClient{
		client:      client,
		model:       s.model,
		temperature: float32(s.temperature),
		maxTokens:   int32(s.maxTokens),
	}, nil
}

// Generate sends one prompt with the system instruction attached.
func (c *geminiClient) Generate(ctx context.Context, req Request) (Response, error) {
	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
	}
	if req.System != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if c.maxTokens > 0 {
		genCfg.MaxOutputTokens = c.maxTokens
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), genCfg)
	if err != nil {
		return Response{}, fmt.Errorf("gemini request failed: %w", err)
	}

	return Response{Text: resp.Text()}, nil
}
