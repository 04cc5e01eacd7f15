package llm

import (
	"context"
	"fmt"
	"net/http"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4o-mini"
)

// openAIClient talks to the chat completions endpoint, or any server that
// speaks the same protocol when BaseURL points elsewhere.
type openAIClient struct {
	http *http.Client
	settings
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

type openAIResponse struct {
	Choices []struct {
		Message      openAIMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
}

func newOpenAIClient(cfg Config) (Client, error) {
	s, err := cfg.resolve(ProviderOpenAI, defaultOpenAIModel, defaultOpenAIBaseURL)
	if err != nil {
		return nil, err
	}
	return &openAIClient{http: newHTTPClient(s.timeout), settings: s}, nil
}

// Generate returns the first choice; no choices yields an empty Response.
func (c *openAIClient) Generate(ctx context.Context, req Request) (Response, error) {
	body := openAIRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}
	if req.System != "" {
		body.Messages = append(body.Messages, openAIMessage{Role: "system", Content: req.System})
	}
	body.Messages = append(body.Messages, openAIMessage{Role: "user", Content: req.Prompt})

	var out openAIResponse
	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}
	if err := postJSON(ctx, c.http, c.baseURL+"/chat/completions", headers, body, &out); err != nil {
		return Response{}, fmt.Errorf("openai: %w", err)
	}

	if len(out.Choices) == 0 {
		return Response{}, nil
	}
	return Response{Text: out.Choices[0].Message.Content}, nil
}
