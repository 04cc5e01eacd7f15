package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/edubridge/internal/common"
)

func TestNewProvider_RequiresAPIKey(t *testing.T) {
	for _, provider := range []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic} {
		t.Run(provider, func(t *testing.T) {
			_, err := newProvider(context.Background(), Config{Provider: provider})
			require.ErrorIs(t, err, ErrMissingAPIKey)
		})
	}
}

func TestNewProvider_Unsupported(t *testing.T) {
	_, err := newProvider(context.Background(), Config{Provider: "claudecode", APIKey: "k"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestOpenAIClient_Generate(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","choices":[{"message":{"role":"assistant","content":"**Sunway** fits your budget."}}]}`))
	}))
	defer server.Close()

	client, err := newOpenAIClient(Config{APIKey: "test-key", BaseURL: server.URL + "/"})
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), Request{System: "catalog", Prompt: "cheap IT diploma?"})
	require.NoError(t, err)
	assert.Equal(t, "**Sunway** fits your budget.", resp.Text)

	messages, ok := got["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "catalog", messages[0].(map[string]any)["content"])
	assert.Equal(t, "cheap IT diploma?", messages[1].(map[string]any)["content"])
}

func TestOpenAIClient_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client, err := newOpenAIClient(Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), Request{Prompt: "hi"})
	require.NoError(t, err)
	assert.Empty(t, resp.Text)
}

func TestOpenAIClient_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantRate bool
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"error":"slow down"}`, wantRate: true},
		{name: "server error", status: http.StatusInternalServerError, body: `boom`},
		{name: "bad json", status: http.StatusOK, body: `{not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, err := newOpenAIClient(Config{APIKey: "k", BaseURL: server.URL})
			require.NoError(t, err)

			_, err = client.Generate(context.Background(), Request{Prompt: "hi"})
			require.Error(t, err)
			assert.Equal(t, tt.wantRate, common.IsRetryable(err))
		})
	}
}

func TestAnthropicClient_Generate(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = w.Write([]byte(`{"id":"msg","content":[{"type":"text","text":"Consider "},{"type":"tool_use"},{"type":"text","text":"Monash."}]}`))
	}))
	defer server.Close()

	client, err := newAnthropicClient(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), Request{System: "catalog", Prompt: "business degree?"})
	require.NoError(t, err)
	assert.Equal(t, "Consider Monash.", resp.Text)
	assert.Equal(t, "catalog", got["system"])
}

func TestAnthropicClient_OmitsEmptySystem(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer server.Close()

	client, err := newAnthropicClient(Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), Request{Prompt: "hi"})
	require.NoError(t, err)
	_, hasSystem := got["system"]
	assert.False(t, hasSystem)
}

func TestGeminiClient_Generate(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/"+defaultGeminiModel+":generateContent"), r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Taylor's University is a good match."}]}}]}`))
	}))
	defer server.Close()

	client, err := newGeminiClient(context.Background(), Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), Request{System: "catalog context", Prompt: "computer science?"})
	require.NoError(t, err)
	assert.Equal(t, "Taylor's University is a good match.", resp.Text)

	assert.Contains(t, body, "systemInstruction")
	assert.Contains(t, body, "contents")
}

func TestGeminiClient_Defaults(t *testing.T) {
	client, err := newGeminiClient(context.Background(), Config{APIKey: "k"})
	require.NoError(t, err)

	gc, ok := client.(*geminiClient)
	require.True(t, ok)
	assert.Equal(t, defaultGeminiModel, gc.model)
	assert.InDelta(t, defaultTemperature, gc.temperature, 1e-6)
}

func TestConfigResolve(t *testing.T) {
	_, err := Config{}.resolve(ProviderOpenAI, defaultOpenAIModel, defaultOpenAIBaseURL)
	require.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Contains(t, err.Error(), "openai")

	s, err := Config{APIKey: "k", BaseURL: "http://proxy.local/v1/"}.resolve(ProviderAnthropic, defaultAnthropicModel, defaultAnthropicBaseURL)
	require.NoError(t, err)
	assert.Equal(t, defaultAnthropicModel, s.model)
	assert.Equal(t, "http://proxy.local/v1", s.baseURL)
	assert.InDelta(t, defaultTemperature, s.temperature, 1e-9)
	assert.Equal(t, defaultMaxTokens, s.maxTokens)
	assert.Equal(t, 60*time.Second, s.timeout)

	s, err = Config{APIKey: "k", Model: "gpt-4.1", Temperature: 0.2, MaxTokens: 300}.resolve(ProviderOpenAI, defaultOpenAIModel, defaultOpenAIBaseURL)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4.1", s.model)
	assert.InDelta(t, 0.2, s.temperature, 1e-9)
	assert.Equal(t, 300, s.maxTokens)
}
