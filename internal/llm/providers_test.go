package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/quill/internal/config"
)

func TestGeminiComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "user", req.Contents[0].Role)
		assert.Equal(t, "Summarize this", req.Contents[0].Parts[0].Text)
		assert.Nil(t, req.GenerationConfig)

		_, _ = io.WriteString(w, `{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "Short "}, {"text": "summary"}]}, "finishReason": "STOP"}],
			"usageMetadata": {"promptTokenCount": 4, "candidatesTokenCount": 2, "totalTokenCount": 6}
		}`)
	}))
	defer srv.Close()

	p := NewGeminiProvider("secret", "").WithBaseURL(srv.URL)
	resp, err := p.Complete(context.Background(), NewPromptRequest("", "Summarize this"))
	require.NoError(t, err)
	assert.Equal(t, "Short summary", resp.Content)
	assert.Equal(t, "STOP", resp.FinishReason)
	assert.Equal(t, 6, resp.Usage.TotalTokens)
}

func TestGeminiErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "http error", status: http.StatusTooManyRequests, body: `{"error":{"message":"quota"}}`},
		{name: "no candidates", status: http.StatusOK, body: `{"candidates":[]}`},
		{name: "blocked", status: http.StatusOK, body: `{"promptFeedback":{"blockReason":"SAFETY"}}`},
		{name: "bad json", status: http.StatusOK, body: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			p := NewGeminiProvider("secret", "").WithBaseURL(srv.URL)
			_, err := p.Complete(context.Background(), NewPromptRequest("", "x"))
			assert.Error(t, err)
		})
	}
}

func TestGeminiPing(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		w.WriteHeader(int(status.Load()))
	}))
	defer srv.Close()

	p := NewGeminiProvider("secret", "").WithBaseURL(srv.URL)
	assert.NoError(t, p.Ping(context.Background()))

	status.Store(http.StatusForbidden)
	assert.EqualError(t, p.Ping(context.Background()), "invalid API key")
}

func TestOpenAICompatibleComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var req openAIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama-3.3-70b-versatile", req.Model)
		assert.False(t, req.Stream)

		_, _ = io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"done"},"finish_reason":"stop"}],"usage":{"total_tokens":9}}`)
	}))
	defer srv.Close()

	p := NewGroqProvider("key", "").WithBaseURL(srv.URL)
	assert.Equal(t, "groq", p.Name())

	resp, err := p.Complete(context.Background(), NewPromptRequest("", "hi"))
	require.NoError(t, err)
	assert.Equal(t, "done", resp.Content)
	assert.Equal(t, 9, resp.Usage.TotalTokens)
}

func TestCustomProviderOmitsEmptyKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"choices":[{"message":{"content":"ok"}}]}`)
	}))
	defer srv.Close()

	p := NewCustomProvider(srv.URL+"/", "", "local-model")
	resp, err := p.Complete(context.Background(), NewPromptRequest("", "hi"))
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
}

func TestAnthropicComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 2048, req.MaxTokens)

		_, _ = io.WriteString(w, `{"content":[{"text":"bonjour"}],"stop_reason":"end_turn","usage":{"input_tokens":3,"output_tokens":1}}`)
	}))
	defer srv.Close()

	p := NewAnthropicProvider("key", "").WithBaseURL(srv.URL)
	resp, err := p.Complete(context.Background(), NewPromptRequest("", "hello"))
	require.NoError(t, err)
	assert.Equal(t, "bonjour", resp.Content)
	assert.Equal(t, 4, resp.Usage.TotalTokens)
}

func TestOllamaComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req ollamaChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.False(t, req.Stream)
		assert.Nil(t, req.Options)

		_, _ = io.WriteString(w, `{"model":"llama3.1:8b","message":{"role":"assistant","content":"hi"},"done":true,"done_reason":"stop"}`)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3.1:8b")
	resp, err := p.Complete(context.Background(), NewPromptRequest("", "hello"))
	require.NoError(t, err)
	assert.Equal(t, "hi", resp.Content)
	assert.Equal(t, "stop", resp.FinishReason)
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		provider   string
		apiKey     string
		baseURL    string
		wantName   string
		wantConfig bool
	}{
		{provider: "gemini", apiKey: "k", wantName: "gemini"},
		{provider: "gemini", wantConfig: true},
		{provider: "ollama", wantName: "ollama"},
		{provider: "groq", apiKey: "k", wantName: "groq"},
		{provider: "openai", wantConfig: true},
		{provider: "anthropic", apiKey: "k", wantName: "anthropic"},
		{provider: "openrouter", apiKey: "k", wantName: "openrouter"},
		{provider: "custom", baseURL: "http://localhost:1234/v1", wantName: "custom"},
		{provider: "custom", wantConfig: true},
	}

	for _, tt := range tests {
		t.Run(tt.provider+"/"+tt.wantName, func(t *testing.T) {
			cfg := &config.Config{Provider: tt.provider, APIKey: tt.apiKey, BaseURL: tt.baseURL}
			p, err := NewProvider(cfg)
			if tt.wantConfig {
				assert.True(t, errors.Is(err, ErrNotConfigured))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}
