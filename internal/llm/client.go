package llm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sant0-9/quill/internal/config"
	"github.com/sant0-9/quill/internal/logging"
)

var (
	// ErrNotConfigured means the provider lacks a credential (or endpoint)
	ErrNotConfigured = errors.New("API key is not configured")

	// ErrService replaces every provider failure returned by Client.Generate.
	// The underlying cause is only logged.
	ErrService = errors.New("error communicating with the AI service, please try again")
)

// Client performs one text generation per call against the configured
// provider.
type Client struct {
	provider  Provider
	configErr error
	name      string
	model     string
	maxTokens int
	temp      float64
	log       *zap.Logger
}

// NewClient builds a client from cfg. A missing credential is not an error
// here: the client is returned unconfigured and every Generate call fails
// with ErrNotConfigured. Unknown providers are rejected.
func NewClient(cfg *config.Config, log *zap.Logger) (*Client, error) {
	c := &Client{
		name:      cfg.Provider,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		temp:      cfg.Temperature,
		log:       logging.OrNop(log).With(zap.String("provider", cfg.Provider), zap.String("model", cfg.Model)),
	}

	provider, err := NewProvider(cfg)
	switch {
	case errors.Is(err, ErrNotConfigured):
		c.configErr = err
		c.log.Warn("provider not configured", zap.Error(err))
	case err != nil:
		return nil, err
	default:
		c.provider = provider
	}

	return c, nil
}

// NewClientWithProvider wraps an already built provider
func NewClientWithProvider(p Provider, model string, log *zap.Logger) *Client {
	return &Client{
		provider: p,
		name:     p.Name(),
		model:    model,
		log:      logging.OrNop(log).With(zap.String("provider", p.Name()), zap.String("model", model)),
	}
}

// Configured reports whether Generate can reach the network
func (c *Client) Configured() bool {
	return c.configErr == nil
}

// ConfigError returns the configuration problem, if any
func (c *Client) ConfigError() error {
	return c.configErr
}

func (c *Client) ProviderName() string {
	return c.name
}

func (c *Client) Model() string {
	return c.model
}

// Generate sends prompt as a single user message and returns the response
// text verbatim.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.configErr != nil {
		return "", c.configErr
	}

	reqID := uuid.NewString()
	log := c.log.With(zap.String("request_id", reqID))
	start := time.Now()

	req := NewPromptRequest(c.model, prompt)
	req.MaxTokens = c.maxTokens
	req.Temperature = c.temp

	log.Debug("sending generation request", zap.Int("prompt_chars", len(prompt)))

	resp, err := c.provider.Complete(ctx, req)
	if err != nil {
		log.Error("text generation failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return "", ErrService
	}

	log.Info("text generation succeeded",
		zap.Duration("elapsed", time.Since(start)),
		zap.String("finish_reason", resp.FinishReason),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	return resp.Content, nil
}

// Ping checks provider reachability. An unconfigured client returns its
// configuration error without touching the network.
func (c *Client) Ping(ctx context.Context) error {
	if c.configErr != nil {
		return c.configErr
	}
	if err := c.provider.Ping(ctx); err != nil {
		c.log.Warn("provider ping failed", zap.Error(err))
		return err
	}
	return nil
}
