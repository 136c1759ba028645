package llm

import (
	"fmt"

	"github.com/sant0-9/quill/internal/config"
)

// NewProvider creates a provider from config. A missing credential yields an
// error wrapping ErrNotConfigured.
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.Provider {
	case "gemini":
		if cfg.APIKey == "" {
			return nil, notConfigured("gemini")
		}
		return NewGeminiProvider(cfg.APIKey, cfg.Model).WithBaseURL(cfg.BaseURL), nil

	case "ollama":
		return NewOllamaProvider(cfg.BaseURL, cfg.Model), nil

	case "groq":
		if cfg.APIKey == "" {
			return nil, notConfigured("groq")
		}
		return NewGroqProvider(cfg.APIKey, cfg.Model).WithBaseURL(cfg.BaseURL), nil

	case "openai":
		if cfg.APIKey == "" {
			return nil, notConfigured("openai")
		}
		return NewOpenAIProvider(cfg.APIKey, cfg.Model).WithBaseURL(cfg.BaseURL), nil

	case "anthropic":
		if cfg.APIKey == "" {
			return nil, notConfigured("anthropic")
		}
		return NewAnthropicProvider(cfg.APIKey, cfg.Model).WithBaseURL(cfg.BaseURL), nil

	case "openrouter":
		if cfg.APIKey == "" {
			return nil, notConfigured("openrouter")
		}
		return NewOpenRouterProvider(cfg.APIKey, cfg.Model).WithBaseURL(cfg.BaseURL), nil

	case "custom":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("custom provider requires base_url: %w", ErrNotConfigured)
		}
		return NewCustomProvider(cfg.BaseURL, cfg.APIKey, cfg.Model), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

func notConfigured(provider string) error {
	return fmt.Errorf("%s: %w", provider, ErrNotConfigured)
}
