package ai

import (
	"context"
	"errors"
	"net/http"
)

//go:generate mockgen -source=provider.go -destination=mock/provider.go -package=mock

// Provider defines the interface for AI providers.
type Provider interface {
	// Test sends a short message to check credentials and model.
	Test(ctx context.Context) (string, error)
	// Name returns the provider name.
	Name() string
	// Complete generates a response without streaming. An empty string with a
	// nil error means the model produced no choices.
	Complete(ctx context.Context, systemPrompt, content string) (string, error)
}

// Config holds the configuration for an AI provider.
type Config struct {
	Provider        string       // gemini, openai, anthropic, compatible
	APIKey          string
	BaseURL         string       // optional except for compatible
	Model           string       // optional for gemini
	Thinking        bool
	ThinkingBudget  int          // Anthropic/Compatible budget_tokens
	ReasoningEffort string       // OpenAI/Gemini/Compatible effort
	HTTPClient      *http.Client // optional, e.g. for a proxy
}

// ProviderType constants
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderCompatible = "compatible"
)

// Gemini is reached through Google's OpenAI-compatible endpoint.
const (
	GeminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta/openai/"
	GeminiDefaultModel = "gemini-2.0-flash"
)

var (
	ErrInvalidProvider = errors.New("invalid provider")
	ErrMissingAPIKey   = errors.New("API key is required")
	ErrMissingBaseURL  = errors.New("base URL is required for compatible provider")
	ErrMissingModel    = errors.New("model is required")
)

// NewProvider creates a new AI provider based on the config.
func NewProvider(cfg Config) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Provider == ProviderGemini {
		if cfg.Model == "" {
			cfg.Model = GeminiDefaultModel
		}
		if cfg.BaseURL == "" {
			cfg.BaseURL = GeminiBaseURL
		}
	}
	if cfg.Model == "" {
		return nil, ErrMissingModel
	}

	switch cfg.Provider {
	case ProviderGemini:
		p, err := NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Thinking, cfg.ReasoningEffort, cfg.HTTPClient)
		if err != nil {
			return nil, err
		}
		p.name = ProviderGemini
		return p, nil
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Thinking, cfg.ReasoningEffort, cfg.HTTPClient)
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Thinking, cfg.ThinkingBudget, cfg.HTTPClient)
	case ProviderCompatible:
		if cfg.BaseURL == "" {
			return nil, ErrMissingBaseURL
		}
		return NewCompatibleProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Thinking, cfg.ThinkingBudget, cfg.ReasoningEffort, cfg.HTTPClient)
	default:
		return nil, ErrInvalidProvider
	}
}
