package generation

import (
	"context"
	"fmt"
	"strings"
)

// Provider identifies a text-generation service.
type Provider string

const (
	// ProviderGemini uses the Google Gemini API.
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI uses the OpenAI chat completions API (or a compatible gateway via BaseURL).
	ProviderOpenAI Provider = "openai"
	// ProviderAnthropic uses the Anthropic messages API.
	ProviderAnthropic Provider = "anthropic"
)

// DefaultMaxTokens bounds the response for providers that require a limit.
const DefaultMaxTokens = 8192

// Providers lists the supported providers.
func Providers() []Provider {
	return []Provider{ProviderGemini, ProviderOpenAI, ProviderAnthropic}
}

// ParseProvider parses a provider name case-insensitively.
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic:
		return p, nil
	}
	return "", fmt.Errorf("unsupported provider %q (must be gemini, openai, or anthropic)", s)
}

// DefaultModel returns the model used when none is configured.
func (p Provider) DefaultModel() string {
	switch p {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderAnthropic:
		return "claude-sonnet-4-5"
	default:
		return "gemini-2.5-flash"
	}
}

// Options configures a provider completer.
type Options struct {
	// Provider selects the service.
	Provider Provider
	// APIKey authenticates against the service.
	APIKey string
	// Model overrides Provider.DefaultModel.
	Model string
	// BaseURL overrides the service endpoint.
	BaseURL string
}

// NewCompleter creates the completer for opts.Provider.
func NewCompleter(ctx context.Context, opts Options) (Completer, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("%s: %w", opts.Provider, ErrAPIKeyNotSet)
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = opts.Provider.DefaultModel()
	}

	switch opts.Provider {
	case ProviderGemini:
		return NewGeminiCompleter(ctx, opts.APIKey, model, opts.BaseURL)
	case ProviderOpenAI:
		return NewOpenAICompleter(opts.APIKey, model, opts.BaseURL), nil
	case ProviderAnthropic:
		return NewAnthropicCompleter(opts.APIKey, model, opts.BaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", opts.Provider)
	}
}
