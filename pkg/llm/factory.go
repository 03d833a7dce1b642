package llm

import (
	"fmt"
	"os"
	"strings"
)

// Provider represents the LLM provider type
type Provider string

const (
	ProviderClaude Provider = "claude"
	ProviderOpenAI Provider = "openai"
)

// Options is everything needed to construct a client. A missing API key is a
// configuration error: the factory fails before any request is sent.
type Options struct {
	Provider Provider
	Model    string
	BaseURL  string // OpenAI-compatible gateways only
	APIKey   string
}

// New creates an LLM client from explicit options.
func New(opts Options) (LLM, error) {
	switch opts.Provider {
	case ProviderClaude, "":
		if opts.APIKey == "" {
			return nil, fmt.Errorf("Claude API key is required")
		}
		if opts.Model != "" {
			return NewClaudeWithModel(opts.APIKey, opts.Model), nil
		}
		return NewClaude(opts.APIKey), nil

	case ProviderOpenAI:
		if opts.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		client := NewOpenAI(opts.APIKey)
		if opts.Model != "" {
			client = NewOpenAIWithModel(opts.APIKey, opts.Model)
		}
		return client.WithBaseURL(opts.BaseURL), nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: claude, openai)", opts.Provider)
	}
}

// CreateFromEnv creates an LLM client from environment variables, with
// optional provider/model overrides (CLI flags win over env).
func CreateFromEnv(providerOverride, modelOverride string) (LLM, error) {
	provider := strings.ToLower(providerOverride)
	if provider == "" {
		provider = strings.ToLower(os.Getenv("LLM_PROVIDER"))
	}

	switch provider {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		model := modelOverride
		if model == "" {
			model = os.Getenv("OPENAI_MODEL")
		}
		return New(Options{
			Provider: ProviderOpenAI,
			Model:    model,
			BaseURL:  os.Getenv("OPENAI_BASE_URL"),
			APIKey:   apiKey,
		})

	case "claude", "":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
		model := modelOverride
		if model == "" {
			model = os.Getenv("CLAUDE_MODEL")
		}
		return New(Options{Provider: ProviderClaude, Model: model, APIKey: apiKey})

	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER: %s (supported: claude, openai)", provider)
	}
}
