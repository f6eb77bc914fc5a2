package llm

import (
	"context"
	"fmt"

	"github.com/ramonehamilton/pokeparty/internal/config"
)

// Backend is a configured provider: the Suggester the generator calls and the raw
// Completer behind it.
type Backend struct {
	Suggester Suggester
	Completer Completer
}

// New builds the provider named by cfg.Provider, wrapped in the prompt layer and,
// when cfg.RequestsPerMinute is set, the local throttle.
func New(ctx context.Context, cfg config.LLMConfig) (*Backend, error) {
	completer, err := newCompleter(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var s Suggester = NewPromptSuggester(completer, DefaultSuggesterConfig())
	if cfg.RequestsPerMinute > 0 {
		s = NewThrottle(s, cfg.RequestsPerMinute, cfg.Burst)
	}
	return &Backend{Suggester: s, Completer: completer}, nil
}

func newCompleter(ctx context.Context, cfg config.LLMConfig) (Completer, error) {
	timeout := cfg.GetTimeout()

	switch cfg.Provider {
	case "anthropic":
		c := DefaultAnthropicConfig(cfg.APIKey())
		c.Timeout = timeout
		if cfg.Model != "" {
			c.Model = cfg.Model
		}
		if cfg.BaseURL != "" {
			c.BaseURL = cfg.BaseURL
		}
		return NewAnthropicClient(c), nil

	case "openai":
		c := DefaultOpenAIConfig(cfg.APIKey())
		c.Timeout = timeout
		if cfg.Model != "" {
			c.Model = cfg.Model
		}
		if cfg.BaseURL != "" {
			c.BaseURL = cfg.BaseURL
		}
		return NewOpenAIClient(c), nil

	case "ollama":
		c := DefaultOllamaConfig()
		c.InferenceTimeout = timeout
		if cfg.Model != "" {
			c.Model = cfg.Model
		}
		if cfg.BaseURL != "" {
			c.BaseURL = cfg.BaseURL
		}
		return NewOllamaClient(c), nil

	case "gemini":
		c := DefaultGeminiConfig(cfg.APIKey())
		c.Timeout = timeout
		c.BaseURL = cfg.BaseURL
		if cfg.Model != "" {
			c.Model = cfg.Model
		}
		return NewGeminiClient(ctx, c)

	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
