// Package generation wraps the hosted text-generation services used to
// extract case fields.
package generation

import (
	"context"
	"fmt"
)

// Generator sends one prompt and returns the raw response text.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// KeySource yields an API key. It is consulted on every call so rotated
// secrets take effect without a restart.
type KeySource func() string

// Provider names accepted by New.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config selects and configures a provider.
type Config struct {
	Provider      string
	GeminiModel   string
	GeminiKey     KeySource
	OpenAIModel   string
	OpenAIBaseURL string
	OpenAIKey     KeySource
}

// New builds the generator named by cfg.Provider. Gemini is the default.
func New(cfg Config) (Generator, error) {
	switch cfg.Provider {
	case "", ProviderGemini:
		return NewGeminiGenerator(cfg.GeminiKey, cfg.GeminiModel), nil
	case ProviderOpenAI:
		return NewOpenAIGenerator(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}

func keyOf(src KeySource) string {
	if src == nil {
		return ""
	}
	return src()
}
