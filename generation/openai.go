package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = openai.GPT4oMini

// OpenAIGenerator calls an OpenAI-compatible chat completions endpoint.
type OpenAIGenerator struct {
	apiKey  KeySource
	model   string
	baseURL string
}

// NewOpenAIGenerator creates an OpenAI generator. baseURL may be empty.
func NewOpenAIGenerator(apiKey KeySource, model, baseURL string) *OpenAIGenerator {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIGenerator{apiKey: apiKey, model: model, baseURL: baseURL}
}

// Name returns the provider name
func (g *OpenAIGenerator) Name() string {
	return ProviderOpenAI
}

// Generate sends the prompt as a single user message.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	key := keyOf(g.apiKey)
	if key == "" {
		return "", errors.New("OPENAI_API_KEY not set")
	}

	clientConfig := openai.DefaultConfig(key)
	if g.baseURL != "" {
		clientConfig.BaseURL = g.baseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}

	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", errors.New("openai returned empty content")
	}
	return text, nil
}
