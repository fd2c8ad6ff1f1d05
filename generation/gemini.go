package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash-lite"

// GeminiGenerator calls the Gemini API through the genai SDK. A client is
// created for each call with the key current at that moment.
type GeminiGenerator struct {
	apiKey KeySource
	model  string
	opts   []option.ClientOption
}

// NewGeminiGenerator creates a Gemini generator. Extra client options are
// appended after the API key option.
func NewGeminiGenerator(apiKey KeySource, model string, opts ...option.ClientOption) *GeminiGenerator {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiGenerator{apiKey: apiKey, model: model, opts: opts}
}

// Name returns the provider name
func (g *GeminiGenerator) Name() string {
	return ProviderGemini
}

// Generate sends the prompt as a single text part.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	key := keyOf(g.apiKey)
	if key == "" {
		return "", errors.New("GEMINI_API_KEY not set")
	}

	opts := append([]option.ClientOption{option.WithAPIKey(key)}, g.opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return responseText(resp)
}

// responseText returns the joined text parts of the first candidate that
// has any text. Later candidates are ignored.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("gemini returned no response")
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != genai.BlockReasonUnspecified {
		return "", fmt.Errorf("gemini blocked prompt: %s", fb.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", errors.New("gemini returned no candidates")
	}

	for i, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		var b strings.Builder
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		out := b.String()
		if strings.TrimSpace(out) == "" {
			continue
		}
		if cand.FinishReason != genai.FinishReasonUnspecified && cand.FinishReason != genai.FinishReasonStop {
			slog.Warn("gemini candidate finished early", "candidate", i, "reason", cand.FinishReason.String())
		}
		return out, nil
	}
	return "", errors.New("gemini returned empty content")
}
