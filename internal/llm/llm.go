// Package llm provides the text-generation backends used by the assistant.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/metalagman/freelo/internal/config"
)

// ErrEmptyResponse is returned when the backend answers without any text.
var ErrEmptyResponse = errors.New("model response did not contain output text")

// Generator turns prompt parts into the raw text of one model response.
// The first part is the instruction block; the rest is user content.
type Generator interface {
	Generate(ctx context.Context, parts []string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, parts []string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, parts []string) (string, error) {
	return f(ctx, parts)
}

// New constructs the backend selected by cfg.Provider.
func New(cfg config.ModelConfig, httpClient *http.Client) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini, "":
		return NewGemini(GeminiConfig{
			Model:   cfg.Name,
			APIKey:  cfg.ResolveAPIKey(),
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		}, httpClient)
	case config.ProviderOpenAI:
		return NewOpenAI(OpenAIConfig{
			Model:   cfg.Name,
			APIKey:  cfg.ResolveAPIKey(),
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		}, httpClient)
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}

func splitParts(parts []string) (instructions, input string, err error) {
	if len(parts) == 0 {
		return "", "", errors.New("prompt parts are required")
	}
	return parts[0], strings.Join(parts[1:], "\n\n"), nil
}
