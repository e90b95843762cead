// Package langchain adapts langchaingo chat models to the domain Generator
// interface. It covers the Anthropic and Google AI providers, which do not
// speak the OpenAI wire protocol.
package langchain

import (
	"context"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"

	"github.com/carecompass/compass/internal/domain"
	"github.com/carecompass/compass/internal/metrics"
)

const (
	defaultTemperature = 0.3
	defaultMaxTokens   = 3000
)

// Generator produces answers via a langchaingo chat model.
type Generator struct {
	model       llms.Model
	modelName   string
	temperature float64
	maxTokens   int
	provider    string
	logger      *zap.Logger
}

// Config holds the generation provider settings.
type Config struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Logger      *zap.Logger
}

// NewAnthropic creates a Generator backed by the Anthropic messages API.
func NewAnthropic(cfg *Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic: %w", domain.ErrMissingCredentials)
	}

	model, err := anthropic.New(
		anthropic.WithToken(cfg.APIKey),
		anthropic.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("create anthropic client: %w", err)
	}

	return newGenerator(model, "anthropic", cfg), nil
}

// NewGoogleAI creates a Generator backed by the Google AI (Gemini) API.
func NewGoogleAI(ctx context.Context, cfg *Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("googleai: %w", domain.ErrMissingCredentials)
	}

	model, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("create googleai client: %w", err)
	}

	return newGenerator(model, "googleai", cfg), nil
}

func newGenerator(model llms.Model, provider string, cfg *Config) *Generator {
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	return &Generator{
		model:       model,
		modelName:   cfg.Model,
		temperature: temperature,
		maxTokens:   maxTokens,
		provider:    provider,
		logger:      cfg.Logger,
	}
}

// Generate implements domain.Generator.
func (g *Generator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	content := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
		},
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(userPrompt)},
		},
	}

	start := time.Now()

	resp, err := g.model.GenerateContent(ctx, content,
		llms.WithTemperature(g.temperature),
		llms.WithMaxTokens(g.maxTokens),
	)

	duration := time.Since(start)

	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues(g.provider, g.modelName, "error").Inc()
		metrics.GenerationErrorsTotal.WithLabelValues(g.provider, g.modelName, "api_error").Inc()
		return "", fmt.Errorf("generate content: %v: %w", err, domain.ErrGenerationProviderError)
	}

	if len(resp.Choices) == 0 {
		metrics.GenerationRequestsTotal.WithLabelValues(g.provider, g.modelName, "error").Inc()
		metrics.GenerationErrorsTotal.WithLabelValues(g.provider, g.modelName, "empty_response").Inc()
		return "", fmt.Errorf("empty completion response: %w", domain.ErrGenerationProviderError)
	}

	metrics.GenerationRequestsTotal.WithLabelValues(g.provider, g.modelName, "success").Inc()
	metrics.GenerationRequestDuration.WithLabelValues(g.provider, g.modelName).Observe(duration.Seconds())

	return resp.Choices[0].Content, nil
}
