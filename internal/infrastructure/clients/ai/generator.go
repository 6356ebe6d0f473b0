// Package ai adapts hosted language models to the TextGenerator capability.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	jetai "go.jetify.com/ai"
	jetapi "go.jetify.com/ai/api"
	jetanthropic "go.jetify.com/ai/provider/anthropic"
	jetopenai "go.jetify.com/ai/provider/openai"
	"golang.org/x/time/rate"

	"github.com/Pranavupp12/review-platform/pkg/config"
)

const systemPrompt = "You are a precise classification engine. Answer with JSON only, no commentary."

// ErrEmptyResponse is returned when the model answered without any text
var ErrEmptyResponse = errors.New("empty response from model")

type generateFunc func(ctx context.Context, messages []jetapi.Message) (*jetapi.Response, error)

// Generator calls one hosted model. It is safe for concurrent use.
type Generator struct {
	name     string
	modelID  string
	timeout  time.Duration
	limiter  *rate.Limiter
	generate generateFunc
}

// NewGenerator builds a generator for one configured provider
func NewGenerator(name string, provider config.ProviderConfig, cfg config.AIConfig) (*Generator, error) {
	model, modelID, err := buildLanguageModel(provider)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	maxTokens := cfg.MaxOutputTokens
	g := &Generator{
		name:    name,
		modelID: modelID,
		timeout: cfg.Timeout,
		limiter: newLimiter(cfg.RequestsPerMinute, cfg.Burst),
		generate: func(ctx context.Context, messages []jetapi.Message) (*jetapi.Response, error) {
			return jetai.GenerateText(ctx, messages,
				jetai.WithModel(model),
				jetai.WithMaxOutputTokens(maxTokens),
			)
		},
	}
	return g, nil
}

// Name identifies the generator in logs as "<provider>/<model>"
func (g *Generator) Name() string {
	return g.name + "/" + g.modelID
}

// Generate waits for the rate limiter, then asks the model for a completion
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.limiter != nil {
		waitStart := time.Now()
		if err := g.limiter.Wait(ctx); err != nil {
			err = limiterError(ctx, err)
			recordRequestMetric(ctx, g.name, g.modelID, 0, err)
			return "", err
		}
		recordRateLimitWait(ctx, g.name, g.modelID, time.Since(waitStart))
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := g.generate(ctx, buildPromptMessages(prompt))
	if err != nil {
		// SDK errors do not always wrap the context error
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		recordRequestMetric(ctx, g.name, g.modelID, time.Since(start), err)
		return "", err
	}

	text, err := extractText(resp)
	recordRequestMetric(ctx, g.name, g.modelID, time.Since(start), err)
	return text, err
}

func buildPromptMessages(prompt string) []jetapi.Message {
	return []jetapi.Message{
		&jetapi.SystemMessage{Content: systemPrompt},
		&jetapi.UserMessage{Content: jetapi.ContentFromText(prompt)},
	}
}

func extractText(resp *jetapi.Response) (string, error) {
	if resp == nil {
		return "", ErrEmptyResponse
	}

	var full strings.Builder
	for _, block := range resp.Content {
		textBlock, ok := block.(*jetapi.TextBlock)
		if !ok || textBlock.Text == "" {
			continue
		}
		full.WriteString(textBlock.Text)
	}

	text := full.String()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// limiterError marks a wait that would outlive the deadline as a timeout.
// rate.Limiter reports that case before the context is done, without wrapping its error.
func limiterError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(err, ctxErr) {
			return fmt.Errorf("rate limiter: %w", err)
		}
		return fmt.Errorf("rate limiter: %w: %v", ctxErr, err)
	}
	if _, ok := ctx.Deadline(); ok {
		return fmt.Errorf("rate limiter: %w: %v", context.DeadlineExceeded, err)
	}
	return fmt.Errorf("rate limiter: %w", err)
}

func newLimiter(requestsPerMinute float64, burst int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(requestsPerMinute/60.0), burst)
}

func buildLanguageModel(provider config.ProviderConfig) (jetapi.LanguageModel, string, error) {
	apiKey := strings.TrimSpace(provider.APIKey)
	if apiKey == "" {
		return nil, "", errors.New("api key is empty")
	}
	modelID := strings.TrimSpace(provider.Model)
	baseURL := strings.TrimRight(strings.TrimSpace(provider.BaseURL), "/")

	switch provider.Type {
	case config.ProviderAnthropic:
		if modelID == "" {
			modelID = "claude-haiku-4-5-20251001"
		}
		opts := []anthropicoption.RequestOption{
			anthropicoption.WithAPIKey(apiKey),
			anthropicoption.WithMaxRetries(0),
		}
		if baseURL != "" {
			opts = append(opts, anthropicoption.WithBaseURL(baseURL))
		}
		client := anthropicclient.NewClient(opts...)
		return jetanthropic.NewLanguageModel(modelID, jetanthropic.WithClient(client)), modelID, nil

	case config.ProviderOpenAI:
		if modelID == "" {
			modelID = "gpt-4o-mini"
		}
		opts := []openaioption.RequestOption{
			openaioption.WithAPIKey(apiKey),
			openaioption.WithMaxRetries(0),
		}
		if baseURL != "" {
			opts = append(opts, openaioption.WithBaseURL(baseURL))
		}
		client := openaiclient.NewClient(opts...)
		return jetopenai.NewLanguageModel(modelID, jetopenai.WithClient(client)), modelID, nil
	}

	return nil, "", fmt.Errorf("unsupported provider type %q", provider.Type)
}
