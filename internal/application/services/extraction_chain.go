package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Pranavupp12/review-platform/internal/domain/providers"
	"github.com/Pranavupp12/review-platform/internal/infrastructure/observability"
	apperrors "github.com/Pranavupp12/review-platform/pkg/errors"
)

var errNoProviders = errors.New("no providers configured")

// ProviderFailure records why one provider in the chain was skipped
type ProviderFailure struct {
	Provider string
	Err      error
}

// ExtractionResult is the first answer the chain accepted
type ExtractionResult struct {
	Provider string
	Text     string
	Failures []ProviderFailure
}

// ExtractionChain tries text generators strictly in order until one answer is accepted.
// Providers are never raced.
type ExtractionChain struct {
	providers []providers.TextGenerator
}

// NewExtractionChain creates a chain; the first generator is the primary
func NewExtractionChain(generators ...providers.TextGenerator) *ExtractionChain {
	return &ExtractionChain{providers: generators}
}

// Len returns the number of configured providers
func (c *ExtractionChain) Len() int {
	return len(c.providers)
}

// Extract sends prompt to each provider in turn. accept validates the raw text; a rejected
// answer counts as MalformedOutput and moves on like a provider failure. When every provider
// fails, the returned error is a PROVIDER_UNAVAILABLE AppError joining each failure.
func (c *ExtractionChain) Extract(ctx context.Context, prompt string, accept func(raw string) error) (*ExtractionResult, error) {
	logger := observability.LoggerFromContext(ctx)
	var failures []ProviderFailure

	for _, p := range c.providers {
		if err := ctx.Err(); err != nil {
			failures = append(failures, ProviderFailure{Provider: p.Name(), Err: classifyProviderError(p.Name(), err)})
			break
		}

		raw, err := p.Generate(ctx, prompt)
		if err != nil {
			err = classifyProviderError(p.Name(), err)
		} else if accept != nil {
			if verr := accept(raw); verr != nil {
				err = apperrors.NewMalformedOutputError(fmt.Sprintf("provider %s", p.Name()), verr)
			}
		}

		reviewer, reviewed := p.(providers.AnswerReviewer)
		if err == nil {
			if reviewed {
				reviewer.Accepted(ctx, prompt, raw)
			}
			return &ExtractionResult{Provider: p.Name(), Text: raw, Failures: failures}, nil
		}
		if reviewed && apperrors.IsType(err, apperrors.ErrorTypeMalformedOutput) {
			reviewer.Rejected(ctx, prompt)
		}

		logger.Warn().Err(err).Str("provider", p.Name()).Msg("Text generation attempt failed")
		failures = append(failures, ProviderFailure{Provider: p.Name(), Err: err})
	}

	errs := make([]error, 0, len(failures))
	for _, f := range failures {
		errs = append(errs, f.Err)
	}
	if len(errs) == 0 {
		errs = append(errs, errNoProviders)
	}
	return &ExtractionResult{Failures: failures}, apperrors.NewProviderUnavailableError("chain", errors.Join(errs...))
}

func classifyProviderError(provider string, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewProviderTimeoutError(provider, err)
	}
	return apperrors.NewProviderUnavailableError(provider, err)
}
