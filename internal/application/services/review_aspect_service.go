package services

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Pranavupp12/review-platform/internal/domain/entities"
	"github.com/Pranavupp12/review-platform/internal/infrastructure/observability"
	apperrors "github.com/Pranavupp12/review-platform/pkg/errors"
	"github.com/Pranavupp12/review-platform/pkg/jsonextract"
)

var topicPattern = regexp.MustCompile(`^[a-z ]+$`)

// AspectExtractor turns review text into encoded aspect triples
type AspectExtractor interface {
	Extract(ctx context.Context, reviewText string) ([]string, error)
}

// ReviewAspectService decomposes review text into topic/sentiment/snippet triples
type ReviewAspectService struct {
	chain     *ExtractionChain
	minLength int
}

// NewReviewAspectService creates the extractor; reviews shorter than minLength runes are skipped
func NewReviewAspectService(chain *ExtractionChain, minLength int) *ReviewAspectService {
	return &ReviewAspectService{chain: chain, minLength: minLength}
}

// Extract returns encoded "topic:sentiment:snippet" strings. Invalid triples are dropped one
// by one; when no provider answers the result is empty, not an error.
func (s *ReviewAspectService) Extract(ctx context.Context, reviewText string) ([]string, error) {
	triples, err := s.ExtractTriples(ctx, reviewText)
	if err != nil {
		return nil, err
	}
	return encodeAspects(triples), nil
}

// ExtractStrict is Extract for callers that persist the result. When no provider answers it
// returns the PROVIDER_UNAVAILABLE error, so an outage is never stored as "no opinions".
func (s *ReviewAspectService) ExtractStrict(ctx context.Context, reviewText string) ([]string, error) {
	triples, err := s.extractTriples(ctx, reviewText)
	if err != nil {
		return nil, err
	}
	return encodeAspects(triples), nil
}

// ExtractTriples is Extract without the string encoding
func (s *ReviewAspectService) ExtractTriples(ctx context.Context, reviewText string) ([]entities.AspectTriple, error) {
	triples, err := s.extractTriples(ctx, reviewText)
	if apperrors.IsType(err, apperrors.ErrorTypeProviderUnavailable) {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("Aspect extraction unavailable")
		return []entities.AspectTriple{}, nil
	}
	return triples, err
}

func (s *ReviewAspectService) extractTriples(ctx context.Context, reviewText string) ([]entities.AspectTriple, error) {
	if utf8.RuneCountInString(strings.TrimSpace(reviewText)) < s.minLength {
		return []entities.AspectTriple{}, nil
	}
	if s.chain == nil || s.chain.Len() == 0 {
		return nil, apperrors.NewProviderUnavailableError("chain", errNoProviders)
	}

	var elements []json.RawMessage
	result, err := s.chain.Extract(ctx, buildAspectPrompt(reviewText), func(raw string) error {
		var parsed []json.RawMessage
		if err := jsonextract.Decode(raw, jsonextract.Array, &parsed); err != nil {
			return err
		}
		elements = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}

	triples := validateAspects(ctx, reviewText, elements)
	observability.LoggerFromContext(ctx).Debug().
		Str("provider", result.Provider).
		Int("proposed", len(elements)).
		Int("kept", len(triples)).
		Msg("Review aspects extracted")
	return triples, nil
}

func encodeAspects(triples []entities.AspectTriple) []string {
	out := make([]string, 0, len(triples))
	for _, t := range triples {
		out = append(out, t.Encode())
	}
	return out
}

type aspectPayload struct {
	Topic     string `json:"topic"`
	Sentiment string `json:"sentiment"`
	Snippet   string `json:"snippet"`
}

// validateAspects keeps elements with a valid topic, a known sentiment and a snippet that is a
// case-sensitive substring of the review. Duplicates keep their first position.
func validateAspects(ctx context.Context, reviewText string, elements []json.RawMessage) []entities.AspectTriple {
	logger := observability.LoggerFromContext(ctx)

	seen := make(map[entities.AspectTriple]struct{}, len(elements))
	out := make([]entities.AspectTriple, 0, len(elements))

	for _, el := range elements {
		var p aspectPayload
		if err := json.Unmarshal(el, &p); err != nil {
			recordAspectDropped(ctx, "malformed")
			continue
		}

		topic := strings.ToLower(strings.Join(strings.Fields(p.Topic), " "))
		sentiment, ok := entities.ParseSentiment(p.Sentiment)
		if topic == "" || !topicPattern.MatchString(topic) || !ok || p.Snippet == "" || strings.ContainsAny(p.Snippet, "\r\n") {
			recordAspectDropped(ctx, "incomplete")
			continue
		}

		if !strings.Contains(reviewText, p.Snippet) {
			recordAspectDropped(ctx, "invalid_snippet")
			logger.Debug().Err(apperrors.NewInvalidSnippetError(p.Snippet)).Msg("Dropping aspect")
			continue
		}

		triple := entities.AspectTriple{Topic: topic, Sentiment: sentiment, Snippet: p.Snippet}
		if _, dup := seen[triple]; dup {
			continue
		}
		seen[triple] = struct{}{}
		out = append(out, triple)
	}
	return out
}
