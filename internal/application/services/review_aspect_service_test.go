package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Pranavupp12/review-platform/pkg/errors"
)

const rudeWaiterReview = "Waiter was rude but the food was great and shipping was fast"

var encodedAspectPattern = regexp.MustCompile(`^[a-z ]+:(positive|negative|neutral):.+$`)

func TestExtract_MixedReview(t *testing.T) {
	primary := &fakeGenerator{name: "primary", answers: []string{"```json\n" + `[
		{"topic": "staff", "sentiment": "negative", "snippet": "Waiter was rude"},
		{"topic": "food", "sentiment": "positive", "snippet": "food was great"},
		{"topic": "shipping", "sentiment": "positive", "snippet": "shipping was fast"}
	]` + "\n```"}}
	svc := NewReviewAspectService(NewExtractionChain(primary), 20)

	aspects, err := svc.Extract(context.Background(), rudeWaiterReview)

	require.NoError(t, err)
	require.GreaterOrEqual(t, len(aspects), 3)
	assert.Contains(t, aspects, "staff:negative:Waiter was rude")
	assert.Contains(t, aspects, "food:positive:food was great")
	assert.Contains(t, aspects, "shipping:positive:shipping was fast")
	for _, a := range aspects {
		assert.Regexp(t, encodedAspectPattern, a)
		snippet := strings.SplitN(a, ":", 3)[2]
		assert.Contains(t, rudeWaiterReview, snippet)
	}
	assert.Contains(t, primary.prompts[0], "waiter, manager, cashier, service person -> staff")
	assert.Contains(t, primary.prompts[0], rudeWaiterReview)
}

func TestExtract_DropsInvalidSnippetKeepsRest(t *testing.T) {
	primary := &fakeGenerator{name: "primary", answers: []string{`Here are the aspects: [
		{"topic": "staff", "sentiment": "negative", "snippet": "Waiter was rude"},
		{"topic": "food", "sentiment": "positive", "snippet": "food was great"},
		{"topic": "shipping", "sentiment": "positive", "snippet": "shipping was fast"},
		{"topic": "price", "sentiment": "negative", "snippet": "waiter was rude"}
	]`}}
	svc := NewReviewAspectService(NewExtractionChain(primary), 20)

	aspects, err := svc.Extract(context.Background(), rudeWaiterReview)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"staff:negative:Waiter was rude",
		"food:positive:food was great",
		"shipping:positive:shipping was fast",
	}, aspects)
}

func TestExtract_ValidatesEachElement(t *testing.T) {
	primary := &fakeGenerator{name: "primary", answers: []string{`[
		{"topic": "Staff", "sentiment": "Negative", "snippet": "Waiter was rude"},
		{"topic": "staff", "sentiment": "negative", "snippet": "Waiter was rude"},
		{"topic": "food", "sentiment": "amazing", "snippet": "food was great"},
		{"topic": "food2", "sentiment": "positive", "snippet": "food was great"},
		{"topic": "shipping", "sentiment": "positive"},
		"not an object",
		{"topic": "service quality", "sentiment": "neutral", "snippet": "shipping was fast"}
	]`}}
	svc := NewReviewAspectService(NewExtractionChain(primary), 20)

	aspects, err := svc.Extract(context.Background(), rudeWaiterReview)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"staff:negative:Waiter was rude",
		"service quality:neutral:shipping was fast",
	}, aspects)
}

func TestExtract_ShortTextSkipsProviders(t *testing.T) {
	primary := &fakeGenerator{name: "primary", answers: []string{`[]`}}
	svc := NewReviewAspectService(NewExtractionChain(primary), 20)

	aspects, err := svc.Extract(context.Background(), "  Great!  ")

	require.NoError(t, err)
	assert.Empty(t, aspects)
	assert.Zero(t, primary.Calls())
}

func TestExtract_FallbackProviderAndTotalFailure(t *testing.T) {
	primary := &fakeGenerator{name: "primary", answers: []string{`{"topic": "staff"}`}}
	fallback := &fakeGenerator{name: "fallback", answers: []string{`[{"topic": "food", "sentiment": "positive", "snippet": "food was great"}]`}}
	svc := NewReviewAspectService(NewExtractionChain(primary, fallback), 20)

	aspects, err := svc.Extract(context.Background(), rudeWaiterReview)
	require.NoError(t, err)
	assert.Equal(t, []string{"food:positive:food was great"}, aspects)

	failing := NewReviewAspectService(NewExtractionChain(
		&fakeGenerator{name: "primary", err: errors.New("down")},
		&fakeGenerator{name: "fallback", err: errors.New("down")},
	), 20)
	aspects, err = failing.Extract(context.Background(), rudeWaiterReview)
	require.NoError(t, err)
	assert.Empty(t, aspects)
}

func TestExtractStrict_ReportsOutage(t *testing.T) {
	svc := NewReviewAspectService(NewExtractionChain(
		&fakeGenerator{name: "primary", err: errors.New("down")},
		&fakeGenerator{name: "fallback", err: errors.New("down")},
	), 20)

	aspects, err := svc.ExtractStrict(context.Background(), rudeWaiterReview)

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeProviderUnavailable))
	assert.Nil(t, aspects)

	_, err = NewReviewAspectService(nil, 20).ExtractStrict(context.Background(), rudeWaiterReview)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeProviderUnavailable))
}

func TestExtractStrict_NoOpinionsIsNotAnError(t *testing.T) {
	primary := &fakeGenerator{name: "primary", answers: []string{"[]"}}
	svc := NewReviewAspectService(NewExtractionChain(primary), 20)

	aspects, err := svc.ExtractStrict(context.Background(), rudeWaiterReview)

	require.NoError(t, err)
	assert.Equal(t, []string{}, aspects)
}
