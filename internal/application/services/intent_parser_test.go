package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pranavupp12/review-platform/internal/domain/entities"
	apperrors "github.com/Pranavupp12/review-platform/pkg/errors"
)

func TestParseIntent_Validates(t *testing.T) {
	intent, err := ParseIntent(`{"isNavigation": false, "targetCategory": "  ", "extractedLocation": "null", "sortBy": "cheapest"}`)
	require.NoError(t, err)

	assert.False(t, intent.IsNavigation)
	assert.Nil(t, intent.TargetCategory)
	assert.Nil(t, intent.ExtractedLocation)
	assert.Nil(t, intent.SortBy, "unknown sort values are dropped")
}

func TestParseIntent_Malformed(t *testing.T) {
	for _, raw := range []string{"", "no idea", `{"targetCategory": "Legal"}`, `{"isNavigation": "yes"}`} {
		_, err := ParseIntent(raw)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeMalformedOutput), raw)
	}
}

func TestParseFilters(t *testing.T) {
	filters, err := ParseFilters(`Here you go: {"keyword": "pizza", "category": "Restaurants & Food", "extractedLocation": "Naples", "sortBy": "Rating"}`)
	require.NoError(t, err)
	assert.Equal(t, &entities.SearchFilters{
		Keyword:           "pizza",
		Category:          "Restaurants & Food",
		ExtractedLocation: "Naples",
		SortBy:            entities.SearchSortRating,
	}, filters)

	filters, err = ParseFilters(`{"keyword": "pizza", "sortBy": "popularity"}`)
	require.NoError(t, err)
	assert.Equal(t, entities.SearchSortRelevance, filters.SortBy)

	_, err = ParseFilters(`{"keyword": null, "sortBy": "rating"}`)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeMalformedOutput))
}
