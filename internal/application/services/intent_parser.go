package services

import (
	"strings"

	"github.com/Pranavupp12/review-platform/internal/domain/entities"
	apperrors "github.com/Pranavupp12/review-platform/pkg/errors"
	"github.com/Pranavupp12/review-platform/pkg/jsonextract"
)

type intentPayload struct {
	IsNavigation      *bool   `json:"isNavigation"`
	TargetCategory    *string `json:"targetCategory"`
	TargetSubCategory *string `json:"targetSubCategory"`
	TargetCompany     *string `json:"targetCompany"`
	ExtractedLocation *string `json:"extractedLocation"`
	SortBy            *string `json:"sortBy"`
}

// ParseIntent reads an ExtractedIntent out of provider text. Unknown sort values and blank
// strings are dropped; a missing isNavigation flag makes the answer malformed.
func ParseIntent(raw string) (*entities.ExtractedIntent, error) {
	var p intentPayload
	if err := jsonextract.Decode(raw, jsonextract.Object, &p); err != nil {
		return nil, apperrors.NewMalformedOutputError("intent is not a json object", err)
	}
	if p.IsNavigation == nil {
		return nil, apperrors.NewMalformedOutputError("intent is missing isNavigation", nil)
	}

	intent := &entities.ExtractedIntent{
		IsNavigation:      *p.IsNavigation,
		TargetCategory:    cleanOptional(p.TargetCategory),
		TargetSubCategory: cleanOptional(p.TargetSubCategory),
		TargetCompany:     cleanOptional(p.TargetCompany),
		ExtractedLocation: cleanOptional(p.ExtractedLocation),
	}
	if p.SortBy != nil {
		if sort, ok := entities.ParseIntentSort(*p.SortBy); ok {
			intent.SortBy = &sort
		}
	}
	return intent, nil
}

type filterPayload struct {
	Keyword            *string `json:"keyword"`
	Category           *string `json:"category"`
	SubCategoryKeyword *string `json:"subCategoryKeyword"`
	ExtractedLocation  *string `json:"extractedLocation"`
	SortBy             *string `json:"sortBy"`
}

// ParseFilters reads SearchFilters out of provider text. An answer that sets no filter at all
// is malformed so the caller falls back to the raw keyword.
func ParseFilters(raw string) (*entities.SearchFilters, error) {
	var p filterPayload
	if err := jsonextract.Decode(raw, jsonextract.Object, &p); err != nil {
		return nil, apperrors.NewMalformedOutputError("filters are not a json object", err)
	}

	filters := &entities.SearchFilters{
		Keyword:            derefTrim(p.Keyword),
		Category:           derefTrim(p.Category),
		SubCategoryKeyword: derefTrim(p.SubCategoryKeyword),
		ExtractedLocation:  derefTrim(p.ExtractedLocation),
		SortBy:             entities.SearchSortRelevance,
	}
	if p.SortBy != nil && strings.EqualFold(strings.TrimSpace(*p.SortBy), string(entities.SearchSortRating)) {
		filters.SortBy = entities.SearchSortRating
	}

	if filters.Keyword == "" && filters.Category == "" && filters.SubCategoryKeyword == "" && filters.ExtractedLocation == "" {
		return nil, apperrors.NewMalformedOutputError("filters are empty", nil)
	}
	return filters, nil
}

func cleanOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" || strings.EqualFold(v, "null") {
		return nil
	}
	return &v
}

func derefTrim(s *string) string {
	if v := cleanOptional(s); v != nil {
		return *v
	}
	return ""
}
