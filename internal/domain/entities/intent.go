package entities

import "strings"

// IntentSort is the sort preference a provider can infer from a query
type IntentSort string

const (
	IntentSortRatingHigh IntentSort = "rating_high"
	IntentSortRatingLow  IntentSort = "rating_low"
	IntentSortNewest     IntentSort = "newest"
)

// ParseIntentSort maps free text to a known IntentSort
func ParseIntentSort(s string) (IntentSort, bool) {
	switch IntentSort(strings.ToLower(strings.TrimSpace(s))) {
	case IntentSortRatingHigh:
		return IntentSortRatingHigh, true
	case IntentSortRatingLow:
		return IntentSortRatingLow, true
	case IntentSortNewest:
		return IntentSortNewest, true
	}
	return "", false
}

// ExtractedIntent is the per-request classification of a query. Never persisted.
type ExtractedIntent struct {
	IsNavigation      bool        `json:"isNavigation"`
	TargetCategory    *string     `json:"targetCategory,omitempty"`
	TargetSubCategory *string     `json:"targetSubCategory,omitempty"`
	TargetCompany     *string     `json:"targetCompany,omitempty"`
	ExtractedLocation *string     `json:"extractedLocation,omitempty"`
	SortBy            *IntentSort `json:"sortBy,omitempty"`
}

// Location returns the extracted location or ""
func (i *ExtractedIntent) Location() string {
	if i == nil || i.ExtractedLocation == nil {
		return ""
	}
	return *i.ExtractedLocation
}

// SearchSort orders inline search results
type SearchSort string

const (
	SearchSortRating    SearchSort = "rating"
	SearchSortRelevance SearchSort = "relevance"
)

// SearchFilters drive an inline keyword search when no navigation applies
type SearchFilters struct {
	Keyword            string     `json:"keyword,omitempty"`
	Category           string     `json:"category,omitempty"`
	SubCategoryKeyword string     `json:"subCategoryKeyword,omitempty"`
	ExtractedLocation  string     `json:"extractedLocation,omitempty"`
	SortBy             SearchSort `json:"sortBy"`
}

// KeywordFilters is the deterministic default used when no provider could classify a query
func KeywordFilters(query string) *SearchFilters {
	return &SearchFilters{
		Keyword: strings.TrimSpace(query),
		SortBy:  SearchSortRelevance,
	}
}
