package services

import (
	"net/url"
	"strings"

	"github.com/Pranavupp12/review-platform/internal/domain/entities"
)

// GlobalLocation is the explicit location meaning "no location constraint"
const GlobalLocation = "Global"

// RouteParams carries everything that can end up in a route's query string
type RouteParams struct {
	Query               string
	ExplicitLocation    string
	AIExtractedLocation string
	UserRegion          string
	SortBy              *entities.IntentSort
}

// EffectiveLocation applies the precedence rule: an explicit location always wins, "Global"
// clears it, and the extracted location is used only when nothing explicit was given.
func (p RouteParams) EffectiveLocation() string {
	explicit := strings.TrimSpace(p.ExplicitLocation)
	if explicit != "" {
		if strings.EqualFold(explicit, GlobalLocation) {
			return ""
		}
		return explicit
	}
	return strings.TrimSpace(p.AIExtractedLocation)
}

// BuildRoute renders basePath plus non-empty parameters as a canonical relative URL.
// url.Values encodes keys in sorted order, so identical inputs give identical routes.
func BuildRoute(basePath string, p RouteParams) string {
	values := url.Values{}
	if q := strings.TrimSpace(p.Query); q != "" {
		values.Set("q", q)
	}
	if loc := p.EffectiveLocation(); loc != "" {
		values.Set("loc", loc)
	}
	if region := strings.TrimSpace(p.UserRegion); region != "" {
		values.Set("region", region)
	}
	if p.SortBy != nil && *p.SortBy != "" {
		values.Set("sort", string(*p.SortBy))
	}

	if len(values) == 0 {
		return basePath
	}
	return basePath + "?" + values.Encode()
}

// CompanyPath is the direct path of a company page
func CompanyPath(slug string) string {
	return "/company/" + url.PathEscape(slug)
}

// CategoryPath is the path of a category page
func CategoryPath(categorySlug string) string {
	return "/categories/" + url.PathEscape(categorySlug)
}

// SubCategoryPath is the path of a sub-category page
func SubCategoryPath(categorySlug, subCategorySlug string) string {
	return CategoryPath(categorySlug) + "/" + url.PathEscape(subCategorySlug)
}

// SearchPath is the generic search page
const SearchPath = "/search"
