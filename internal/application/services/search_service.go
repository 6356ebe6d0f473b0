package services

import (
	"context"
	"strings"
	"time"

	"github.com/Pranavupp12/review-platform/internal/domain/entities"
	"github.com/Pranavupp12/review-platform/internal/domain/repositories"
	"github.com/Pranavupp12/review-platform/internal/infrastructure/observability"
	"github.com/Pranavupp12/review-platform/pkg/utils"
)

const (
	defaultSearchLimit = 50
	minTagLength       = 3
)

// SearchRequest is an inline search. Filters are extracted from Query when nil.
type SearchRequest struct {
	Query            string
	ExplicitLocation string
	UserRegion       string
	Filters          *entities.SearchFilters
	Limit            int
}

// SearchResponse carries the filters that were applied and the companies found
type SearchResponse struct {
	Filters *entities.SearchFilters    `json:"filters"`
	Results []*entities.CompanySummary `json:"results"`
}

// SearchService runs inline keyword searches when a query does not navigate anywhere
type SearchService struct {
	companies   repositories.CompanyRepository
	taxonomy    *TaxonomyService
	synonyms    *SynonymIndex
	chain       *ExtractionChain
	impressions ImpressionSink
	now         func() time.Time
}

// NewSearchService creates a new search service
func NewSearchService(
	companies repositories.CompanyRepository,
	taxonomy *TaxonomyService,
	synonyms *SynonymIndex,
	chain *ExtractionChain,
	impressions ImpressionSink,
) *SearchService {
	return &SearchService{
		companies:   companies,
		taxonomy:    taxonomy,
		synonyms:    synonyms,
		chain:       chain,
		impressions: impressions,
		now:         time.Now,
	}
}

// Search extracts filters if needed and executes them
func (s *SearchService) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	ctx, span := observability.StartSpan(ctx, "SearchService.Search")
	defer span.End()

	filters := req.Filters
	if filters == nil {
		filters = s.ExtractFilters(ctx, req.Query)
	}

	results, err := s.Execute(ctx, req, filters)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	return &SearchResponse{Filters: filters, Results: results}, nil
}

// ExtractFilters asks the provider chain for filters. When no provider produces usable
// filters, the whole query becomes the keyword sorted by relevance.
func (s *SearchService) ExtractFilters(ctx context.Context, query string) *entities.SearchFilters {
	if s.chain == nil || s.chain.Len() == 0 || strings.TrimSpace(query) == "" {
		return entities.KeywordFilters(query)
	}

	prompt := buildFilterPrompt(query, s.taxonomy.Load(ctx), s.synonyms.Context())

	var filters *entities.SearchFilters
	_, err := s.chain.Extract(ctx, prompt, func(raw string) error {
		parsed, err := ParseFilters(raw)
		if err != nil {
			return err
		}
		filters = parsed
		return nil
	})
	if err != nil {
		recordFilterFallback(ctx)
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("Filter extraction unavailable, searching raw keyword")
		return entities.KeywordFilters(query)
	}
	return filters
}

// Execute queries the company store and hands the surfaced companies to the impression sink.
// The structured filters run first; keyword tags are the fallback when they match nothing.
func (s *SearchService) Execute(ctx context.Context, req SearchRequest, filters *entities.SearchFilters) ([]*entities.CompanySummary, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	sortBy := filters.SortBy
	if sortBy != entities.SearchSortRating {
		sortBy = entities.SearchSortRelevance
	}
	location := RouteParams{
		ExplicitLocation:    req.ExplicitLocation,
		AIExtractedLocation: filters.ExtractedLocation,
	}.EffectiveLocation()

	criteria := entities.CompanySearchCriteria{
		Keyword:     filters.Keyword,
		Category:    filters.Category,
		SubCategory: filters.SubCategoryKeyword,
		Location:    location,
		SortBy:      sortBy,
		Limit:       limit,
	}

	var results []*entities.CompanySummary
	if criteria.HasStructuredFilter() {
		var err error
		results, err = s.companies.Search(ctx, criteria)
		if err != nil {
			return nil, err
		}
	}

	if len(results) == 0 {
		if tags := searchTags(filters, req.Query); len(tags) > 0 {
			tagResults, err := s.companies.Search(ctx, entities.CompanySearchCriteria{
				Tags:     tags,
				Location: location,
				SortBy:   sortBy,
				Limit:    limit,
			})
			if err != nil {
				return nil, err
			}
			results = tagResults
		}
	}

	if results == nil {
		results = []*entities.CompanySummary{}
	}

	if s.impressions != nil && len(results) > 0 {
		ids := make([]string, 0, len(results))
		for _, c := range results {
			ids = append(ids, c.ID)
		}
		s.impressions.Record(ids, req.Query, location, req.UserRegion, s.now())
	}
	return results, nil
}

func searchTags(filters *entities.SearchFilters, query string) []string {
	tags := utils.Terms(strings.Join([]string{filters.Keyword, filters.SubCategoryKeyword, filters.Category}, " "), minTagLength)
	if len(tags) == 0 {
		tags = utils.Terms(query, minTagLength)
	}
	return tags
}
