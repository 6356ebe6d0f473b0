package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Pranavupp12/review-platform/internal/domain/entities"
	"github.com/Pranavupp12/review-platform/internal/domain/repositories"
	"github.com/Pranavupp12/review-platform/internal/infrastructure/observability"
	apperrors "github.com/Pranavupp12/review-platform/pkg/errors"
	"github.com/Pranavupp12/review-platform/pkg/utils"
)

// ResolutionStage names the resolver state that produced a decision
type ResolutionStage string

const (
	StageExactCompany     ResolutionStage = "exact_company"
	StageExactSubCategory ResolutionStage = "exact_sub_category"
	StageExactCategory    ResolutionStage = "exact_category"
	StageAICompany        ResolutionStage = "ai_company"
	StageAISubCategory    ResolutionStage = "ai_sub_category"
	StageAICategory       ResolutionStage = "ai_category"
	StageLocationOnly     ResolutionStage = "location_only"
	StageNoDecision       ResolutionStage = "no_decision"
)

// RouteRequest is the input of the routing entry point
type RouteRequest struct {
	Query            string
	ExplicitLocation string
	UserRegion       string
}

// RouteDecision is a navigation target. A nil decision means "search inline instead".
type RouteDecision struct {
	Path   string
	Stage  ResolutionStage
	Intent *entities.ExtractedIntent
}

// IntentResolver decides whether a query navigates straight to a page.
// Exact catalog matches are tried before any text generation.
type IntentResolver struct {
	companies repositories.CompanyRepository
	catalog   repositories.CatalogRepository
	taxonomy  *TaxonomyService
	synonyms  *SynonymIndex
	chain     *ExtractionChain
}

// NewIntentResolver creates a new intent resolver
func NewIntentResolver(
	companies repositories.CompanyRepository,
	catalog repositories.CatalogRepository,
	taxonomy *TaxonomyService,
	synonyms *SynonymIndex,
	chain *ExtractionChain,
) *IntentResolver {
	return &IntentResolver{
		companies: companies,
		catalog:   catalog,
		taxonomy:  taxonomy,
		synonyms:  synonyms,
		chain:     chain,
	}
}

// Resolve runs the resolver states in order and returns the first decision, or nil
func (r *IntentResolver) Resolve(ctx context.Context, req RouteRequest) *RouteDecision {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil
	}

	ctx, span := observability.StartSpan(ctx, "IntentResolver.Resolve")
	defer span.End()

	decision := r.resolve(ctx, query, req)
	stage := StageNoDecision
	if decision != nil {
		stage = decision.Stage
	}
	recordRouteDecision(ctx, stage)
	observability.LoggerFromContext(ctx).Debug().
		Str("query", utils.NormalizeQuery(query)).
		Str("stage", string(stage)).
		Msg("Query routed")
	return decision
}

func (r *IntentResolver) resolve(ctx context.Context, query string, req RouteRequest) *RouteDecision {
	logger := observability.LoggerFromContext(ctx)

	company, err := r.companies.FindExact(ctx, query, utils.Slugify(query))
	if found(logger, err, "company") && company != nil {
		return &RouteDecision{Path: CompanyPath(company.Slug), Stage: StageExactCompany}
	}

	params := RouteParams{ExplicitLocation: req.ExplicitLocation, UserRegion: req.UserRegion}

	sub, err := r.catalog.FindSubCategoryByName(ctx, query)
	if found(logger, err, "sub-category") && sub != nil {
		return &RouteDecision{
			Path:  BuildRoute(SubCategoryPath(sub.CategorySlug, sub.Slug), params),
			Stage: StageExactSubCategory,
		}
	}

	category, err := r.catalog.FindCategoryByName(ctx, query)
	if found(logger, err, "category") && category != nil {
		return &RouteDecision{
			Path:  BuildRoute(CategoryPath(category.Slug), params),
			Stage: StageExactCategory,
		}
	}

	intent := r.Classify(ctx, query)
	if intent == nil {
		return nil
	}
	params.AIExtractedLocation = intent.Location()
	params.SortBy = intent.SortBy

	if intent.IsNavigation {
		if decision := r.resolveTarget(ctx, intent, params); decision != nil {
			return decision
		}
	}

	if intent.Location() != "" && params.EffectiveLocation() != "" {
		params.Query = query
		return &RouteDecision{
			Path:   BuildRoute(SearchPath, params),
			Stage:  StageLocationOnly,
			Intent: intent,
		}
	}
	return nil
}

// Classify asks the provider chain for an ExtractedIntent. Any failure yields nil.
func (r *IntentResolver) Classify(ctx context.Context, query string) *entities.ExtractedIntent {
	if r.chain == nil || r.chain.Len() == 0 {
		return nil
	}

	prompt := buildIntentPrompt(query, r.taxonomy.Load(ctx), r.synonyms.Context())

	var intent *entities.ExtractedIntent
	result, err := r.chain.Extract(ctx, prompt, func(raw string) error {
		parsed, err := ParseIntent(raw)
		if err != nil {
			return err
		}
		intent = parsed
		return nil
	})
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("Intent classification unavailable")
		return nil
	}

	observability.LoggerFromContext(ctx).Debug().
		Str("provider", result.Provider).
		Bool("is_navigation", intent.IsNavigation).
		Msg("Intent classified")
	return intent
}

// resolveTarget honors the proposed target only when it matches a stored record,
// trying company, then sub-category, then category.
func (r *IntentResolver) resolveTarget(ctx context.Context, intent *entities.ExtractedIntent, params RouteParams) *RouteDecision {
	logger := observability.LoggerFromContext(ctx)

	if intent.TargetCompany != nil {
		company, err := r.companies.SearchByName(ctx, *intent.TargetCompany)
		if found(logger, err, "company") && company != nil {
			return &RouteDecision{Path: CompanyPath(company.Slug), Stage: StageAICompany, Intent: intent}
		}
		logUnresolved(logger, "company", *intent.TargetCompany)
	}

	if intent.TargetSubCategory != nil {
		sub, err := r.catalog.SearchSubCategory(ctx, *intent.TargetSubCategory)
		if found(logger, err, "sub-category") && sub != nil {
			return &RouteDecision{
				Path:   BuildRoute(SubCategoryPath(sub.CategorySlug, sub.Slug), params),
				Stage:  StageAISubCategory,
				Intent: intent,
			}
		}
		logUnresolved(logger, "sub-category", *intent.TargetSubCategory)
	}

	if intent.TargetCategory != nil {
		category, err := r.catalog.SearchCategory(ctx, *intent.TargetCategory)
		if found(logger, err, "category") && category != nil {
			return &RouteDecision{
				Path:   BuildRoute(CategoryPath(category.Slug), params),
				Stage:  StageAICategory,
				Intent: intent,
			}
		}
		logUnresolved(logger, "category", *intent.TargetCategory)
	}

	return nil
}

// found treats not-found as a miss and logs anything else before moving on
func found(logger *zerolog.Logger, err error, kind string) bool {
	if err == nil {
		return true
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		logger.Warn().Err(err).Str("kind", kind).Msg("Catalog lookup failed")
	}
	return false
}

func logUnresolved(logger *zerolog.Logger, kind, target string) {
	logger.Debug().Err(apperrors.NewUnresolvedTargetError(kind, target)).Msg("Ignoring proposed target")
}
