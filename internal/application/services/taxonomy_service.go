package services

import (
	"context"

	"github.com/Pranavupp12/review-platform/internal/domain/entities"
	"github.com/Pranavupp12/review-platform/internal/domain/repositories"
	"github.com/Pranavupp12/review-platform/internal/infrastructure/observability"
)

// TaxonomyService reads the live taxonomy. Names are edited by admins at any time,
// so every call goes to the catalog store.
type TaxonomyService struct {
	catalog repositories.CatalogRepository
}

// NewTaxonomyService creates a new taxonomy service
func NewTaxonomyService(catalog repositories.CatalogRepository) *TaxonomyService {
	return &TaxonomyService{catalog: catalog}
}

// Load returns the current taxonomy, or the built-in list when the catalog cannot be read
func (s *TaxonomyService) Load(ctx context.Context) *entities.Taxonomy {
	logger := observability.LoggerFromContext(ctx)

	categories, err := s.catalog.ListCategoryNames(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to load categories, using static taxonomy")
		return entities.DefaultTaxonomy()
	}
	subCategories, err := s.catalog.ListSubCategoryNames(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to load sub-categories, using static taxonomy")
		return entities.DefaultTaxonomy()
	}

	return &entities.Taxonomy{
		CategoryNames:    categories,
		SubCategoryNames: subCategories,
	}
}
