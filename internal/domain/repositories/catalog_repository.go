package repositories

import (
	"context"

	"github.com/Pranavupp12/review-platform/internal/domain/entities"
)

// CatalogRepository reads the category taxonomy
type CatalogRepository interface {
	ListCategoryNames(ctx context.Context) ([]string, error)
	ListSubCategoryNames(ctx context.Context) ([]string, error)

	// FindCategoryByName matches a category name case-insensitively
	FindCategoryByName(ctx context.Context, name string) (*entities.Category, error)
	// FindSubCategoryByName matches a sub-category name case-insensitively
	FindSubCategoryByName(ctx context.Context, name string) (*entities.SubCategory, error)

	// SearchCategory returns the first category whose name contains term, case-insensitively
	SearchCategory(ctx context.Context, term string) (*entities.Category, error)
	// SearchSubCategory returns the first sub-category whose name contains term, case-insensitively
	SearchSubCategory(ctx context.Context, term string) (*entities.SubCategory, error)
}
