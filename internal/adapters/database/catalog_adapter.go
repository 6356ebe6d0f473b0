package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/Pranavupp12/review-platform/internal/domain/entities"
	"github.com/Pranavupp12/review-platform/internal/domain/repositories"
	"github.com/Pranavupp12/review-platform/internal/infrastructure/clients/postgres"
	apperrors "github.com/Pranavupp12/review-platform/pkg/errors"
)

// CatalogAdapter implements CatalogRepository
type CatalogAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCatalogAdapter creates a new catalog adapter
func NewCatalogAdapter(client *postgres.Client) repositories.CatalogRepository {
	return &CatalogAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListCategoryNames returns every category name in alphabetical order
func (a *CatalogAdapter) ListCategoryNames(ctx context.Context) ([]string, error) {
	return a.listNames(ctx, "categories")
}

// ListSubCategoryNames returns every sub-category name in alphabetical order
func (a *CatalogAdapter) ListSubCategoryNames(ctx context.Context) ([]string, error) {
	return a.listNames(ctx, "sub_categories")
}

func (a *CatalogAdapter) listNames(ctx context.Context, table string) ([]string, error) {
	query, args, err := a.db.From(table).
		Select("name").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list "+table, err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, apperrors.NewInternalError("failed to scan name", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to list "+table, err)
	}
	return names, nil
}

// FindCategoryByName matches a category name case-insensitively
func (a *CatalogAdapter) FindCategoryByName(ctx context.Context, name string) (*entities.Category, error) {
	return a.getCategory(ctx, equalsFold("name", name), goqu.I("name").Asc())
}

// SearchCategory returns the shortest category name containing term
func (a *CatalogAdapter) SearchCategory(ctx context.Context, term string) (*entities.Category, error) {
	return a.getCategory(ctx,
		goqu.I("name").ILike(containsPattern(term)),
		goqu.L("LENGTH(name)").Asc(),
		goqu.I("name").Asc(),
	)
}

func (a *CatalogAdapter) getCategory(ctx context.Context, where exp.Expression, order ...exp.OrderedExpression) (*entities.Category, error) {
	query, args, err := a.db.From("categories").
		Select("id", "name", "slug").
		Where(where).
		Order(order...).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	category := &entities.Category{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&category.ID, &category.Name, &category.Slug)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("category not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get category", err)
	}
	return category, nil
}

// FindSubCategoryByName matches a sub-category name case-insensitively
func (a *CatalogAdapter) FindSubCategoryByName(ctx context.Context, name string) (*entities.SubCategory, error) {
	return a.getSubCategory(ctx, equalsFold("s.name", name), goqu.I("s.name").Asc())
}

// SearchSubCategory returns the shortest sub-category name containing term
func (a *CatalogAdapter) SearchSubCategory(ctx context.Context, term string) (*entities.SubCategory, error) {
	return a.getSubCategory(ctx,
		goqu.I("s.name").ILike(containsPattern(term)),
		goqu.L("LENGTH(s.name)").Asc(),
		goqu.I("s.name").Asc(),
	)
}

func (a *CatalogAdapter) getSubCategory(ctx context.Context, where exp.Expression, order ...exp.OrderedExpression) (*entities.SubCategory, error) {
	query, args, err := a.db.From(goqu.T("sub_categories").As("s")).
		Join(goqu.T("categories").As("c"), goqu.On(goqu.Ex{"s.category_id": goqu.I("c.id")})).
		Select("s.id", "s.name", "s.slug", "s.category_id", "c.slug").
		Where(where).
		Order(order...).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	sub := &entities.SubCategory{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&sub.ID,
		&sub.Name,
		&sub.Slug,
		&sub.CategoryID,
		&sub.CategorySlug,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("sub-category not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get sub-category", err)
	}
	return sub, nil
}
