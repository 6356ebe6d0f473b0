package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Pranavupp12/review-platform/pkg/errors"
)

func TestCatalogAdapter_ListCategoryNames(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewCatalogAdapter(client)

	mock.ExpectQuery(sqlFragments(`SELECT "name" FROM "categories"`, `ORDER BY "name" ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Health & Medical").AddRow("Legal"))

	names, err := adapter.ListCategoryNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Health & Medical", "Legal"}, names)
}

func TestCatalogAdapter_ListSubCategoryNames_Empty(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewCatalogAdapter(client)

	mock.ExpectQuery(sqlFragments(`FROM "sub_categories"`)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	names, err := adapter.ListSubCategoryNames(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestCatalogAdapter_FindCategoryByName(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewCatalogAdapter(client)

	mock.ExpectQuery(sqlFragments(`FROM "categories"`, `LOWER("name") = 'legal'`, `LIMIT 1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).AddRow("c1", "Legal", "legal"))

	category, err := adapter.FindCategoryByName(context.Background(), " Legal ")
	require.NoError(t, err)
	assert.Equal(t, "c1", category.ID)
	assert.Equal(t, "legal", category.Slug)
}

func TestCatalogAdapter_FindCategoryByName_NotFound(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewCatalogAdapter(client)

	mock.ExpectQuery(sqlFragments(`FROM "categories"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}))

	category, err := adapter.FindCategoryByName(context.Background(), "Astrology")
	assert.Nil(t, category)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestCatalogAdapter_SearchSubCategory_JoinsParentSlug(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewCatalogAdapter(client)

	mock.ExpectQuery(sqlFragments(
		`FROM "sub_categories" AS "s"`,
		`JOIN "categories" AS "c"`,
		`"s"."name" ILIKE '%dent%'`,
		`LENGTH(s.name) ASC`,
		`LIMIT 1`,
	)).WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "category_id", "slug"}).
		AddRow("s1", "Dentists", "dentists", "c2", "health-medical"))

	sub, err := adapter.SearchSubCategory(context.Background(), "dent")
	require.NoError(t, err)
	assert.Equal(t, "Dentists", sub.Name)
	assert.Equal(t, "health-medical", sub.CategorySlug)
}

func TestCatalogAdapter_QueryFailureIsInternal(t *testing.T) {
	client, mock := setupMockClient(t)
	adapter := NewCatalogAdapter(client)

	mock.ExpectQuery(sqlFragments(`FROM "categories"`)).WillReturnError(assert.AnError)

	_, err := adapter.SearchCategory(context.Background(), "legal")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
}
