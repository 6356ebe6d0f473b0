package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Pranavupp12/review-platform/internal/domain/entities"
)

func TestTaxonomyService_ReadsEveryTime(t *testing.T) {
	catalog := new(MockCatalogRepo)
	catalog.On("ListCategoryNames", mock.Anything).Return([]string{"Legal"}, nil).Once()
	catalog.On("ListCategoryNames", mock.Anything).Return([]string{"Legal", "Pets"}, nil).Once()
	catalog.On("ListSubCategoryNames", mock.Anything).Return([]string{"Lawyers"}, nil)

	svc := NewTaxonomyService(catalog)

	assert.Equal(t, []string{"Legal"}, svc.Load(context.Background()).CategoryNames)
	assert.Equal(t, []string{"Legal", "Pets"}, svc.Load(context.Background()).CategoryNames)
}

func TestTaxonomyService_FallsBackToStaticList(t *testing.T) {
	catalog := new(MockCatalogRepo)
	catalog.On("ListCategoryNames", mock.Anything).Return([]string{"Legal"}, nil)
	catalog.On("ListSubCategoryNames", mock.Anything).Return(nil, errors.New("timeout"))

	got := NewTaxonomyService(catalog).Load(context.Background())

	assert.Equal(t, entities.DefaultTaxonomy(), got)
}

func TestSynonymIndex(t *testing.T) {
	idx := NewSynonymIndexFrom(map[string]string{"Lawyer": "Legal", "attorney": "Legal", "gym": "Fitness"})

	category, ok := idx.Lookup(" LAWYER ")
	assert.True(t, ok)
	assert.Equal(t, "Legal", category)

	_, ok = idx.Lookup("plumber")
	assert.False(t, ok)

	assert.Equal(t, "Fitness: gym\nLegal: attorney, lawyer\n", idx.Context())
}

func TestDefaultSynonyms_PointAtDefaultCategories(t *testing.T) {
	known := strings.Join(entities.DefaultTaxonomy().CategoryNames, "|")
	for term, category := range defaultSynonyms {
		assert.Contains(t, known, category, term)
	}
}
