package services

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Pranavupp12/review-platform/internal/domain/entities"
	apperrors "github.com/Pranavupp12/review-platform/pkg/errors"
)

type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) FindExact(ctx context.Context, name, slug string) (*entities.CompanySummary, error) {
	args := m.Called(ctx, name, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CompanySummary), args.Error(1)
}

func (m *MockCompanyRepo) SearchByName(ctx context.Context, term string) (*entities.CompanySummary, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CompanySummary), args.Error(1)
}

func (m *MockCompanyRepo) Search(ctx context.Context, criteria entities.CompanySearchCriteria) ([]*entities.CompanySummary, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CompanySummary), args.Error(1)
}

type MockCatalogRepo struct {
	mock.Mock
}

func (m *MockCatalogRepo) ListCategoryNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCatalogRepo) ListSubCategoryNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCatalogRepo) FindCategoryByName(ctx context.Context, name string) (*entities.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Category), args.Error(1)
}

func (m *MockCatalogRepo) FindSubCategoryByName(ctx context.Context, name string) (*entities.SubCategory, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SubCategory), args.Error(1)
}

func (m *MockCatalogRepo) SearchCategory(ctx context.Context, term string) (*entities.Category, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Category), args.Error(1)
}

func (m *MockCatalogRepo) SearchSubCategory(ctx context.Context, term string) (*entities.SubCategory, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SubCategory), args.Error(1)
}

type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) ListWithoutAspects(ctx context.Context, afterID string, limit int) ([]*entities.Review, error) {
	args := m.Called(ctx, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Review), args.Error(1)
}

func (m *MockReviewRepo) SaveAspects(ctx context.Context, reviewID string, aspects []string) error {
	args := m.Called(ctx, reviewID, aspects)
	return args.Error(0)
}

type MockImpressionSink struct {
	mock.Mock
}

func (m *MockImpressionSink) Record(companyIDs []string, query, location, userRegion string, date time.Time) {
	m.Called(companyIDs, query, location, userRegion, date)
}

// fakeGenerator replays scripted answers and counts calls
type fakeGenerator struct {
	name    string
	answers []string
	err     error

	mu      sync.Mutex
	calls   int
	prompts []string
}

func (f *fakeGenerator) Name() string { return f.name }

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(f.answers) == 0 {
		return "", nil
	}
	answer := f.answers[0]
	if len(f.answers) > 1 {
		f.answers = f.answers[1:]
	}
	return answer, nil
}

func (f *fakeGenerator) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func notFound(what string) error {
	return apperrors.NewNotFoundError(what + " not found")
}
