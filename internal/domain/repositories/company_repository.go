package repositories

import (
	"context"

	"github.com/Pranavupp12/review-platform/internal/domain/entities"
)

// CompanyRepository reads companies for routing and inline search
type CompanyRepository interface {
	// FindExact matches a company by case-insensitive name or by slug
	FindExact(ctx context.Context, name, slug string) (*entities.CompanySummary, error)
	// SearchByName returns the best company whose name contains term, case-insensitively
	SearchByName(ctx context.Context, term string) (*entities.CompanySummary, error)
	Search(ctx context.Context, criteria entities.CompanySearchCriteria) ([]*entities.CompanySummary, error)
}
