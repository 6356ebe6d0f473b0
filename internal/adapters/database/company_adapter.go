package database

import (
	"context"
	"database/sql"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/lib/pq"

	"github.com/Pranavupp12/review-platform/internal/domain/entities"
	"github.com/Pranavupp12/review-platform/internal/domain/repositories"
	"github.com/Pranavupp12/review-platform/internal/infrastructure/clients/postgres"
	apperrors "github.com/Pranavupp12/review-platform/pkg/errors"
)

const defaultCompanySearchLimit = 50

// CompanyAdapter implements CompanyRepository
type CompanyAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCompanyAdapter creates a new company adapter
func NewCompanyAdapter(client *postgres.Client) repositories.CompanyRepository {
	return &CompanyAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var companyColumns = []interface{}{
	"co.id",
	"co.slug",
	"co.name",
	"co.logo_image",
	"co.website_url",
	"co.address",
	"co.city",
	"co.country",
	"co.claimed",
	"co.rating",
	"co.review_count",
}

func (a *CompanyAdapter) baseQuery() *goqu.SelectDataset {
	return a.db.From(goqu.T("companies").As("co")).Select(companyColumns...)
}

// FindExact matches a company by case-insensitive name or by slug
func (a *CompanyAdapter) FindExact(ctx context.Context, name, slug string) (*entities.CompanySummary, error) {
	conditions := []exp.Expression{equalsFold("co.name", name)}
	if slug != "" {
		conditions = append(conditions, goqu.I("co.slug").Eq(slug))
	}

	query, args, err := a.baseQuery().
		Where(goqu.Or(conditions...)).
		Order(goqu.I("co.review_count").Desc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.getOne(ctx, query, args)
}

// SearchByName returns the shortest, most reviewed company name containing term
func (a *CompanyAdapter) SearchByName(ctx context.Context, term string) (*entities.CompanySummary, error) {
	query, args, err := a.baseQuery().
		Where(goqu.I("co.name").ILike(containsPattern(term))).
		Order(
			goqu.L("LENGTH(co.name)").Asc(),
			goqu.I("co.review_count").Desc(),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.getOne(ctx, query, args)
}

// Search runs the inline search query. Filters combine with AND; a filter
// spanning several columns matches when any of them contains the value.
func (a *CompanyAdapter) Search(ctx context.Context, criteria entities.CompanySearchCriteria) ([]*entities.CompanySummary, error) {
	ds := a.baseQuery().
		LeftJoin(goqu.T("categories").As("c"), goqu.On(goqu.Ex{"co.category_id": goqu.I("c.id")})).
		LeftJoin(goqu.T("sub_categories").As("s"), goqu.On(goqu.Ex{"co.sub_category_id": goqu.I("s.id")}))

	if keyword := strings.TrimSpace(criteria.Keyword); keyword != "" {
		pattern := containsPattern(keyword)
		ds = ds.Where(goqu.Or(
			goqu.I("co.name").ILike(pattern),
			goqu.I("co.description").ILike(pattern),
		))
	}
	if category := strings.TrimSpace(criteria.Category); category != "" {
		ds = ds.Where(goqu.I("c.name").ILike(containsPattern(category)))
	}
	if subCategory := strings.TrimSpace(criteria.SubCategory); subCategory != "" {
		ds = ds.Where(goqu.I("s.name").ILike(containsPattern(subCategory)))
	}
	if location := strings.TrimSpace(criteria.Location); location != "" {
		pattern := containsPattern(location)
		ds = ds.Where(goqu.Or(
			goqu.I("co.city").ILike(pattern),
			goqu.I("co.country").ILike(pattern),
			goqu.I("co.address").ILike(pattern),
		))
	}
	if len(criteria.Tags) > 0 {
		ds = ds.Where(goqu.L("co.keywords && ?", pq.Array(criteria.Tags)))
	}

	if criteria.SortBy == entities.SearchSortRating {
		ds = ds.Order(
			goqu.I("co.review_count").Desc(),
			goqu.I("co.rating").Desc(),
			goqu.I("co.name").Asc(),
		)
	} else {
		ds = ds.Order(goqu.I("co.name").Asc())
	}

	limit := criteria.Limit
	if limit <= 0 {
		limit = defaultCompanySearchLimit
	}

	query, args, err := ds.Limit(uint(limit)).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to search companies", err)
	}
	defer rows.Close()

	companies := make([]*entities.CompanySummary, 0)
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan company", err)
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to search companies", err)
	}
	return companies, nil
}

func (a *CompanyAdapter) getOne(ctx context.Context, query string, args []interface{}) (*entities.CompanySummary, error) {
	company, err := scanCompany(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("company not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get company", err)
	}
	return company, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCompany(row rowScanner) (*entities.CompanySummary, error) {
	var (
		company                entities.CompanySummary
		logo, website, address sql.NullString
		city, country          sql.NullString
		rating                 sql.NullFloat64
	)
	err := row.Scan(
		&company.ID,
		&company.Slug,
		&company.Name,
		&logo,
		&website,
		&address,
		&city,
		&country,
		&company.Claimed,
		&rating,
		&company.ReviewCount,
	)
	if err != nil {
		return nil, err
	}

	company.LogoImage = logo.String
	company.WebsiteURL = website.String
	company.Address = address.String
	company.City = city.String
	company.Country = country.String
	company.Rating = rating.Float64
	return &company, nil
}
