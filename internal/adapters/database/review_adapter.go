package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/Pranavupp12/review-platform/internal/domain/entities"
	"github.com/Pranavupp12/review-platform/internal/domain/repositories"
	"github.com/Pranavupp12/review-platform/internal/infrastructure/clients/postgres"
	apperrors "github.com/Pranavupp12/review-platform/pkg/errors"
)

// ReviewAdapter implements ReviewRepository
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
	now    func() time.Time
}

// NewReviewAdapter creates a new review adapter
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
		now:    time.Now,
	}
}

// ListWithoutAspects pages reviews whose aspects column was never written.
// A stored empty array marks a processed review and is skipped.
func (a *ReviewAdapter) ListWithoutAspects(ctx context.Context, afterID string, limit int) ([]*entities.Review, error) {
	ds := a.db.From("reviews").
		Select("id", "company_id", "body", "created_at").
		Where(goqu.I("aspects").IsNull()).
		Order(goqu.I("id").Asc())
	if afterID != "" {
		ds = ds.Where(goqu.I("id").Gt(afterID))
	}
	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	reviews := make([]*entities.Review, 0)
	for rows.Next() {
		review := &entities.Review{}
		if err := rows.Scan(&review.ID, &review.CompanyID, &review.Body, &review.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	return reviews, nil
}

// SaveAspects stores the encoded aspect list on a review
func (a *ReviewAdapter) SaveAspects(ctx context.Context, reviewID string, aspects []string) error {
	if aspects == nil {
		aspects = []string{}
	}

	query, args, err := a.db.Update("reviews").
		Set(goqu.Record{
			"aspects":    pq.Array(aspects),
			"updated_at": a.now().UTC(),
		}).
		Where(goqu.Ex{"id": reviewID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to save review aspects", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError("review not found")
	}
	return nil
}
