package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/Pranavupp12/review-platform/internal/domain/entities"
	"github.com/Pranavupp12/review-platform/internal/domain/repositories"
	"github.com/Pranavupp12/review-platform/internal/infrastructure/clients/postgres"
	apperrors "github.com/Pranavupp12/review-platform/pkg/errors"
)

const impressionConflictTarget = "company_id, normalized_query, location, user_region, date"

// ImpressionAdapter implements ImpressionRepository
type ImpressionAdapter struct {
	client *postgres.Client
	db     *goqu.Database
	now    func() time.Time
}

// NewImpressionAdapter creates a new impression adapter
func NewImpressionAdapter(client *postgres.Client) repositories.ImpressionRepository {
	return &ImpressionAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
		now:    time.Now,
	}
}

// IncrementBatch upserts one counter per key inside a single transaction.
// Any failed statement rolls the whole batch back.
func (a *ImpressionAdapter) IncrementBatch(ctx context.Context, keys []entities.ImpressionKey) error {
	if len(keys) == 0 {
		return nil
	}

	tx, err := a.client.DB().BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewInternalError("failed to begin impression transaction", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := a.now().UTC()
	for _, key := range keys {
		query, args, err := a.db.Insert("search_impressions").
			Rows(goqu.Record{
				"company_id":       key.CompanyID,
				"normalized_query": key.NormalizedQuery,
				"location":         key.Location,
				"user_region":      key.UserRegion,
				"date":             entities.DayBucket(key.Date).Format("2006-01-02"),
				"impressions":      1,
				"clicks":           0,
				"created_at":       now,
				"updated_at":       now,
			}).
			OnConflict(goqu.DoUpdate(impressionConflictTarget, goqu.Record{
				"impressions": goqu.L(`"search_impressions"."impressions" + 1`),
				"updated_at":  now,
			})).
			ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build query", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewInternalError("failed to upsert impression", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit impressions", err)
	}
	return nil
}
