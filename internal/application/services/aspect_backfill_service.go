package services

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/Pranavupp12/review-platform/internal/domain/repositories"
	"github.com/Pranavupp12/review-platform/internal/infrastructure/observability"
)

// StoredAspectExtractor is the part of ReviewAspectService the backfill needs. It must
// report provider outages as errors so unanswered reviews stay pending.
type StoredAspectExtractor interface {
	ExtractStrict(ctx context.Context, reviewText string) ([]string, error)
}

// BackfillSummary reports one backfill run
type BackfillSummary struct {
	TotalProcessed int
	UpdatedCount   int
	FailureCount   int
}

// AspectBackfillService extracts aspects for stored reviews that have none yet
type AspectBackfillService struct {
	reviews     repositories.ReviewRepository
	extractor   StoredAspectExtractor
	workerCount int
	batchSize   int
}

// NewAspectBackfillService creates a new backfill service
func NewAspectBackfillService(reviews repositories.ReviewRepository, extractor StoredAspectExtractor, workers, batchSize int) *AspectBackfillService {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &AspectBackfillService{
		reviews:     reviews,
		extractor:   extractor,
		workerCount: workers,
		batchSize:   batchSize,
	}
}

// BackfillAll pages through unprocessed reviews by ID. A review whose extraction or save fails
// is counted and skipped; listing errors and cancellation stop the run.
func (s *AspectBackfillService) BackfillAll(ctx context.Context) (*BackfillSummary, error) {
	logger := observability.LoggerFromContext(ctx)
	var processed, updated, failed int64

	afterID := ""
	for {
		batch, err := s.reviews.ListWithoutAspects(ctx, afterID, s.batchSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list reviews without aspects: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.workerCount)
		for _, review := range batch {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				atomic.AddInt64(&processed, 1)

				aspects, err := s.extractor.ExtractStrict(gctx, review.Body)
				if err == nil {
					err = s.reviews.SaveAspects(gctx, review.ID, aspects)
				}
				if err != nil {
					atomic.AddInt64(&failed, 1)
					logger.Warn().Err(err).Str("review_id", review.ID).Msg("Failed to backfill review aspects")
					return nil
				}
				atomic.AddInt64(&updated, 1)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		afterID = batch[len(batch)-1].ID
		logger.Info().Str("after_id", afterID).Int64("processed", atomic.LoadInt64(&processed)).Msg("Aspect backfill progress")
		if len(batch) < s.batchSize {
			break
		}
	}

	return &BackfillSummary{
		TotalProcessed: int(processed),
		UpdatedCount:   int(updated),
		FailureCount:   int(failed),
	}, nil
}
