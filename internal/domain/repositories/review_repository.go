package repositories

import (
	"context"

	"github.com/Pranavupp12/review-platform/internal/domain/entities"
)

// ReviewRepository reads review text and stores extracted aspects
type ReviewRepository interface {
	// ListWithoutAspects pages reviews that have never been processed, ordered by ID
	ListWithoutAspects(ctx context.Context, afterID string, limit int) ([]*entities.Review, error)
	SaveAspects(ctx context.Context, reviewID string, aspects []string) error
}
