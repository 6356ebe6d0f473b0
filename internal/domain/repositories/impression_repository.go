package repositories

import (
	"context"

	"github.com/Pranavupp12/review-platform/internal/domain/entities"
)

// ImpressionRepository persists daily search impression counters
type ImpressionRepository interface {
	// IncrementBatch upserts every key (insert with 1, else +1) in a single transaction
	IncrementBatch(ctx context.Context, keys []entities.ImpressionKey) error
}
