package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Pranavupp12/review-platform/internal/domain/entities"
	"github.com/Pranavupp12/review-platform/internal/domain/repositories"
	"github.com/Pranavupp12/review-platform/pkg/utils"
)

// ImpressionSink accepts impression batches without blocking the caller
type ImpressionSink interface {
	Record(companyIDs []string, query, location, userRegion string, date time.Time)
}

type impressionBatch struct {
	keys []entities.ImpressionKey
}

// ImpressionRecorder writes impression counters on a fixed pool of background workers.
// Record never blocks: when the queue is full the batch is dropped. Write failures go to
// an error channel whose handler logs them; nothing is retried.
type ImpressionRecorder struct {
	repo         repositories.ImpressionRepository
	writeTimeout time.Duration
	onError      func(error)

	queue   chan impressionBatch
	errs    chan error
	workers sync.WaitGroup
	report  sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// ImpressionRecorderOption configures an ImpressionRecorder
type ImpressionRecorderOption func(*ImpressionRecorder)

// WithImpressionErrorHandler replaces the default logging error handler
func WithImpressionErrorHandler(fn func(error)) ImpressionRecorderOption {
	return func(r *ImpressionRecorder) {
		r.onError = fn
	}
}

// NewImpressionRecorder starts workers goroutines draining a queue of queueSize batches
func NewImpressionRecorder(
	repo repositories.ImpressionRepository,
	workers, queueSize int,
	writeTimeout time.Duration,
	opts ...ImpressionRecorderOption,
) *ImpressionRecorder {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}

	r := &ImpressionRecorder{
		repo:         repo,
		writeTimeout: writeTimeout,
		onError: func(err error) {
			log.Error().Err(err).Msg("Failed to record search impressions")
		},
		queue: make(chan impressionBatch, queueSize),
		errs:  make(chan error, queueSize),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.report.Add(1)
	go func() {
		defer r.report.Done()
		for err := range r.errs {
			r.onError(err)
		}
	}()

	for i := 0; i < workers; i++ {
		r.workers.Add(1)
		go func() {
			defer r.workers.Done()
			for batch := range r.queue {
				r.write(batch)
			}
		}()
	}
	return r
}

// Record queues one impression per distinct company for the (query, location, region, day) key
func (r *ImpressionRecorder) Record(companyIDs []string, query, location, userRegion string, date time.Time) {
	keys := impressionKeys(companyIDs, query, location, userRegion, date)
	if len(keys) == 0 {
		return
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		recordImpressionDropped(context.Background(), "closed")
		return
	}
	select {
	case r.queue <- impressionBatch{keys: keys}:
	default:
		recordImpressionDropped(context.Background(), "queue_full")
		log.Warn().Int("companies", len(keys)).Msg("Impression queue full, dropping batch")
	}
}

// Close stops accepting batches and waits for queued ones until ctx is done
func (r *ImpressionRecorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.workers.Wait()
		close(r.errs)
		r.report.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("impression recorder did not drain: %w", ctx.Err())
	}
}

func (r *ImpressionRecorder) write(batch impressionBatch) {
	ctx, cancel := context.WithTimeout(context.Background(), r.writeTimeout)
	defer cancel()

	if err := r.repo.IncrementBatch(ctx, batch.keys); err != nil {
		recordImpressionError(ctx)
		select {
		case r.errs <- fmt.Errorf("increment %d impression counters: %w", len(batch.keys), err):
		default:
			log.Error().Err(err).Msg("Impression error channel full")
		}
	}
}

func impressionKeys(companyIDs []string, query, location, userRegion string, date time.Time) []entities.ImpressionKey {
	normalized := utils.NormalizeQuery(query)
	day := entities.DayBucket(date)
	location = strings.TrimSpace(location)
	userRegion = strings.TrimSpace(userRegion)

	seen := make(map[string]struct{}, len(companyIDs))
	keys := make([]entities.ImpressionKey, 0, len(companyIDs))
	for _, id := range companyIDs {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		keys = append(keys, entities.ImpressionKey{
			CompanyID:       id,
			NormalizedQuery: normalized,
			Location:        location,
			UserRegion:      userRegion,
			Date:            day,
		})
	}
	return keys
}
