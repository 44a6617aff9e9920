package reconcile

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"

	"listing-manager/core/listingapi"

	"go.uber.org/zap"
)

// BatchSize is the largest batch the listing service accepts in one call.
const BatchSize = 1000

// Dispatcher sends mutation batches to the listing service.
type Dispatcher interface {
	AddDesiredListings(ctx context.Context, listings []listingapi.CreateRequest) ([]listingapi.DesiredListing, error)
	RemoveDesiredListings(ctx context.Context, listings []listingapi.DeleteRequest) error
}

// FlushResult describes one flush.
type FlushResult struct {
	// Skipped is true when another flush was still dispatching.
	Skipped   bool
	Creates   int
	Deletes   int
	CreateErr error
	DeleteErr error
}

// Err joins the dispatch errors of both batches.
func (r FlushResult) Err() error {
	return errors.Join(r.CreateErr, r.DeleteErr)
}

// Queue buffers pending creates and deletes until the next flush.
type Queue struct {
	mu      sync.Mutex
	creates []listingapi.CreateRequest
	deletes []listingapi.DeleteRequest

	busy atomic.Bool

	logger  *zap.Logger
	metrics *Metrics
}

// NewQueue creates an empty queue.
func NewQueue(logger *zap.Logger, metrics *Metrics) *Queue {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = mustMetrics()
	}
	return &Queue{logger: logger, metrics: metrics}
}

// EnqueueCreate appends creates to the tail of the create buffer.
func (q *Queue) EnqueueCreate(batch ...listingapi.CreateRequest) {
	if len(batch) == 0 {
		return
	}
	q.mu.Lock()
	q.creates = append(q.creates, batch...)
	q.observe()
	q.mu.Unlock()
}

// EnqueueDelete appends deletes to the tail of the delete buffer.
func (q *Queue) EnqueueDelete(batch ...listingapi.DeleteRequest) {
	if len(batch) == 0 {
		return
	}
	q.mu.Lock()
	q.deletes = append(q.deletes, batch...)
	q.observe()
	q.mu.Unlock()
}

// Pending returns the number of queued creates and deletes.
func (q *Queue) Pending() (creates, deletes int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.creates), len(q.deletes)
}

// PendingCreates returns a copy of the create buffer in dispatch order.
func (q *Queue) PendingCreates() []listingapi.CreateRequest {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.creates)
}

// PendingDeletes returns a copy of the delete buffer in dispatch order.
func (q *Queue) PendingDeletes() []listingapi.DeleteRequest {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.deletes)
}

// Flush pulls up to BatchSize entries from the head of each buffer and dispatches
// both batches concurrently. A failed batch goes back to the head of its buffer.
// Dispatch errors are reported in the result and never returned to enqueuers.
func (q *Queue) Flush(ctx context.Context, d Dispatcher) FlushResult {
	if !q.busy.CompareAndSwap(false, true) {
		q.metrics.Flushes.WithLabelValues(KindCreate, SkippedOutcome).Inc()
		q.metrics.Flushes.WithLabelValues(KindDelete, SkippedOutcome).Inc()
		return FlushResult{Skipped: true}
	}
	defer q.busy.Store(false)

	q.mu.Lock()
	creates := takeHead(&q.creates)
	deletes := takeHead(&q.deletes)
	q.observe()
	q.mu.Unlock()

	var (
		result = FlushResult{Creates: len(creates), Deletes: len(deletes)}
		wg     sync.WaitGroup
	)

	if len(creates) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			desired, err := d.AddDesiredListings(ctx, creates)
			if err != nil {
				result.CreateErr = err
				return
			}
			q.logger.Debug("Create batch accepted",
				zap.Int("sent", len(creates)), zap.Int("accepted", len(desired)))
		}()
	}

	if len(deletes) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result.DeleteErr = d.RemoveDesiredListings(ctx, deletes)
		}()
	}

	wg.Wait()

	q.mu.Lock()
	if result.CreateErr != nil {
		q.creates = slices.Concat(creates, q.creates)
	}
	if result.DeleteErr != nil {
		q.deletes = slices.Concat(deletes, q.deletes)
	}
	q.observe()
	q.mu.Unlock()

	q.record(KindCreate, len(creates), result.CreateErr)
	q.record(KindDelete, len(deletes), result.DeleteErr)

	return result
}

func (q *Queue) record(kind string, size int, err error) {
	if size == 0 {
		return
	}
	if err != nil {
		q.metrics.Flushes.WithLabelValues(kind, FailureOutcome).Inc()
		q.logger.Warn("Dispatch failed, batch re-queued",
			zap.String("kind", kind), zap.Int("size", size), zap.Error(err))
		return
	}
	q.metrics.Flushes.WithLabelValues(kind, SuccessOutcome).Inc()
}

// observe publishes the buffer sizes. Callers hold q.mu.
func (q *Queue) observe() {
	q.metrics.QueueDepth.WithLabelValues(KindCreate).Set(float64(len(q.creates)))
	q.metrics.QueueDepth.WithLabelValues(KindDelete).Set(float64(len(q.deletes)))
}

// takeHead removes up to BatchSize entries from the front of buf and returns them
// in a slice that does not share storage with buf.
func takeHead[T any](buf *[]T) []T {
	n := min(len(*buf), BatchSize)
	if n == 0 {
		return nil
	}
	head := slices.Clone((*buf)[:n])
	*buf = slices.Clone((*buf)[n:])
	return head
}
