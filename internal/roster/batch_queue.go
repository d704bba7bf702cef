package roster

import (
	"context"
	"sync"
	"time"

	"go.uber.org/atomic"

	"rostersync/internal/gateway"
	"rostersync/internal/models"
	"rostersync/internal/providers"
	"rostersync/internal/roster/interfaces"
	"rostersync/internal/structures"
)

// BatchQueue coalesces rapid active-toggle flips into a single batched
// commit. It owns exactly one debounce timer: every enqueue re-arms it, and
// when it fires the pending map is snapshotted and cleared atomically before
// the network call starts. An enqueue arriving while a commit is in flight
// begins a fresh debounce cycle; the two batches are never merged.
//
// Commit failures clear the batch and surface a notification — no retry.
// These are low-stakes preference mutations and a retry storm on flaky
// connectivity costs more than an occasional missed sync.
type BatchQueue struct {
	mu      sync.Mutex
	pending map[string]bool
	timer   *time.Timer

	delay    time.Duration
	client   gateway.ClientInterface
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	notifier providers.NotifierInterface

	inFlight *atomic.Int64
	wg       sync.WaitGroup
}

func NewBatchQueue(conf *structures.Config, client gateway.ClientInterface, logger providers.Logger, metrics providers.MetricsProviderInterface, notifier providers.NotifierInterface) interfaces.QueueInterface {
	return &BatchQueue{
		pending:  make(map[string]bool),
		delay:    conf.Sync.DebounceDelay,
		client:   client,
		logger:   logger,
		metrics:  metrics,
		notifier: notifier,
		inFlight: atomic.NewInt64(0),
	}
}

// Enqueue records the desired active state for a streamer, overwriting any
// pending entry for the same uuid (last write wins), and re-arms the
// debounce timer.
func (q *BatchQueue) Enqueue(streamerUuid string, isActive bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.pending[streamerUuid] = isActive
	q.metrics.SetPendingMutations(len(q.pending))

	if q.timer != nil {
		q.timer.Stop()
	}
	q.timer = time.AfterFunc(q.delay, q.fire)
}

// PendingLen returns the number of mutations waiting in the current window.
func (q *BatchQueue) PendingLen() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Flush cancels the debounce window, commits anything pending synchronously
// and waits for an in-flight timer commit to finish. Called on shutdown so
// the last window is not lost.
func (q *BatchQueue) Flush(ctx context.Context) {
	batch := q.take()
	if len(batch) > 0 {
		q.commit(ctx, batch)
	}
	q.wg.Wait()
}

// Stop cancels the timer without committing. Pending mutations stay in the
// map and go out with the next window or an explicit Flush.
func (q *BatchQueue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
}

// InFlight reports whether a commit is currently on the wire.
func (q *BatchQueue) InFlight() bool {
	return q.inFlight.Load() > 0
}

func (q *BatchQueue) fire() {
	batch := q.take()
	if len(batch) == 0 {
		return
	}

	q.wg.Add(1)
	defer q.wg.Done()
	q.commit(context.Background(), batch)
}

// take snapshots and clears the pending map and disarms the timer, all under
// one lock acquisition so no enqueue can slip between snapshot and clear.
func (q *BatchQueue) take() []models.PendingMutation {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}

	if len(q.pending) == 0 {
		return nil
	}

	batch := make([]models.PendingMutation, 0, len(q.pending))
	for uuid, isActive := range q.pending {
		batch = append(batch, models.PendingMutation{StreamerUuid: uuid, IsActive: isActive})
	}
	q.pending = make(map[string]bool)
	q.metrics.SetPendingMutations(0)

	return batch
}

func (q *BatchQueue) commit(ctx context.Context, batch []models.PendingMutation) {
	q.inFlight.Inc()
	defer q.inFlight.Dec()

	if err := q.client.CommitBatch(ctx, batch); err != nil {
		q.logger.Errorf(providers.TypeSync, "Batch commit of %d mutations failed: %s", len(batch), err)
		q.notifier.Notify(providers.NotifyError, "Failed to save tracking changes")
		q.metrics.IncBatchCommits("failure")
		return
	}

	q.logger.Infof(providers.TypeSync, "Committed %d active-state mutations", len(batch))
	q.metrics.IncBatchCommits("success")
	q.metrics.AddBatchMutations(len(batch))
}
