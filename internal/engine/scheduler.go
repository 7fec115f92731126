package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/windrow-lab/windrow/internal/core/storage"
)

// Scheduler runs batch evaluation on a periodic interval.
// It is stateless: each tick independently advances every job from its
// durable checkpoint.
type Scheduler struct {
	interval    time.Duration
	rowStore    storage.RowStore
	resultStore ResultStore
	runner      *Runner
	jobs        []CompiledJob
	opts        BatchParameter
}

// NewScheduler creates a cron scheduler over one set of compiled jobs.
func NewScheduler(
	interval time.Duration,
	rowStore storage.RowStore,
	resultStore ResultStore,
	runner *Runner,
	jobs []CompiledJob,
	opts BatchParameter,
) *Scheduler {
	return &Scheduler{
		interval:    interval,
		rowStore:    rowStore,
		resultStore: resultStore,
		runner:      runner,
		jobs:        jobs,
		opts:        opts.normalized(),
	}
}

// Start begins periodic batch evaluation.
// Runs until context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("[Scheduler] Starting batch evaluation scheduler",
		"interval", s.interval,
		"jobs", len(s.jobs),
		"batch_size", s.opts.BatchSize,
	)

	// Run initial drain to catch up with any backlog
	s.drainBacklog(ctx)

	for {
		select {
		case <-ticker.C:
			// Drain all pending rows, not just one batch
			s.drainBacklog(ctx)
		case <-ctx.Done():
			slog.Info("[Scheduler] Stopping (context cancelled)")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			slog.Info("[Scheduler] Running final drain before shutdown...")
			s.drainBacklog(shutdownCtx)
			slog.Info("[Scheduler] Final drain complete")

			return nil
		}
	}
}

// drainBacklog processes pending rows in batches until every job's
// backlog is empty. This prevents unbounded staleness during burst
// ingestion.
func (s *Scheduler) drainBacklog(ctx context.Context) {
	batchCount := 0
	maxConsecutiveBatches := 100 // Safety limit to prevent infinite loop

	for batchCount < maxConsecutiveBatches {
		select {
		case <-ctx.Done():
			slog.Info("[Scheduler] Drain interrupted by context cancellation",
				"batches_processed", batchCount,
			)
			return
		default:
		}

		// Run one batch across all jobs
		rowsFetched, err := RunBatchWithOptionsReturningCount(ctx, s.rowStore, s.resultStore, s.runner, s.jobs, s.opts)
		if err != nil {
			slog.Error("[Scheduler] Batch evaluation failed",
				"error", err,
				"batch_number", batchCount+1,
			)
			return
		}

		batchCount++

		// If no job fetched a full batch, the backlog is drained
		if rowsFetched < s.opts.BatchSize {
			if batchCount > 1 {
				slog.Info("[Scheduler] Backlog drained",
					"total_batches", batchCount,
				)
			}
			return
		}

		// More rows pending, continue draining
		slog.Info("[Scheduler] Backlog detected, continuing to drain",
			"batches_so_far", batchCount,
		)
	}

	// Safety limit reached - log warning but don't error
	slog.Warn("[Scheduler] Max consecutive batches reached, pausing drain",
		"max_batches", maxConsecutiveBatches,
		"note", "Will resume on next tick",
	)
}
