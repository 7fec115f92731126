package engine

import (
	"context"
	"fmt"
	"log/slog"

	v1 "github.com/windrow-lab/windrow/internal/api/v1"
	"github.com/windrow-lab/windrow/internal/core/column"
	"github.com/windrow-lab/windrow/internal/core/partition"
	"github.com/windrow-lab/windrow/internal/core/storage"
)

const defaultBatchSize = 10000

// BatchParameter controls throughput for a batch run.
type BatchParameter struct {
	BatchSize int
}

// DefaultBatchParameter returns safe defaults for cron-based processing.
func DefaultBatchParameter() BatchParameter {
	return BatchParameter{BatchSize: defaultBatchSize}
}

func (o BatchParameter) normalized() BatchParameter {
	n := o
	if n.BatchSize <= 0 {
		n.BatchSize = defaultBatchSize
	}
	return n
}

// RunBatch advances every compiled job by one batch from its checkpoint,
// with default options.
func RunBatch(
	ctx context.Context,
	rowStore storage.RowStore,
	resultStore ResultStore,
	runner *Runner,
	jobs []CompiledJob,
) error {
	_, err := RunBatchWithOptionsReturningCount(ctx, rowStore, resultStore, runner, jobs, DefaultBatchParameter())
	return err
}

// RunBatchWithOptionsReturningCount advances every compiled job by one
// batch and reports the largest row count any job fetched. The scheduler
// uses the count to decide whether backlog remains: a job that fetched a
// full batch probably has more rows waiting.
func RunBatchWithOptionsReturningCount(
	ctx context.Context,
	rowStore storage.RowStore,
	resultStore ResultStore,
	runner *Runner,
	jobs []CompiledJob,
	opts BatchParameter,
) (int, error) {
	opts = opts.normalized()

	maxFetched := 0
	for _, job := range jobs {
		fetched, err := runJobBatch(ctx, rowStore, resultStore, runner, job, opts.BatchSize)
		if err != nil {
			return maxFetched, fmt.Errorf("job %q: %w", job.Spec.Name, err)
		}
		if fetched > maxFetched {
			maxFetched = fetched
		}
	}
	return maxFetched, nil
}

// runJobBatch advances one job from its checkpoint. The fetched slice is
// context rows (already emitted, re-read for window lookback) followed by
// new rows. Only new-row slots whose trailing edge is fully fetched are
// emitted; the rest wait for future rows. The checkpoint moves to the
// last emitted row, so deferred slots are re-fetched as new next time.
func runJobBatch(
	ctx context.Context,
	rowStore storage.RowStore,
	resultStore ResultStore,
	runner *Runner,
	job CompiledJob,
	batchSize int,
) (int, error) {
	cursor, err := resultStore.ReadCheckpoint(ctx, job.Spec.Name)
	if err != nil {
		return 0, fmt.Errorf("read checkpoint: %w", err)
	}

	newRows, err := rowStore.RetrieveRowsAfterCursor(ctx, job.Spec.Dataset, cursor, batchSize)
	if err != nil {
		return 0, fmt.Errorf("query rows: %w", err)
	}
	if len(newRows) == 0 {
		slog.Debug("[BatchJob] No new rows", "job", job.Spec.Name, "cursor", cursor)
		return 0, nil
	}

	lookback := job.Spec.Bounds.Preceding - 1
	var contextRows []*v1.Row
	if cursor > 0 && lookback > 0 {
		contextRows, err = rowStore.RetrieveContextRows(ctx, job.Spec.Dataset, cursor, lookback)
		if err != nil {
			return 0, fmt.Errorf("query context rows: %w", err)
		}
	}

	all := append(contextRows, newRows...)
	emitLo := len(contextRows)
	emitHi := len(all) - job.Spec.Bounds.Following
	if emitHi <= emitLo {
		// Every new slot still waits on future rows for its trailing
		// edge. Nothing to emit, checkpoint stays put.
		slog.Debug("[BatchJob] All slots deferred",
			"job", job.Spec.Name,
			"new_rows", len(newRows),
			"following", job.Spec.Bounds.Following,
		)
		return len(newRows), nil
	}

	src, unreadable := buildFieldColumn(all, job.Spec.Field, job.DType)
	if unreadable > 0 {
		slog.Warn("[BatchJob] Unreadable field values treated as null",
			"job", job.Spec.Name,
			"field", job.Spec.Field,
			"count", unreadable,
		)
	}

	out, err := runner.Evaluate(job.Plan, src, emitLo, emitHi)
	if err != nil {
		return 0, fmt.Errorf("evaluate slots: %w", err)
	}

	results := make([]Result, 0, emitHi-emitLo)
	for i := emitLo; i < emitHi; i++ {
		row := all[i]
		res := Result{
			JobName:     job.Spec.Name,
			Seq:         row.IngestSeq,
			OccurredAt:  row.OccurredAt,
			PartitionID: partition.For(job.Spec.Dataset),
			DType:       job.Plan.OutputDType(),
			Fingerprint: job.Spec.Fingerprint,
		}
		if out.IsValid(i) {
			res.Valid = true
			res.Value = out.Scalar(i)
		}
		results = append(results, res)
	}

	newCursor := all[emitHi-1].IngestSeq
	if err := resultStore.Flush(ctx, results, newCursor, job.Spec.Name); err != nil {
		return 0, fmt.Errorf("flush results: %w", err)
	}

	slog.Info("[BatchJob] Batch complete",
		"job", job.Spec.Name,
		"rows_fetched", len(newRows),
		"slots_emitted", len(results),
		"slots_deferred", len(all)-emitHi,
		"cursor_advanced", fmt.Sprintf("%d -> %d", cursor, newCursor),
	)

	return len(newRows), nil
}

// buildFieldColumn materializes one field across the fetched rows.
// Missing and null values become nulls; so do values the builder cannot
// coerce (those are counted for the caller to log, a poison value must
// not wedge the job forever).
func buildFieldColumn(rows []*v1.Row, field string, dt column.DType) (*column.Column, int) {
	b := column.NewBuilder(dt)
	unreadable := 0
	for _, row := range rows {
		v, ok := row.Data[field]
		if !ok || v == nil {
			b.AppendNull()
			continue
		}
		if err := b.AppendValue(v); err != nil {
			b.AppendNull()
			unreadable++
		}
	}
	return b.Finish(), unreadable
}
