package engine

import (
	"context"
	"time"

	"github.com/windrow-lab/windrow/internal/core/column"
)

// Result is one computed output slot: the rolling value of a job at one
// row of its dataset. Null windows (below min_periods) persist as
// results too, with Valid false; a stored null is an answer, not a gap.
type Result struct {
	JobName     string
	Seq         int64     // ingest_seq of the row this output belongs to
	OccurredAt  time.Time // the row's occurrence timestamp
	PartitionID int
	DType       column.DType  // output element type of the job's plan
	Value       column.Scalar // meaningful only when Valid
	Valid       bool
	Fingerprint string // job fingerprint for staleness detection at query time
}

// ResultStore is the interface for durable result persistence.
// The batch runner flushes computed slots through this interface.
//
// Contract: Flush and checkpoint write are atomically linked in a single
// database transaction. This prevents the crash scenario where results
// land but the checkpoint does not, which would double-write on replay.
//
// Checkpoint Invariant: "Checkpoint cursor N means: results exist for
// every computable row up to ingest_seq N, and none after."
//
// Checkpoints are tracked per job so each job advances independently.
type ResultStore interface {
	// Flush upserts the batch's results and writes the job-scoped
	// checkpoint atomically. cursor is the last ingest_seq whose result
	// is included in this batch.
	Flush(ctx context.Context, results []Result, cursor int64, jobName string) error

	// ReadCheckpoint returns the job-scoped checkpoint cursor.
	// Returns 0 if no checkpoint exists yet (meaning "start from the beginning").
	ReadCheckpoint(ctx context.Context, jobName string) (int64, error)

	// QueryResults fetches results for a job with Seq > fromSeq, ordered
	// by Seq ASC, at most limit rows. Used by the results API.
	QueryResults(ctx context.Context, jobName string, fromSeq int64, limit int) ([]Result, error)
}
