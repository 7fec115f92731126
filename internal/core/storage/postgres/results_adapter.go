package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/windrow-lab/windrow/internal/core/column"
	"github.com/windrow-lab/windrow/internal/engine"
)

const (
	querySelectCheckpointForUpdate = `
		SELECT checkpoint_cursor
		FROM rolling_checkpoints
		WHERE job_name = $1
		FOR UPDATE
	`

	queryInitCheckpointRow = `
		INSERT INTO rolling_checkpoints (job_name, checkpoint_cursor, updated_at)
		VALUES ($1, 0, $2)
		ON CONFLICT (job_name) DO NOTHING
	`

	// queryUpsertResult replaces on conflict. A slot's value is a pure
	// function of the job and the series, so a replayed batch writes the
	// same value; replace keeps stale fingerprints from surviving a job
	// definition change.
	queryUpsertResult = `
		INSERT INTO rolling_results (
			job_name, ingest_seq, occurred_at, partition_id,
			dtype, value, valid, fingerprint, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (job_name, ingest_seq)
		DO UPDATE SET
			occurred_at  = EXCLUDED.occurred_at,
			partition_id = EXCLUDED.partition_id,
			dtype        = EXCLUDED.dtype,
			value        = EXCLUDED.value,
			valid        = EXCLUDED.valid,
			fingerprint  = EXCLUDED.fingerprint,
			updated_at   = EXCLUDED.updated_at
	`

	queryUpdateCheckpoint = `
		UPDATE rolling_checkpoints
		SET checkpoint_cursor = $1, updated_at = $2
		WHERE job_name = $3
	`

	queryReadCheckpoint = `SELECT checkpoint_cursor FROM rolling_checkpoints WHERE job_name = $1`

	queryResultsAfterSeq = `
		SELECT ingest_seq, occurred_at, partition_id, dtype, value, valid, fingerprint
		FROM rolling_results
		WHERE job_name = $1
		  AND ingest_seq > $2
		ORDER BY ingest_seq ASC
		LIMIT $3
	`
)

// ResultAdapter implements engine.ResultStore using PostgreSQL.
// Result and checkpoint writes are in a single transaction — the atomicity
// contract that makes crash recovery safe.
type ResultAdapter struct {
	db *sql.DB
}

// NewResultAdapter creates a new ResultAdapter sharing the given connection.
func NewResultAdapter(db *sql.DB) *ResultAdapter {
	return &ResultAdapter{db: db}
}

// Flush upserts the batch's results and writes the job-scoped checkpoint
// cursor in one transaction. cursor is the last ingest_seq whose result is
// included in this batch.
func (a *ResultAdapter) Flush(ctx context.Context, results []engine.Result, cursor int64, jobName string) error {
	if jobName == "" {
		return fmt.Errorf("result flush: job name is required")
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("result flush: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	// Lock the job's checkpoint row first and enforce monotonic checkpoint
	// writes. This prevents stale, out-of-order flushes from overwriting
	// newer durable state.
	var durableCursor int64
	err = tx.QueryRowContext(ctx, querySelectCheckpointForUpdate, jobName).Scan(&durableCursor)
	if err == sql.ErrNoRows {
		_, err = tx.ExecContext(ctx, queryInitCheckpointRow, jobName, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("result flush: init checkpoint row: %w", err)
		}

		err = tx.QueryRowContext(ctx, querySelectCheckpointForUpdate, jobName).Scan(&durableCursor)
		if err != nil {
			return fmt.Errorf("result flush: read initialized checkpoint for update: %w", err)
		}
	}
	if err != nil {
		return fmt.Errorf("result flush: read checkpoint for update: %w", err)
	}

	if cursor <= durableCursor {
		slog.Warn("[ResultAdapter] Skipping stale/no-op flush",
			"job", jobName,
			"cursor", cursor,
			"durable_cursor", durableCursor,
			"results", len(results))
		return nil
	}

	upsertStmt, err := tx.PrepareContext(ctx, queryUpsertResult)
	if err != nil {
		return fmt.Errorf("result flush: prepare upsert: %w", err)
	}
	defer upsertStmt.Close()

	for _, res := range results {
		if res.JobName != jobName {
			return fmt.Errorf("result flush: job mismatch: expected %s, got %s at seq %d",
				jobName, res.JobName, res.Seq)
		}

		// Null slots persist with a NULL value column; a stored null is
		// an answer, not a gap.
		var value sql.NullString
		if res.Valid {
			value = sql.NullString{String: res.Value.StorageText(), Valid: true}
		}

		if _, err := upsertStmt.ExecContext(ctx,
			res.JobName,
			res.Seq,
			res.OccurredAt,
			res.PartitionID,
			string(res.DType),
			value,
			res.Valid,
			res.Fingerprint,
			time.Now().UTC(),
		); err != nil {
			return fmt.Errorf("result flush: upsert seq %d: %w", res.Seq, err)
		}
	}

	// Write the job checkpoint — same transaction as the upserts.
	result, err := tx.ExecContext(ctx, queryUpdateCheckpoint, cursor, time.Now().UTC(), jobName)
	if err != nil {
		return fmt.Errorf("result flush: write checkpoint: %w", err)
	}

	// Verify the job's row was updated
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result flush: check checkpoint write: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("result flush: checkpoint row missing (job=%s)", jobName)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("result flush: commit: %w", err)
	}

	slog.Info("[ResultAdapter] Flushed",
		"job", jobName,
		"results", len(results),
		"cursor", cursor,
	)
	return nil
}

// ReadCheckpoint returns the job-scoped checkpoint cursor.
// Returns 0 if no checkpoint exists yet (meaning "start from the beginning").
func (a *ResultAdapter) ReadCheckpoint(ctx context.Context, jobName string) (int64, error) {
	var cursor int64
	err := a.db.QueryRowContext(ctx, queryReadCheckpoint, jobName).Scan(&cursor)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read checkpoint for job %s: %w", jobName, err)
	}
	return cursor, nil
}

// QueryResults fetches results for a job with Seq > fromSeq, ordered by
// Seq ASC, at most limit rows. Used by the results API.
func (a *ResultAdapter) QueryResults(ctx context.Context, jobName string, fromSeq int64, limit int) ([]engine.Result, error) {
	rows, err := a.db.QueryContext(ctx, queryResultsAfterSeq, jobName, fromSeq, limit)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var results []engine.Result
	for rows.Next() {
		var (
			res      engine.Result
			dtypeStr string
			value    sql.NullString
		)

		if err := rows.Scan(
			&res.Seq,
			&res.OccurredAt,
			&res.PartitionID,
			&dtypeStr,
			&value,
			&res.Valid,
			&res.Fingerprint,
		); err != nil {
			return nil, fmt.Errorf("query results: scan row: %w", err)
		}

		res.JobName = jobName
		res.DType = column.DType(dtypeStr)
		if res.Valid {
			if !value.Valid {
				return nil, fmt.Errorf("query results: seq %d marked valid but value is NULL", res.Seq)
			}
			scalar, parseErr := column.ParseStorageText(res.DType, value.String)
			if parseErr != nil {
				return nil, fmt.Errorf("query results: %w", parseErr)
			}
			res.Value = scalar
		}

		results = append(results, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query results: iterate rows: %w", err)
	}

	return results, nil
}
