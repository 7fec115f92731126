package postgres

// SQL queries for dataset row storage

const (
	// querySaveRow inserts a row with dataset-scoped idempotency.
	// Uses composite key (dataset, id) to prevent duplicate rows.
	// RETURNING clause retrieves auto-generated ingest_seq for cursor tracking.
	// ON CONFLICT DO NOTHING returns no rows (sql.ErrNoRows) for duplicates.
	querySaveRow = `
		INSERT INTO dataset_rows (
			id, dataset, occurred_at, ingested_at, data
		)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (dataset, id) DO NOTHING
		RETURNING ingest_seq
	`

	// queryRowsAfterCursor fetches a dataset's rows after a cursor (ingest_seq).
	// The engine's read path: strict total order by monotonic sequence
	// prevents batch boundary data loss.
	queryRowsAfterCursor = `
		SELECT id, dataset, occurred_at, ingested_at, data, ingest_seq
		FROM dataset_rows
		WHERE dataset = $1
		  AND ingest_seq > $2
		ORDER BY ingest_seq ASC
		LIMIT $3
	`

	// queryContextRows fetches the last N rows at or before the cursor, in
	// ascending order. The inner DESC/LIMIT takes the tail; the outer
	// SELECT restores series order for the engine.
	queryContextRows = `
		SELECT id, dataset, occurred_at, ingested_at, data, ingest_seq
		FROM (
			SELECT id, dataset, occurred_at, ingested_at, data, ingest_seq
			FROM dataset_rows
			WHERE dataset = $1
			  AND ingest_seq <= $2
			ORDER BY ingest_seq DESC
			LIMIT $3
		) tail
		ORDER BY ingest_seq ASC
	`

	// queryRecentRows fetches a dataset's newest rows for the inspection API.
	queryRecentRows = `
		SELECT id, dataset, occurred_at, ingested_at, data, ingest_seq
		FROM dataset_rows
		WHERE dataset = $1
		ORDER BY ingest_seq DESC
		LIMIT $2
	`
)
