package storage

import (
	"context"
	"errors"

	v1 "github.com/windrow-lab/windrow/internal/api/v1"
)

// ErrDuplicate is returned when a row with the same (dataset, id) already exists.
var ErrDuplicate = errors.New("row already exists")

// RowStore defines the interface for storing and retrieving dataset rows.
type RowStore interface {
	// SaveRow persists a row and populates its IngestSeq.
	// Returns ErrDuplicate if a row with the same (dataset, id) exists.
	SaveRow(ctx context.Context, row *v1.Row) error

	// RetrieveRowsAfterCursor fetches a dataset's rows with ingest_seq > cursor
	// in strict total order (ingest_seq ASC). This is the engine's read
	// path; strict ordering prevents batch boundary data loss.
	// cursor=0 means "from the beginning".
	RetrieveRowsAfterCursor(ctx context.Context, dataset string, cursor int64, limit int) ([]*v1.Row, error)

	// RetrieveContextRows fetches the last lookback rows with
	// ingest_seq <= cursor, returned in ingest_seq ASC order. The engine
	// prepends them so windows reaching back across a batch boundary see
	// their full preceding context.
	RetrieveContextRows(ctx context.Context, dataset string, cursor int64, lookback int) ([]*v1.Row, error)

	// ListRecentRows fetches a dataset's most recent rows in ingest_seq
	// DESC order. Serves the inspection API only.
	ListRecentRows(ctx context.Context, dataset string, limit int) ([]*v1.Row, error)
}
