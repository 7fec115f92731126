package v1

import (
	"fmt"
	"time"
)

// Row is the atomic unit of a dataset: one observation in the ordered
// series the rolling windows slide over. Arrival order is the series
// order; OccurredAt is carried for reporting, not ordering.
type Row struct {
	// ID is the client-provided identifier, unique within its dataset.
	// Together with the dataset name it enforces idempotent ingestion.
	// The ingestion service assigns a UUID when the client omits it.
	ID string `json:"id"`

	// Dataset is the name of the dataset this row belongs to. Set from
	// the URL path by the ingestion service, never from the body.
	Dataset string `json:"dataset"`

	// OccurredAt is when the observation happened in the real world
	// (client-side clock). Defaults to IngestedAt when omitted.
	OccurredAt time.Time `json:"occurred_at"`

	// IngestedAt is when windrow received the row (server-side clock).
	// Set by the ingestion service, not the client.
	IngestedAt time.Time `json:"ingested_at"`

	// IngestSeq is the monotonic sequence number assigned on insert.
	// It is the position of the row in its dataset's series and the
	// engine's checkpoint currency. Set by the database (BIGSERIAL),
	// not exposed in the public API.
	IngestSeq int64 `json:"-"`

	// Data is the field payload, validated against the dataset's schema.
	// Missing or null fields become null elements in the built columns.
	Data map[string]interface{} `json:"data"`
}

// RowBatch is the ingestion request body: one or more rows for a dataset.
type RowBatch struct {
	Rows []Row `json:"rows"`
}

// Validate ensures the row has all required attributes. The ingestion
// service applies defaults (ID, OccurredAt, IngestedAt) before calling
// this, so empty values here mean the row bypassed that path.
func (r *Row) Validate() error {
	if r.Dataset == "" {
		return fmt.Errorf("dataset is required")
	}

	if r.ID == "" {
		return fmt.Errorf("id is required")
	}

	if r.OccurredAt.IsZero() {
		return fmt.Errorf("occurred_at is required")
	}

	return nil
}
