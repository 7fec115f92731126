package postgres

import (
	"encoding/json"
	"fmt"

	v1 "github.com/windrow-lab/windrow/internal/api/v1"
)

// marshalRowData marshals a row's field payload to JSON for the data column.
func marshalRowData(row *v1.Row) ([]byte, error) {
	dataJSON, err := json.Marshal(row.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal row data: %w", err)
	}
	return dataJSON, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanRow scans a database row into a Row struct.
// Handles JSON unmarshalling for the data field.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanRow(row scanner) (*v1.Row, error) {
	var r v1.Row
	var dataJSON []byte

	err := row.Scan(
		&r.ID,
		&r.Dataset,
		&r.OccurredAt,
		&r.IngestedAt,
		&dataJSON,
		&r.IngestSeq,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan dataset row: %w", err)
	}

	if err := json.Unmarshal(dataJSON, &r.Data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal row data: %w", err)
	}

	return &r, nil
}
