package ingestion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	httperr "github.com/windrow-lab/windrow/internal/core/errors"
	"github.com/windrow-lab/windrow/internal/core/storage"
	"github.com/windrow-lab/windrow/internal/schema"

	v1 "github.com/windrow-lab/windrow/internal/api/v1"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgReadBodyFailed = "Failed to read request body"
	msgInvalidJSON    = "Invalid JSON body"
	msgPersistFailed  = "Failed to persist row"
	msgDuplicateRow   = "Row already exists"
)

const (
	defaultListLimit = 50
	maxListLimit     = 1000
)

// Per-row outcome statuses in a batch report.
const (
	StatusAccepted  = "accepted"
	StatusDuplicate = "duplicate"
	StatusInvalid   = "invalid"
)

// ingestionError carries the structured HTTP error shape from a helper back to the orchestrator.
// Helpers return this instead of writing to gin.Context directly, keeping them decoupled from HTTP.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

// RowOutcome reports the fate of one row in a batch.
type RowOutcome struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// BatchReport is the ingestion response: per-row outcomes plus totals.
type BatchReport struct {
	Dataset  string       `json:"dataset"`
	Accepted int          `json:"accepted"`
	Rejected int          `json:"rejected"`
	Rows     []RowOutcome `json:"rows"`
}

// httpStatus maps the report to a response code. Any accepted row makes
// the batch a 202; an all-duplicate batch is a replay, 409; otherwise 400.
func (r *BatchReport) httpStatus() int {
	if r.Accepted > 0 {
		return http.StatusAccepted
	}
	for _, outcome := range r.Rows {
		if outcome.Status != StatusDuplicate {
			return http.StatusBadRequest
		}
	}
	return http.StatusConflict
}

// IngestHandler handles HTTP POST requests for batch row ingestion.
// Rows are validated against the dataset's current schema and persisted
// one by one; each row gets its own outcome in the report.
func (s *Service) IngestHandler(c *gin.Context) {
	dataset := c.Param("name")

	batch, payloadSize, perr := s.parseBatch(c)
	if perr != nil {
		writeError(c, perr)
		return
	}

	ds, perr := s.resolveDataset(c.Request.Context(), dataset)
	if perr != nil {
		writeError(c, perr)
		return
	}

	slog.Info("Received row batch",
		"dataset", dataset,
		"rows", len(batch.Rows),
		"schema_version", ds.Version,
		"payload_size", payloadSize)

	report := BatchReport{Dataset: dataset}
	receivedAt := time.Now().UTC()

	for i := range batch.Rows {
		row := &batch.Rows[i]
		applyDefaults(row, dataset, receivedAt)

		if err := s.validateRow(c.Request.Context(), ds, row); err != nil {
			report.Rows = append(report.Rows, RowOutcome{ID: row.ID, Status: StatusInvalid, Error: err.Error()})
			report.Rejected++
			continue
		}

		outcome, perr := s.persistRow(c.Request.Context(), row)
		if perr != nil {
			// Mid-batch store failure. Rows persisted so far stay; the
			// (dataset, id) key makes a client retry of the whole batch safe.
			writeError(c, perr)
			return
		}

		report.Rows = append(report.Rows, outcome)
		if outcome.Status == StatusAccepted {
			report.Accepted++
		} else {
			report.Rejected++
		}
	}

	// Rows persisted to DB. The engine picks them up on its next cycle.
	c.JSON(report.httpStatus(), report)
}

// ListRowsHandler returns a dataset's most recently ingested rows, newest
// first. Inspection only; the engine reads through its own cursor path.
func (s *Service) ListRowsHandler(c *gin.Context) {
	dataset := c.Param("name")

	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxListLimit {
			writeError(c, &ingestionError{
				statusCode: http.StatusBadRequest,
				errorType:  httperr.HttpInvalidQueryError,
				message:    fmt.Sprintf("limit must be an integer between 1 and %d", maxListLimit),
			})
			return
		}
		limit = parsed
	}

	rows, err := s.store.ListRecentRows(c.Request.Context(), dataset, limit)
	if err != nil {
		slog.Error("Failed to list rows", "error", err, "dataset", dataset)
		writeError(c, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    "Failed to list rows",
		})
		return
	}

	if rows == nil {
		rows = []*v1.Row{}
	}
	c.JSON(http.StatusOK, rows)
}

// parseBatch reads the raw request body and binds it into a RowBatch.
// Returns the parsed batch and the raw payload size (used for structured logging upstream).
func (s *Service) parseBatch(c *gin.Context) (*v1.RowBatch, int, *ingestionError) {
	// Enforce maximum body size to prevent OOM attacks
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		return nil, 0, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	// Check if body exceeds maximum size
	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var batch v1.RowBatch
	if err := c.ShouldBindJSON(&batch); err != nil {
		slog.Warn("Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}

	if len(batch.Rows) == 0 {
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "batch must contain at least one row",
		}
	}

	return &batch, len(bodyBytes), nil
}

// resolveDataset looks up the dataset's latest active schema. Rows always
// validate against the latest version; pinning is not supported.
func (s *Service) resolveDataset(ctx context.Context, name string) (*schema.Dataset, *ingestionError) {
	ds, err := s.registry.Latest(ctx, name)
	if err != nil {
		slog.Warn("Dataset lookup failed for ingestion", "dataset", name, "error", err)
		return nil, &ingestionError{
			statusCode: http.StatusNotFound,
			errorType:  httperr.HttpDatasetNotFoundError,
			message:    err.Error(),
		}
	}
	return ds, nil
}

// validateRow runs envelope validation, then schema validation against the
// dataset's current schema. Returns nil when the row is admissible.
func (s *Service) validateRow(ctx context.Context, ds *schema.Dataset, row *v1.Row) error {
	if err := row.Validate(); err != nil {
		return err
	}

	if err := s.validator.ValidateRow(ctx, ds, row.Data); err != nil {
		slog.Warn("Schema validation failed for row",
			"row_id", row.ID,
			"dataset", row.Dataset,
			"schema_version", ds.Version,
			"error", err)
		return err
	}

	return nil
}

// persistRow saves the row to the backing store and reports its outcome.
// Duplicates are outcomes, not failures; anything else from the store
// aborts the batch.
func (s *Service) persistRow(ctx context.Context, row *v1.Row) (RowOutcome, *ingestionError) {
	if err := s.store.SaveRow(ctx, row); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			slog.Info("Duplicate row rejected", "row_id", row.ID, "dataset", row.Dataset)
			return RowOutcome{ID: row.ID, Status: StatusDuplicate, Error: msgDuplicateRow}, nil
		}

		slog.Error("Failed to persist row", "error", err, "row_id", row.ID, "dataset", row.Dataset)
		return RowOutcome{}, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgPersistFailed,
		}
	}

	return RowOutcome{ID: row.ID, Status: StatusAccepted}, nil
}

// applyDefaults fills the server-controlled fields. Dataset always comes
// from the URL path, IngestedAt is the receive time, and a missing ID or
// OccurredAt falls back to a generated UUID / the receive time.
func applyDefaults(row *v1.Row, dataset string, receivedAt time.Time) {
	row.Dataset = dataset
	row.IngestedAt = receivedAt
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if row.OccurredAt.IsZero() {
		row.OccurredAt = receivedAt
	}
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
