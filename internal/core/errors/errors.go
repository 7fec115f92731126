package errors

const (
	HttpInternalError          = "internal_error"
	HttpInvalidJsonError       = "invalid_json"
	HttpDatasetNotFoundError   = "dataset_not_found"
	HttpSchemaValidationError  = "schema_validation_failed"
	HttpDuplicateRowError      = "duplicate_row"
	HttpJobNotFoundError       = "job_not_found"
	HttpInvalidQueryError      = "invalid_query"
	HttpUnsupportedAggregation = "unsupported_aggregation"
)

// ErrorResponse is the error response body for API errors.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
