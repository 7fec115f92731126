package results

import (
	"time"
)

// ResultsQueryRequest represents the query parameters for fetching job results.
type ResultsQueryRequest struct {
	Job     string
	FromSeq int64
	Limit   int
}

// WindowSummary mirrors the window block of a job definition.
type WindowSummary struct {
	Preceding  int `json:"preceding"`
	Following  int `json:"following"`
	MinPeriods int `json:"min_periods"`
}

// JobSummary describes one configured rolling job.
type JobSummary struct {
	Name        string        `json:"name"`
	Dataset     string        `json:"dataset"`
	Field       string        `json:"field"`
	Operator    string        `json:"operator"`
	DType       string        `json:"dtype"`
	Window      WindowSummary `json:"window"`
	Fingerprint string        `json:"fingerprint"`
}

// ResultValue is one output slot: the rolling value at one row of the
// series. Value is null for slots below the job's min_periods. Stale marks
// slots computed under an older revision of the job definition.
type ResultValue struct {
	Seq        int64       `json:"seq"`
	OccurredAt time.Time   `json:"occurred_at"`
	Value      interface{} `json:"value"`
	Stale      bool        `json:"stale,omitempty"`
}

// ResultsQueryResponse represents the response for a job results query.
// DataThroughSeq is the job's durable checkpoint: every computable slot up
// to that ingest_seq exists, and none after.
type ResultsQueryResponse struct {
	Job            string        `json:"job"`
	Dataset        string        `json:"dataset"`
	Operator       string        `json:"operator"`
	DType          string        `json:"dtype"`
	FromSeq        int64         `json:"from_seq"`
	Limit          int           `json:"limit"`
	DataThroughSeq int64         `json:"data_through_seq"`
	Values         []ResultValue `json:"values"`
}
