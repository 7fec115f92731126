package results

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/windrow-lab/windrow/internal/core/column"
	"github.com/windrow-lab/windrow/internal/engine"
)

const (
	defaultQueryLimit = 100
	maxQueryLimit     = 1000
)

var (
	// ErrInvalidQuery marks request validation errors that should return HTTP 400.
	ErrInvalidQuery = errors.New("invalid results query")

	// ErrJobNotFound marks queries naming a job that is not configured.
	ErrJobNotFound = errors.New("job not found")
)

// Service serves the read side of the engine: configured jobs and their
// durable results. It never touches raw rows; everything it returns has
// been computed and checkpointed by a batch run.
type Service struct {
	store engine.ResultStore
	jobs  map[string]engine.CompiledJob
	order []string // job names, sorted for stable listings
}

// NewService creates a new results service over the compiled job set.
func NewService(store engine.ResultStore, jobs []engine.CompiledJob) *Service {
	jobMap := make(map[string]engine.CompiledJob, len(jobs))
	order := make([]string, 0, len(jobs))
	for _, job := range jobs {
		jobMap[job.Spec.Name] = job
		order = append(order, job.Spec.Name)
	}
	sort.Strings(order)

	return &Service{
		store: store,
		jobs:  jobMap,
		order: order,
	}
}

// ListJobs returns a summary of every configured job, sorted by name.
func (s *Service) ListJobs() []JobSummary {
	summaries := make([]JobSummary, 0, len(s.order))
	for _, name := range s.order {
		job := s.jobs[name]
		summaries = append(summaries, JobSummary{
			Name:     job.Spec.Name,
			Dataset:  job.Spec.Dataset,
			Field:    job.Spec.Field,
			Operator: string(job.Spec.Kind),
			DType:    string(job.DType),
			Window: WindowSummary{
				Preceding:  job.Spec.Bounds.Preceding,
				Following:  job.Spec.Bounds.Following,
				MinPeriods: job.Spec.Bounds.MinPeriods,
			},
			Fingerprint: job.Spec.Fingerprint,
		})
	}
	return summaries
}

// QueryResults retrieves a job's result slots with seq > FromSeq, oldest
// first, together with the checkpoint the data is durable through.
func (s *Service) QueryResults(ctx context.Context, req ResultsQueryRequest) (*ResultsQueryResponse, error) {
	req, err := s.normalizeAndValidate(req)
	if err != nil {
		return nil, err
	}

	job, ok := s.jobs[req.Job]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, req.Job)
	}

	checkpoint, err := s.store.ReadCheckpoint(ctx, req.Job)
	if err != nil {
		return nil, fmt.Errorf("read checkpoint: %w", err)
	}

	stored, err := s.store.QueryResults(ctx, req.Job, req.FromSeq, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}

	values := make([]ResultValue, 0, len(stored))
	for _, res := range stored {
		values = append(values, ResultValue{
			Seq:        res.Seq,
			OccurredAt: res.OccurredAt,
			Value:      renderValue(res),
			Stale:      res.Fingerprint != "" && res.Fingerprint != job.Spec.Fingerprint,
		})
	}

	return &ResultsQueryResponse{
		Job:            req.Job,
		Dataset:        job.Spec.Dataset,
		Operator:       string(job.Spec.Kind),
		DType:          string(job.DType),
		FromSeq:        req.FromSeq,
		Limit:          req.Limit,
		DataThroughSeq: checkpoint,
		Values:         values,
	}, nil
}

func (s *Service) normalizeAndValidate(req ResultsQueryRequest) (ResultsQueryRequest, error) {
	if req.Job == "" {
		return req, invalidQueryf("job name is required")
	}
	if req.FromSeq < 0 {
		return req, invalidQueryf("from_seq must not be negative")
	}
	if req.Limit < 0 || req.Limit > maxQueryLimit {
		return req, invalidQueryf("limit must be between 0 and %d", maxQueryLimit)
	}
	if req.Limit == 0 {
		req.Limit = defaultQueryLimit
	}
	return req, nil
}

// renderValue maps a stored result to its JSON value: a decimal for
// arithmetic outputs, an RFC3339 timestamp or plain string for the ordered
// wrappers, nil for null slots.
func renderValue(res engine.Result) interface{} {
	if !res.Valid {
		return nil
	}
	switch res.DType {
	case column.Timestamp:
		return res.Value.Time.UTC().Format(time.RFC3339Nano)
	case column.String:
		return res.Value.Str
	default:
		return res.Value.Num
	}
}

func invalidQueryf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}
