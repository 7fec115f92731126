package engine

import (
	"context"
	"fmt"

	"github.com/windrow-lab/windrow/internal/core/rolling"
)

// InMemoryJobRepository is a test helper that implements JobRepository.
type InMemoryJobRepository struct {
	jobs map[string]*rolling.JobSpec
}

// NewInMemoryJobRepository creates a new in-memory job repository for testing.
func NewInMemoryJobRepository(jobs []*rolling.JobSpec) *InMemoryJobRepository {
	repo := &InMemoryJobRepository{
		jobs: make(map[string]*rolling.JobSpec),
	}
	for _, job := range jobs {
		repo.jobs[job.Name] = job
	}
	return repo
}

func (r *InMemoryJobRepository) Get(ctx context.Context, name string) (*rolling.JobSpec, error) {
	if job, ok := r.jobs[name]; ok {
		return job, nil
	}
	return nil, fmt.Errorf("job not found: %s", name)
}

func (r *InMemoryJobRepository) List(ctx context.Context, dataset string) ([]rolling.JobSpec, error) {
	var result []rolling.JobSpec
	for _, job := range r.jobs {
		if dataset == "" || job.Dataset == dataset {
			result = append(result, *job)
		}
	}
	return result, nil
}

func (r *InMemoryJobRepository) GetJobs() []rolling.JobSpec {
	result := make([]rolling.JobSpec, 0, len(r.jobs))
	for _, job := range r.jobs {
		result = append(result, *job)
	}
	return result
}
