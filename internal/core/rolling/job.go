package rolling

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// JobSpec defines a single rolling job: one operator over one field of one
// dataset, under fixed row-count window bounds. Jobs are loaded at startup
// from YAML files and fingerprinted for staleness detection.
//
// Whether the operator can run over the field's element type is not known
// here: that check needs the compiled dataset schema and happens when the
// job is compiled into a plan, still before any rows are read.
type JobSpec struct {
	Name        string
	Dataset     string
	Field       string
	Kind        Kind
	Bounds      Bounds
	Fingerprint string // SHA-256 of the raw YAML file; computed at load time
}

// rawJob is the on-disk YAML shape.
// window.min_periods is optional and defaults to 1.
type rawJob struct {
	Name     string `yaml:"name"`
	Dataset  string `yaml:"dataset"`
	Field    string `yaml:"field"`
	Operator string `yaml:"operator"`
	Window   struct {
		Preceding  int `yaml:"preceding"`
		Following  int `yaml:"following"`
		MinPeriods int `yaml:"min_periods"`
	} `yaml:"window"`
}

// JobRepository defines the interface for loading rolling jobs.
type JobRepository interface {
	// Get returns the job with the given name, or an error if not found.
	Get(ctx context.Context, name string) (*JobSpec, error)

	// List returns all loaded jobs, optionally filtered by dataset.
	List(ctx context.Context, dataset string) ([]JobSpec, error)

	// GetJobs returns all jobs as a slice (for batch processing).
	GetJobs() []JobSpec
}

// FileSystemJobRepository loads rolling jobs from *.yaml files in a
// directory. Each file contains exactly one job at the top level. Jobs are
// loaded once at startup and cached in memory; no hot reload.
type FileSystemJobRepository struct {
	dir  string
	jobs map[string]JobSpec // keyed by Name
}

// NewFileSystemJobRepository creates a new repository and eagerly loads all
// jobs from dir. Returns an error if any job file is malformed or invalid.
func NewFileSystemJobRepository(dir string) (*FileSystemJobRepository, error) {
	repo := &FileSystemJobRepository{
		dir:  dir,
		jobs: make(map[string]JobSpec),
	}
	if err := repo.load(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *FileSystemJobRepository) load() error {
	info, err := os.Stat(r.dir)
	if os.IsNotExist(err) {
		return nil // no jobs directory is valid (zero jobs configured)
	}
	if err != nil {
		return fmt.Errorf("rolling job dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("rolling job path %q is not a directory", r.dir)
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("reading rolling job dir: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || (!strings.HasSuffix(e.Name(), ".yaml") && !strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}

		path := filepath.Join(r.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading job file %s: %w", path, err)
		}

		var raw rawJob
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parsing job file %s: %w", path, err)
		}
		if raw.Name == "" {
			continue // skip empty / comment-only files
		}

		if raw.Dataset == "" {
			return fmt.Errorf("job %q: dataset must not be empty", raw.Name)
		}
		if raw.Field == "" {
			return fmt.Errorf("job %q: field must not be empty", raw.Name)
		}

		kind, err := ParseKind(raw.Operator)
		if err != nil {
			return fmt.Errorf("job %q: %w", raw.Name, err)
		}

		bounds := Bounds{
			Preceding:  raw.Window.Preceding,
			Following:  raw.Window.Following,
			MinPeriods: raw.Window.MinPeriods,
		}
		if bounds.MinPeriods == 0 {
			bounds.MinPeriods = 1
		}
		if err := bounds.Validate(); err != nil {
			return fmt.Errorf("job %q: %w", raw.Name, err)
		}

		fingerprint := fmt.Sprintf("%x", sha256.Sum256(data))

		if _, exists := r.jobs[raw.Name]; exists {
			return fmt.Errorf("job %q: duplicate job name (check multiple YAML files)", raw.Name)
		}

		r.jobs[raw.Name] = JobSpec{
			Name:        raw.Name,
			Dataset:     raw.Dataset,
			Field:       raw.Field,
			Kind:        kind,
			Bounds:      bounds,
			Fingerprint: fingerprint,
		}
	}
	return nil
}

// Get returns the job with the given name, or an error if not found.
func (r *FileSystemJobRepository) Get(_ context.Context, name string) (*JobSpec, error) {
	job, ok := r.jobs[name]
	if !ok {
		return nil, fmt.Errorf("rolling job %q not found", name)
	}
	return &job, nil
}

// List returns all loaded jobs, optionally filtered by dataset.
func (r *FileSystemJobRepository) List(_ context.Context, dataset string) ([]JobSpec, error) {
	var out []JobSpec
	for _, job := range r.jobs {
		if dataset != "" && job.Dataset != dataset {
			continue
		}
		out = append(out, job)
	}
	return out, nil
}

// GetJobs returns all jobs as a slice (for batch processing).
func (r *FileSystemJobRepository) GetJobs() []JobSpec {
	jobs := make([]JobSpec, 0, len(r.jobs))
	for _, job := range r.jobs {
		jobs = append(jobs, job)
	}
	return jobs
}
