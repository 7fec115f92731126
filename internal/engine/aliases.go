package engine

import core "github.com/windrow-lab/windrow/internal/core/rolling"

// Re-export core rolling types for package-level compatibility.
type Aggregator = core.Aggregator
type Finalizer = core.Finalizer
type Bounds = core.Bounds
type Kind = core.Kind
type Plan = core.Plan
type JobSpec = core.JobSpec
type JobRepository = core.JobRepository
type ConfigError = core.ConfigError

var (
	KindSum                    = core.KindSum
	KindMean                   = core.KindMean
	KindMin                    = core.KindMin
	KindMax                    = core.KindMax
	KindCount                  = core.KindCount
	Kinds                      = core.Kinds
	ValidKind                  = core.ValidKind
	Supported                  = core.Supported
	SupportedKinds             = core.SupportedKinds
	NewPlan                    = core.NewPlan
	Finalize                   = core.Finalize
	NewFileSystemJobRepository = core.NewFileSystemJobRepository
	ErrUnsupportedAggregation  = core.ErrUnsupportedAggregation
	ErrDivisionByZero          = core.ErrDivisionByZero
)
