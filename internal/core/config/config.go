package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/windrow-lab/windrow/internal/core/rolling"
)

// Config represents the top-level application config plus resolved job-loading config.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Datasets DatasetsConfig `koanf:"datasets"`
	Engine   EngineConfig   `koanf:"engine"`

	// JobLoading is populated by Load after parsing job files.
	JobLoading JobLoadingConfig `koanf:"-"`
}

type ServerConfig struct {
	Port          int    `koanf:"port"`
	Host          string `koanf:"host"`
	MaxBodySizeMB int    `koanf:"max_body_size_mb"`
	Mode          string `koanf:"mode"` // debug | release
}

type DatabaseConfig struct {
	Type         string `koanf:"type"`
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

type DatasetsConfig struct {
	SourceType string `koanf:"source_type"`
	Path       string `koanf:"path"`
}

type EngineConfig struct {
	JobsDir     string `koanf:"jobs_dir"`
	RequireJobs bool   `koanf:"require_jobs"`
	Enabled     bool   `koanf:"enabled"`
	Interval    string `koanf:"interval"` // parsed and validated on startup
	BatchSize   int    `koanf:"batch_size"`
	PoolSize    int    `koanf:"pool_size"`  // goroutines in the slot-evaluation pool
	ChunkSize   int    `koanf:"chunk_size"` // slots per pool task
}

type JobLoadingConfig struct {
	JobsDir string
	Jobs    []rolling.JobSpec
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.MaxBodySizeMB <= 0 {
		return fmt.Errorf("server.max_body_size_mb must be > 0")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be > 0")
	}
	if c.Database.MaxIdleConns <= 0 {
		return fmt.Errorf("database.max_idle_conns must be > 0")
	}
	if c.Database.Type != "" && c.Database.Type != "postgres" {
		return fmt.Errorf("unsupported database.type %q", c.Database.Type)
	}

	if c.Datasets.SourceType != "filesystem" {
		return fmt.Errorf("unsupported datasets.source_type %q", c.Datasets.SourceType)
	}
	if strings.TrimSpace(c.Datasets.Path) == "" {
		return fmt.Errorf("datasets.path is required")
	}
	if _, err := os.Stat(c.Datasets.Path); err != nil {
		return fmt.Errorf("datasets.path %q is not accessible: %w", c.Datasets.Path, err)
	}

	if strings.TrimSpace(c.Engine.JobsDir) == "" {
		return fmt.Errorf("engine.jobs_dir is required")
	}
	interval, err := time.ParseDuration(c.Engine.Interval)
	if err != nil {
		return fmt.Errorf("invalid engine.interval %q: %w", c.Engine.Interval, err)
	}
	if interval <= 0 {
		return fmt.Errorf("engine.interval must be > 0")
	}
	if c.Engine.BatchSize <= 0 {
		return fmt.Errorf("engine.batch_size must be > 0")
	}
	if c.Engine.PoolSize <= 0 {
		return fmt.Errorf("engine.pool_size must be > 0")
	}
	if c.Engine.ChunkSize <= 0 {
		return fmt.Errorf("engine.chunk_size must be > 0")
	}

	return nil
}

// Load parses config from file + env, validates it, then loads and validates job files.
// Jobs are checked structurally here (known operator, sane window); the
// operator/dtype eligibility check needs compiled dataset schemas and runs
// when the jobs are compiled on startup.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":             8080,
		"server.host":             "0.0.0.0",
		"server.max_body_size_mb": 1,
		"server.mode":             "release",
		"database.type":           "postgres",
		"database.dsn":            "windrow.db",
		"database.max_open_conns": 25,
		"database.max_idle_conns": 25,
		"database.auto_migrate":   true,
		"datasets.source_type":    "filesystem",
		"datasets.path":           "./datasets",
		"engine.jobs_dir":         "./config/jobs",
		"engine.require_jobs":     true,
		"engine.enabled":          true,
		"engine.interval":         "30s",
		"engine.batch_size":       10000,
		"engine.pool_size":        8,
		"engine.chunk_size":       1024,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("WINDROW_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "WINDROW_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	repo, err := rolling.NewFileSystemJobRepository(cfg.Engine.JobsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load rolling jobs: %w", err)
	}
	jobs := repo.GetJobs()
	if cfg.Engine.Enabled && cfg.Engine.RequireJobs && len(jobs) == 0 {
		return nil, fmt.Errorf("no rolling jobs found in %q", cfg.Engine.JobsDir)
	}

	cfg.JobLoading = JobLoadingConfig{
		JobsDir: cfg.Engine.JobsDir,
		Jobs:    jobs,
	}

	return &cfg, nil
}
