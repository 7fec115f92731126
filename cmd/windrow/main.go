package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	corecfg "github.com/windrow-lab/windrow/internal/core/config"
	"github.com/windrow-lab/windrow/internal/core/storage/postgres"
	"github.com/windrow-lab/windrow/internal/engine"
	"github.com/windrow-lab/windrow/internal/ingestion"
	"github.com/windrow-lab/windrow/internal/migrations"
	"github.com/windrow-lab/windrow/internal/preview"
	"github.com/windrow-lab/windrow/internal/results"
	"github.com/windrow-lab/windrow/internal/schema"
	schemaapi "github.com/windrow-lab/windrow/internal/schema/api"
	"github.com/windrow-lab/windrow/internal/schema/formats/protobuf"
	"github.com/windrow-lab/windrow/internal/schema/formats/yaml"
	schemaStorage "github.com/windrow-lab/windrow/internal/schema/storage"
	"github.com/windrow-lab/windrow/internal/server"
)

func main() {
	configPath := flag.String("config", "windrow.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration (includes loading + structural validation of job files)
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config", "config", cfg)

	interval, err := time.ParseDuration(cfg.Engine.Interval)
	if err != nil {
		slog.Error("Invalid engine interval", "value", cfg.Engine.Interval, "error", err)
		os.Exit(1)
	}

	// 2. Initialize Storage (PostgreSQL)
	dbAdapter, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer dbAdapter.Close()

	// 2.1. Run Database Migrations
	if err := migrations.RunMigrations(dbAdapter.DB(), cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	// 3. Initialize Dataset Registry
	var datasetRepo schema.Repository
	if cfg.Datasets.SourceType == "filesystem" {
		datasetRepo = schemaStorage.NewFileSystemRepository(cfg.Datasets.Path)
	} else {
		slog.Error("Unsupported datasets source type", "type", cfg.Datasets.SourceType)
		os.Exit(1)
	}

	registry := schema.NewRegistry(datasetRepo)

	formatRegistry := schema.NewFormatRegistry()
	formatRegistry.RegisterFormat(schema.FormatProtobuf, protobuf.NewCompiler(), protobuf.NewValidator())
	formatRegistry.RegisterFormat(schema.FormatYaml, yaml.NewCompiler(), yaml.NewValidator())

	validator := schema.NewValidator(formatRegistry)

	// 4. Compile rolling jobs against dataset schemas. This is where the
	// operator/dtype eligibility gate runs: an unsupported pairing aborts
	// startup before a single row is read.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	resolver := schema.NewTypeResolver(registry, validator)
	compiledJobs, err := engine.CompileJobs(ctx, cfg.JobLoading.Jobs, resolver)
	if err != nil {
		slog.Error("Failed to compile rolling jobs", "error", err)
		os.Exit(1)
	}

	// 5. Initialize the slot-evaluation pool and the batch scheduler.
	runner, err := engine.NewRunner(cfg.Engine.PoolSize, cfg.Engine.ChunkSize)
	if err != nil {
		slog.Error("Failed to initialize runner pool", "error", err)
		os.Exit(1)
	}
	defer runner.Close()

	resultStore := postgres.NewResultAdapter(dbAdapter.DB())

	scheduler := engine.NewScheduler(
		interval,
		dbAdapter, // RowStore
		resultStore,
		runner,
		compiledJobs,
		engine.BatchParameter{BatchSize: cfg.Engine.BatchSize},
	)

	slog.Info("Rolling engine initialized",
		"interval", interval,
		"enabled", cfg.Engine.Enabled,
		"jobs", len(compiledJobs),
		"batch_size", cfg.Engine.BatchSize,
		"pool_size", cfg.Engine.PoolSize,
		"chunk_size", cfg.Engine.ChunkSize,
	)

	// 6. Initialize HTTP services
	ingestionSvc := ingestion.NewService(registry, validator, dbAdapter, cfg.Server.MaxBodySizeMB)
	resultsSvc := results.NewService(resultStore, compiledJobs)
	previewSvc := preview.NewService()
	datasetAPI := schemaapi.NewService(registry, validator)

	// 7. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), dbAdapter.DB(), cfg.Server.Mode)
	ingestionSvc.RegisterRoutes(srv.Engine)
	resultsSvc.RegisterRoutes(srv.Engine)
	previewSvc.RegisterRoutes(srv.Engine)
	datasetAPI.RegisterRoutes(srv.Engine)

	// 8. Start Services
	if cfg.Engine.Enabled {
		go func() {
			if err := scheduler.Start(ctx); err != nil {
				slog.Error("Scheduler stopped with error", "error", err)
			}
		}()
	} else {
		slog.Info("Rolling engine disabled by config")
	}

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
