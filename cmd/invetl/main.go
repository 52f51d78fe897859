// Command invetl runs the inventory and sales reconciliation once. It reads
// inventory.csv and sales.csv from the working directory (or the locations
// set in invetl.yaml / INVETL_* variables) and writes the merged dataset and
// the two summaries next to them.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"invetl/internal/config"
	"invetl/internal/infrastructure"
	"invetl/internal/operations"
	"invetl/pkg/contracts"
)

const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run(context.Background(), ".", os.Stdout))
}

// run executes one pipeline run rooted at workDir and returns the process
// exit code
func run(ctx context.Context, workDir string, stdout io.Writer) int {
	cfg, err := config.Load(workDir)
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", slog.String("error", err.Error()))
		return 1
	}
	defer infrastructure.CloseLogFile()

	providers, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		logger.Error("Failed to initialize telemetry", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	tracer, err := operations.NewOperationTracer(providers.Tracer, providers.Meter)
	if err != nil {
		logger.Error("Failed to create pipeline instruments", slog.String("error", err.Error()))
		return 1
	}

	ctx = infrastructure.EnsureRunID(ctx)
	logger.InfoContext(ctx, "Starting run",
		slog.String("version", config.AppVersion),
		slog.String("commit", contracts.GitCommit),
		slog.String("build_time", contracts.BuildTime),
		slog.String("input_dir", cfg.Input.Dir),
		slog.String("output_dir", cfg.Output.Dir))

	registry, err := operations.NewPipelineRegistry(operations.PipelineDeps{
		Paths:     cfg.Paths(),
		Logger:    logger,
		Tracer:    tracer,
		Notice:    stdout,
		BOMPrefix: cfg.Output.BOMPrefix,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to build pipeline", slog.String("error", err.Error()))
		return 1
	}

	resp, runErr := operations.NewManager(registry, tracer, logger).Execute(ctx)

	if cfg.Telemetry.MetricsFile != "" {
		if err := providers.WriteMetrics(cfg.Telemetry.MetricsFile); err != nil {
			logger.WarnContext(ctx, "Failed to write metrics file", slog.String("error", err.Error()))
		}
	}

	if runErr != nil {
		logger.ErrorContext(ctx, "Run failed",
			slog.String("status", string(resp.Status)),
			slog.String("error", runErr.Error()))
		return 1
	}

	logger.InfoContext(ctx, "Run completed",
		slog.Duration("duration", resp.Duration),
		slog.Int("files", len(resp.Outputs)))
	return 0
}
