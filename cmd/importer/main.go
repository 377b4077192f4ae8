package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"

	"github.com/clubarchive/matchlinker/internal/app"
	"github.com/clubarchive/matchlinker/internal/config"
	"github.com/clubarchive/matchlinker/internal/domain/report"
	"github.com/clubarchive/matchlinker/internal/infrastructure/csvfile"
	"github.com/clubarchive/matchlinker/internal/platform/logging"
)

func main() {
	var (
		inputPath = flag.String("input", "", "path to the fixture CSV file")
		year      = flag.Int("year", 0, "year applied to dates without one")
		dryRun    = flag.Bool("dry-run", false, "run against seeded in-memory stores")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	defer logger.Sync() //nolint:errcheck

	if *inputPath == "" {
		logger.Error("missing -input flag")
		flag.Usage()
		os.Exit(2)
	}
	if *year <= 0 {
		logger.Error("missing or invalid -year flag")
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, *inputPath, *year, *dryRun); err != nil {
		logger.Error("import run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *logging.Logger, inputPath string, year int, dryRun bool) error {
	var (
		pipeline *app.Pipeline
		err      error
	)
	if dryRun {
		pipeline, err = app.NewMemoryPipeline(cfg, logger)
	} else {
		pipeline, err = app.NewPostgresPipeline(cfg, logger)
	}
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}
	defer pipeline.Close() //nolint:errcheck

	reader := csvfile.NewReader(year, logger)
	readResult, err := reader.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read fixtures: %w", err)
	}

	importSummary, err := pipeline.Importer.Run(ctx, readResult.Records)
	if err != nil {
		return fmt.Errorf("import fixtures: %w", err)
	}
	importSummary.RowsRead = readResult.RowsRead
	importSummary.ParseErrors = readResult.ParseErrors

	validationSummary, corrections, coverage, err := pipeline.Validator.Run(ctx)
	if err != nil {
		return fmt.Errorf("validate matches: %w", err)
	}

	quality := report.QualityReport{
		GeneratedAt:       time.Now().UTC().Format(time.RFC3339),
		AliasTableVersion: pipeline.Aliases.Version(),
		Import:            importSummary,
		Validation:        validationSummary,
		Corrections:       corrections,
		SeasonCoverage:    coverage,
	}

	return writeReport(cfg.ReportPath, quality)
}

func writeReport(path string, quality report.QualityReport) error {
	payload, err := sonic.ConfigDefault.MarshalIndent(quality, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	payload = append(payload, '\n')

	if path == "" || path == "-" {
		_, err = os.Stdout.Write(payload)
		return err
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write report to %s: %w", path, err)
	}
	return nil
}
