package usecase

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/clubarchive/matchlinker/internal/domain/fixture"
	"github.com/clubarchive/matchlinker/internal/domain/match"
	"github.com/clubarchive/matchlinker/internal/domain/report"
	"github.com/clubarchive/matchlinker/internal/platform/logging"
)

// ImportConfig bounds the ingestion pipeline.
type ImportConfig struct {
	Workers      int
	MaxRetries   int
	RetryBackoff time.Duration
}

func DefaultImportConfig() ImportConfig {
	return ImportConfig{Workers: 4, MaxRetries: 2, RetryBackoff: 200 * time.Millisecond}
}

// ImportService drives the batch pipeline: each worker handles one record
// end-to-end (link, attribute, persist). Records are independent of one
// another; goal-row idempotency makes re-runs safe.
type ImportService struct {
	linker      *LinkService
	attribution *AttributionService
	matchRepo   match.Repository
	cfg         ImportConfig
	logger      *logging.Logger
}

func NewImportService(
	linker *LinkService,
	attribution *AttributionService,
	matchRepo match.Repository,
	cfg ImportConfig,
	logger *logging.Logger,
) *ImportService {
	defaults := DefaultImportConfig()
	if cfg.Workers <= 0 {
		cfg.Workers = defaults.Workers
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = defaults.MaxRetries
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = defaults.RetryBackoff
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &ImportService{
		linker:      linker,
		attribution: attribution,
		matchRepo:   matchRepo,
		cfg:         cfg,
		logger:      logger,
	}
}

type recordOutcome struct {
	line        int
	linked      bool
	failed      bool
	strategy    fixture.Strategy
	attribution AttributionResult
	unlinked    *report.UnlinkedFixture
}

// Run processes a batch of parsed records. No single record failure aborts
// the batch; persistent failures are counted and logged.
func (s *ImportService) Run(ctx context.Context, records []fixture.Record) (report.ImportSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.Run")
	defer span.End()

	workerCount := s.cfg.Workers
	if workerCount > len(records) && len(records) > 0 {
		workerCount = len(records)
	}

	summary := report.ImportSummary{
		FixturesProcessed: len(records),
		WorkerCount:       workerCount,
		StrategyCounts:    make(map[string]int),
	}
	if len(records) == 0 {
		return summary, nil
	}

	outcomes := make(chan recordOutcome, len(records))

	var failedCount atomic.Int32

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return report.ImportSummary{}, crerr.Wrap(err, "create worker pool")
	}
	defer workerPool.Release()

	var workers sync.WaitGroup
	for _, rec := range records {
		rec := rec
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			outcome := s.processWithRetry(ctx, rec)
			if outcome.failed {
				failedCount.Add(1)
			}
			outcomes <- outcome
		}); err != nil {
			workers.Done()
			return report.ImportSummary{}, crerr.Wrap(err, "submit record to worker pool")
		}
	}

	workers.Wait()
	close(outcomes)

	for outcome := range outcomes {
		if outcome.failed {
			continue
		}
		summary.StrategyCounts[string(outcome.strategy)]++
		if outcome.linked {
			summary.Linked++
			summary.GoalsInserted += outcome.attribution.GoalsInserted
			summary.GoalsDuplicate += outcome.attribution.GoalsDuplicate
			summary.UnresolvedScorers += outcome.attribution.UnresolvedScorers
			summary.PlayersCreated += outcome.attribution.PlayersCreated
			continue
		}
		summary.Unlinked++
		if outcome.unlinked != nil {
			summary.UnlinkedFixtures = append(summary.UnlinkedFixtures, *outcome.unlinked)
		}
	}
	summary.Failed = int(failedCount.Load())

	sort.Slice(summary.UnlinkedFixtures, func(i, j int) bool {
		return summary.UnlinkedFixtures[i].Line < summary.UnlinkedFixtures[j].Line
	})

	s.logger.InfoContext(ctx, "import batch finished",
		"processed", summary.FixturesProcessed,
		"linked", summary.Linked,
		"unlinked", summary.Unlinked,
		"failed", summary.Failed,
		"goals_inserted", summary.GoalsInserted,
		"unresolved_scorers", summary.UnresolvedScorers,
	)
	return summary, nil
}

// processWithRetry retries transient repository failures for one record a
// bounded number of times with linear backoff, then abandons only that
// record.
func (s *ImportService) processWithRetry(ctx context.Context, rec fixture.Record) recordOutcome {
	var lastErr error
	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return recordOutcome{line: rec.Line, failed: true}
			case <-time.After(time.Duration(attempt) * s.cfg.RetryBackoff):
			}
		}

		outcome, err := s.processRecord(ctx, rec)
		if err == nil {
			return outcome
		}
		lastErr = err
		s.logger.WarnContext(ctx, "record processing failed",
			"line", rec.Line,
			"attempt", attempt+1,
			"error", err,
		)
	}

	s.logger.ErrorContext(ctx, "record abandoned after retries",
		"line", rec.Line,
		"error", crerr.Wrapf(lastErr, "line %d", rec.Line),
	)
	return recordOutcome{line: rec.Line, failed: true}
}

func (s *ImportService) processRecord(ctx context.Context, rec fixture.Record) (recordOutcome, error) {
	linkResult, err := s.linker.Link(ctx, rec)
	if err != nil {
		return recordOutcome{}, crerr.Wrap(err, "link record")
	}

	outcome := recordOutcome{
		line:     rec.Line,
		strategy: linkResult.Strategy,
	}
	if !linkResult.Linked() {
		outcome.unlinked = &report.UnlinkedFixture{
			Line:     rec.Line,
			HomeTeam: rec.HomeTeamRaw,
			AwayTeam: rec.AwayTeamRaw,
			Date:     rec.Date.Format("2006-01-02"),
		}
		return outcome, nil
	}
	outcome.linked = true

	m, ok, err := s.matchRepo.GetByID(ctx, linkResult.MatchID)
	if err != nil {
		return recordOutcome{}, crerr.Wrap(err, "load linked match")
	}
	if !ok {
		return recordOutcome{}, crerr.Wrapf(ErrNotFound, "linked match %s", linkResult.MatchID)
	}

	outcome.attribution, err = s.attribution.Attribute(ctx, m, rec)
	if err != nil {
		return recordOutcome{}, crerr.Wrap(err, "attribute goals")
	}

	return outcome, nil
}
