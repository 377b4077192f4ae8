package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"github.com/clubarchive/matchlinker/internal/domain/goal"
	"github.com/clubarchive/matchlinker/internal/domain/match"
	"github.com/clubarchive/matchlinker/internal/domain/report"
	"github.com/clubarchive/matchlinker/internal/platform/logging"
)

// MatchValidation is the per-match outcome of the consistency pass.
type MatchValidation struct {
	MatchID           string
	SeasonID          string
	HomeGoalsRecorded int
	AwayGoalsRecorded int
	Status            string
	Correction        *report.CorrectionCandidate
}

// ValidationService cross-checks attributed goal counts against recorded
// final scores. It is read-only and safe to run at any time, including
// concurrently with ingestion (in-flight matches surface as missing or
// partial until their import completes).
type ValidationService struct {
	matchRepo match.Repository
	goalRepo  goal.Repository
	workers   int
	logger    *logging.Logger
}

func NewValidationService(
	matchRepo match.Repository,
	goalRepo goal.Repository,
	workers int,
	logger *logging.Logger,
) *ValidationService {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &ValidationService{
		matchRepo: matchRepo,
		goalRepo:  goalRepo,
		workers:   workers,
		logger:    logger,
	}
}

// Run validates every match carrying a final score and aggregates the
// results into the report structures. Correction candidates are ranked by
// proximity to perfect reconciliation, closest first.
func (s *ValidationService) Run(ctx context.Context) (report.ValidationSummary, []report.CorrectionCandidate, []report.SeasonCoverage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ValidationService.Run")
	defer span.End()

	matches, err := s.matchRepo.ListAll(ctx)
	if err != nil {
		return report.ValidationSummary{}, nil, nil, fmt.Errorf("list matches: %w", err)
	}

	scored := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if m.HasFinalScore() {
			scored = append(scored, m)
		}
	}

	workers := pool.NewWithResults[MatchValidation]().WithMaxGoroutines(s.workers)
	for _, m := range scored {
		m := m
		workers.Go(func() MatchValidation {
			validation, err := s.ValidateMatch(ctx, m)
			if err != nil {
				// A failed read leaves the match out of this run's
				// aggregates; the next run picks it up again.
				s.logger.WarnContext(ctx, "match validation failed",
					"match_id", m.ID,
					"error", err,
				)
				return MatchValidation{MatchID: m.ID}
			}
			return validation
		})
	}
	validations := workers.Wait()

	summary := report.ValidationSummary{StatusCounts: make(map[string]int)}
	var corrections []report.CorrectionCandidate
	coverageBySeason := make(map[string]*report.SeasonCoverage)

	for _, validation := range validations {
		if validation.Status == "" {
			continue
		}
		summary.MatchesChecked++
		summary.StatusCounts[validation.Status]++
		if validation.Correction != nil {
			corrections = append(corrections, *validation.Correction)
		}

		coverage, ok := coverageBySeason[validation.SeasonID]
		if !ok {
			coverage = &report.SeasonCoverage{SeasonID: validation.SeasonID}
			coverageBySeason[validation.SeasonID] = coverage
		}
		coverage.Matches++
		if validation.Status == report.StatusConsistent {
			coverage.Consistent++
		}
	}

	sort.Slice(corrections, func(i, j int) bool {
		if corrections[i].Difference != corrections[j].Difference {
			return corrections[i].Difference < corrections[j].Difference
		}
		return corrections[i].MatchID < corrections[j].MatchID
	})

	seasons := make([]report.SeasonCoverage, 0, len(coverageBySeason))
	for _, coverage := range coverageBySeason {
		if coverage.Matches > 0 {
			coverage.Coverage = float64(coverage.Consistent) / float64(coverage.Matches)
		}
		seasons = append(seasons, *coverage)
	}
	sort.Slice(seasons, func(i, j int) bool {
		return seasons[i].SeasonID < seasons[j].SeasonID
	})

	return summary, corrections, seasons, nil
}

// ValidateMatch classifies one match against its recorded score line.
func (s *ValidationService) ValidateMatch(ctx context.Context, m match.Match) (MatchValidation, error) {
	if !m.HasFinalScore() {
		return MatchValidation{}, fmt.Errorf("%w: match %s has no final score", ErrInvalidInput, m.ID)
	}

	homeRecorded, err := s.goalRepo.CountByMatchAndTeam(ctx, m.ID, m.HomeTeamID)
	if err != nil {
		return MatchValidation{}, fmt.Errorf("count home goals: %w", err)
	}
	awayRecorded, err := s.goalRepo.CountByMatchAndTeam(ctx, m.ID, m.AwayTeamID)
	if err != nil {
		return MatchValidation{}, fmt.Errorf("count away goals: %w", err)
	}

	validation := MatchValidation{
		MatchID:           m.ID,
		SeasonID:          m.SeasonID,
		HomeGoalsRecorded: homeRecorded,
		AwayGoalsRecorded: awayRecorded,
	}

	expectedHome := *m.HomeScore
	expectedAway := *m.AwayScore
	expectedTotal := expectedHome + expectedAway
	recordedTotal := homeRecorded + awayRecorded

	switch {
	case homeRecorded == expectedHome && awayRecorded == expectedAway:
		validation.Status = report.StatusConsistent
	case recordedTotal == 0:
		validation.Status = report.StatusMissing
	default:
		suggestion := report.SuggestionAttributionSkew
		validation.Status = report.StatusInconsistent
		if recordedTotal < expectedTotal {
			suggestion = report.SuggestionUnderAttributed
			validation.Status = report.StatusPartial
		} else if recordedTotal > expectedTotal {
			suggestion = report.SuggestionOverAttributed
		}

		difference := expectedTotal - recordedTotal
		if difference < 0 {
			difference = -difference
		}
		validation.Correction = &report.CorrectionCandidate{
			MatchID:           m.ID,
			SeasonID:          m.SeasonID,
			ExpectedGoalCount: expectedTotal,
			ActualGoalCount:   recordedTotal,
			Difference:        difference,
			Suggestion:        suggestion,
		}
	}

	return validation, nil
}
