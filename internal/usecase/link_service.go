package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/clubarchive/matchlinker/internal/domain/alias"
	"github.com/clubarchive/matchlinker/internal/domain/fixture"
	"github.com/clubarchive/matchlinker/internal/domain/match"
	"github.com/clubarchive/matchlinker/internal/domain/team"
	"github.com/clubarchive/matchlinker/internal/platform/logging"
	"github.com/clubarchive/matchlinker/internal/platform/similarity"
)

// Cascade confidence constants. Earlier stages always report confidence at
// least as high as any later stage can reach.
const (
	confidenceExact   = 1.0
	confidenceAliased = 0.95

	// Date-tolerant confidence starts here and decays per day of offset
	// through similarity.Composite.
	dateTolerantBase    = 0.85
	dateTolerantMaxDays = 3

	// Fuzzy confidence is the winning similarity sum (max 2.0) scaled
	// onto [0, 0.8].
	fuzzyConfidenceScale = 0.4
)

// LinkConfig carries the fuzzy-stage thresholds.
type LinkConfig struct {
	// FuzzyFloor is the minimum per-team similarity for a fuzzy candidate.
	FuzzyFloor float64
	// FuzzyMargin is how far the winning similarity sum must exceed the
	// runner-up before a fuzzy link is accepted.
	FuzzyMargin float64
}

func DefaultLinkConfig() LinkConfig {
	return LinkConfig{FuzzyFloor: 0.6, FuzzyMargin: 0.1}
}

// LinkService resolves a parsed source record to zero-or-one canonical
// match through an ordered cascade of strategies with decreasing
// confidence. A stage that finds more than one candidate is treated as a
// miss and the cascade continues: a silent wrong link is strictly worse
// than an explicit miss.
type LinkService struct {
	matchRepo match.Repository
	teamRepo  team.Repository
	aliases   *alias.Table
	cfg       LinkConfig
	logger    *logging.Logger
}

func NewLinkService(
	matchRepo match.Repository,
	teamRepo team.Repository,
	aliases *alias.Table,
	cfg LinkConfig,
	logger *logging.Logger,
) *LinkService {
	if cfg.FuzzyFloor <= 0 {
		cfg.FuzzyFloor = DefaultLinkConfig().FuzzyFloor
	}
	if cfg.FuzzyMargin <= 0 {
		cfg.FuzzyMargin = DefaultLinkConfig().FuzzyMargin
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &LinkService{
		matchRepo: matchRepo,
		teamRepo:  teamRepo,
		aliases:   aliases,
		cfg:       cfg,
		logger:    logger,
	}
}

// Link runs the cascade and returns the first strategy that yields exactly
// one candidate. An unlinked record is not an error; repository failures
// are.
func (s *LinkService) Link(ctx context.Context, rec fixture.Record) (fixture.LinkResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LinkService.Link")
	defer span.End()

	if rec.HomeTeamRaw == "" || rec.AwayTeamRaw == "" {
		return fixture.LinkResult{}, fmt.Errorf("%w: team names are required", ErrInvalidInput)
	}
	if rec.Date.IsZero() {
		return fixture.LinkResult{}, fmt.Errorf("%w: record date is required", ErrInvalidInput)
	}

	strategies := []struct {
		name fixture.Strategy
		fn   func(context.Context, fixture.Record) (string, float64, error)
	}{
		{fixture.StrategyExact, s.linkExact},
		{fixture.StrategyAliased, s.linkAliased},
		{fixture.StrategyDateTolerant, s.linkDateTolerant},
		{fixture.StrategyFuzzy, s.linkFuzzy},
	}

	for _, strategy := range strategies {
		matchID, confidence, err := strategy.fn(ctx, rec)
		if err != nil {
			return fixture.LinkResult{}, fmt.Errorf("link strategy %s: %w", strategy.name, err)
		}
		if matchID == "" {
			continue
		}

		s.logger.InfoContext(ctx, "fixture linked",
			"strategy", string(strategy.name),
			"confidence", confidence,
			"match_id", matchID,
			"home", rec.HomeTeamRaw,
			"away", rec.AwayTeamRaw,
			"date", rec.Date.Format("2006-01-02"),
		)
		return fixture.LinkResult{
			MatchID:    matchID,
			Strategy:   strategy.name,
			Confidence: confidence,
		}, nil
	}

	// Logged with both raw names so unresolved patterns can be folded
	// back into the alias table.
	s.logger.WarnContext(ctx, "fixture unlinked",
		"home", rec.HomeTeamRaw,
		"away", rec.AwayTeamRaw,
		"date", rec.Date.Format("2006-01-02"),
	)
	return fixture.LinkResult{Strategy: fixture.StrategyUnlinked}, nil
}

func (s *LinkService) linkExact(ctx context.Context, rec fixture.Record) (string, float64, error) {
	matchID, err := s.lookupByNames(ctx, rec.HomeTeamRaw, rec.AwayTeamRaw, rec.Date)
	if err != nil {
		return "", 0, err
	}

	return matchID, confidenceExact, nil
}

func (s *LinkService) linkAliased(ctx context.Context, rec fixture.Record) (string, float64, error) {
	home := s.aliases.Apply(rec.HomeTeamRaw)
	away := s.aliases.Apply(rec.AwayTeamRaw)
	if home == rec.HomeTeamRaw && away == rec.AwayTeamRaw {
		// No alias registered for either side: this would repeat Exact.
		return "", 0, nil
	}

	matchID, err := s.lookupByNames(ctx, home, away, rec.Date)
	if err != nil {
		return "", 0, err
	}

	return matchID, confidenceAliased, nil
}

// linkDateTolerant retries the aliased lookup at ±1..3 days, nearest
// offset first, absorbing postponed and rescheduled fixtures. Hits on both
// sides of the same offset are ambiguous and skip to the next offset.
func (s *LinkService) linkDateTolerant(ctx context.Context, rec fixture.Record) (string, float64, error) {
	home := s.aliases.Apply(rec.HomeTeamRaw)
	away := s.aliases.Apply(rec.AwayTeamRaw)

	for offset := 1; offset <= dateTolerantMaxDays; offset++ {
		var candidates []string
		for _, days := range []int{-offset, offset} {
			matchID, err := s.lookupByNames(ctx, home, away, rec.Date.AddDate(0, 0, days))
			if err != nil {
				return "", 0, err
			}
			if matchID != "" {
				candidates = append(candidates, matchID)
			}
		}

		if len(candidates) == 1 {
			return candidates[0], similarity.Composite(dateTolerantBase, offset), nil
		}
	}

	return "", 0, nil
}

// linkFuzzy scores every match on the record's exact date by summed team
// name similarity. The winner must clear the per-team floor on both sides
// and beat the runner-up by the configured margin.
func (s *LinkService) linkFuzzy(ctx context.Context, rec fixture.Record) (string, float64, error) {
	candidates, err := s.matchRepo.ListByDate(ctx, rec.Date)
	if err != nil {
		return "", 0, fmt.Errorf("list matches by date: %w", err)
	}
	if len(candidates) == 0 {
		return "", 0, nil
	}

	teams, err := s.teamRepo.ListAll(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("list teams: %w", err)
	}
	nameByID := make(map[string]string, len(teams))
	for _, t := range teams {
		nameByID[t.ID] = t.Name
	}

	bestID := ""
	bestSum := 0.0
	runnerUpSum := 0.0
	for _, candidate := range candidates {
		simHome := similarity.Ratio(rec.HomeTeamRaw, nameByID[candidate.HomeTeamID])
		simAway := similarity.Ratio(rec.AwayTeamRaw, nameByID[candidate.AwayTeamID])
		if simHome < s.cfg.FuzzyFloor || simAway < s.cfg.FuzzyFloor {
			continue
		}

		sum := simHome + simAway
		if sum > bestSum {
			runnerUpSum = bestSum
			bestSum = sum
			bestID = candidate.ID
		} else if sum > runnerUpSum {
			runnerUpSum = sum
		}
	}

	if bestID == "" {
		return "", 0, nil
	}
	if runnerUpSum > 0 && bestSum-runnerUpSum < s.cfg.FuzzyMargin {
		// Too close to call.
		return "", 0, nil
	}

	return bestID, similarity.Clamp(bestSum * fuzzyConfidenceScale), nil
}

// lookupByNames resolves both names against canonical/short team names and
// looks up the match on the given date. Any miss along the way is an empty
// result, not an error.
func (s *LinkService) lookupByNames(ctx context.Context, homeName, awayName string, date time.Time) (string, error) {
	home, ok, err := s.teamRepo.ResolveName(ctx, homeName)
	if err != nil {
		return "", fmt.Errorf("resolve home team %q: %w", homeName, err)
	}
	if !ok {
		return "", nil
	}

	away, ok, err := s.teamRepo.ResolveName(ctx, awayName)
	if err != nil {
		return "", fmt.Errorf("resolve away team %q: %w", awayName, err)
	}
	if !ok {
		return "", nil
	}

	m, ok, err := s.matchRepo.GetByTeamsAndDate(ctx, home.ID, away.ID, date)
	if err != nil {
		return "", fmt.Errorf("get match by teams and date: %w", err)
	}
	if !ok {
		return "", nil
	}

	return m.ID, nil
}
