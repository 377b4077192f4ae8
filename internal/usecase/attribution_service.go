package usecase

import (
	"context"
	"fmt"

	"github.com/clubarchive/matchlinker/internal/domain/fixture"
	"github.com/clubarchive/matchlinker/internal/domain/goal"
	"github.com/clubarchive/matchlinker/internal/domain/match"
	"github.com/clubarchive/matchlinker/internal/domain/player"
	"github.com/clubarchive/matchlinker/internal/platform/id"
	"github.com/clubarchive/matchlinker/internal/platform/logging"
	"github.com/clubarchive/matchlinker/internal/platform/similarity"
	"github.com/clubarchive/matchlinker/internal/platform/textnorm"
)

// AttributionResult aggregates the outcome of attributing one record.
type AttributionResult struct {
	GoalsInserted     int
	GoalsDuplicate    int
	UnresolvedScorers int
	PlayersCreated    int
}

func (r *AttributionResult) merge(other AttributionResult) {
	r.GoalsInserted += other.GoalsInserted
	r.GoalsDuplicate += other.GoalsDuplicate
	r.UnresolvedScorers += other.UnresolvedScorers
	r.PlayersCreated += other.PlayersCreated
}

// AttributionService turns a linked record's scorer/minute text into goal
// rows. One bad token never aborts the match: partial attribution is
// always preferable to none, because the validator surfaces partial
// results for follow-up.
type AttributionService struct {
	playerRepo    player.Repository
	goalRepo      goal.Repository
	idGen         id.Generator
	minSimilarity float64
	logger        *logging.Logger
}

func NewAttributionService(
	playerRepo player.Repository,
	goalRepo goal.Repository,
	idGen id.Generator,
	minSimilarity float64,
	logger *logging.Logger,
) *AttributionService {
	if minSimilarity <= 0 {
		minSimilarity = 0.6
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &AttributionService{
		playerRepo:    playerRepo,
		goalRepo:      goalRepo,
		idGen:         idGen,
		minSimilarity: minSimilarity,
		logger:        logger,
	}
}

// Attribute processes both sides of a linked record. Repository failures
// propagate so the import pipeline can retry the whole fixture; everything
// else degrades to an unresolved-scorer count.
func (s *AttributionService) Attribute(ctx context.Context, m match.Match, rec fixture.Record) (AttributionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AttributionService.Attribute")
	defer span.End()

	if m.ID == "" {
		return AttributionResult{}, fmt.Errorf("%w: match is required", ErrInvalidInput)
	}

	var result AttributionResult

	sides := []struct {
		teamID     string
		scorersRaw string
		minutesRaw string
	}{
		{m.HomeTeamID, rec.HomeScorersRaw, rec.HomeMinutesRaw},
		{m.AwayTeamID, rec.AwayScorersRaw, rec.AwayMinutesRaw},
	}
	for _, side := range sides {
		sideResult, err := s.attributeSide(ctx, m.ID, side.teamID, side.scorersRaw, side.minutesRaw)
		if err != nil {
			return AttributionResult{}, err
		}
		result.merge(sideResult)
	}

	return result, nil
}

func (s *AttributionService) attributeSide(ctx context.Context, matchID, teamID, scorersRaw, minutesRaw string) (AttributionResult, error) {
	var result AttributionResult

	scorers := fixture.SplitList(scorersRaw)
	minutes := fixture.SplitList(minutesRaw)

	pairs := len(scorers)
	if len(minutes) < pairs {
		pairs = len(minutes)
	}
	if dropped := len(scorers) - pairs; dropped > 0 {
		// The source gives no correspondence guarantee between the two
		// lists; surplus scorer tokens are reported as losses.
		result.UnresolvedScorers += dropped
		s.logger.WarnContext(ctx, "scorer/minute length mismatch",
			"match_id", matchID,
			"team_id", teamID,
			"scorers", len(scorers),
			"minutes", len(minutes),
		)
	}

	for i := 0; i < pairs; i++ {
		minute, ok := textnorm.LeadingInt(minutes[i])
		if !ok {
			result.UnresolvedScorers++
			s.logger.DebugContext(ctx, "unparseable minute token",
				"match_id", matchID,
				"token", minutes[i],
			)
			continue
		}

		resolved, created, ok, err := s.resolvePlayer(ctx, scorers[i], teamID)
		if err != nil {
			return AttributionResult{}, fmt.Errorf("resolve scorer %q: %w", scorers[i], err)
		}
		if !ok {
			result.UnresolvedScorers++
			continue
		}
		if created {
			result.PlayersCreated++
		}

		inserted, err := s.goalRepo.InsertIfAbsent(ctx, goal.Goal{
			MatchID:  matchID,
			PlayerID: resolved.ID,
			TeamID:   teamID,
			Minute:   minute,
		})
		if err != nil {
			return AttributionResult{}, fmt.Errorf("insert goal: %w", err)
		}
		if inserted {
			result.GoalsInserted++
		} else {
			result.GoalsDuplicate++
		}
	}

	return result, nil
}

// resolvePlayer walks the resolution ladder: exact normalized match, then
// substring containment, then fuzzy matching scoped to players who have
// scored for this team, and finally creating a new player. The ordering
// trades recall for precision; the expensive fuzzy path is scoped as
// tightly as possible.
func (s *AttributionService) resolvePlayer(ctx context.Context, rawName, teamID string) (player.Player, bool, bool, error) {
	normalized := textnorm.Normalize(rawName)
	if normalized == "" {
		return player.Player{}, false, false, nil
	}

	exact, found, err := s.playerRepo.GetByNormalizedName(ctx, normalized)
	if err != nil {
		return player.Player{}, false, false, fmt.Errorf("get player by normalized name: %w", err)
	}
	if found {
		return exact, false, true, nil
	}

	partial, err := s.playerRepo.ListBySubstring(ctx, normalized)
	if err != nil {
		return player.Player{}, false, false, fmt.Errorf("list players by substring: %w", err)
	}
	if len(partial) == 1 {
		return partial[0], false, true, nil
	}

	// Zero or several substring hits: fall through to the team-scoped
	// fuzzy search rather than guessing between ambiguous candidates.
	teammates, err := s.playerRepo.ListByTeamHistory(ctx, teamID)
	if err != nil {
		return player.Player{}, false, false, fmt.Errorf("list players by team history: %w", err)
	}

	var best player.Player
	bestScore := 0.0
	for _, candidate := range teammates {
		score := similarity.Ratio(rawName, candidate.Name)
		if score >= s.minSimilarity && score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	if best.ID != "" {
		s.logger.DebugContext(ctx, "scorer resolved by team-scoped fuzzy match",
			"raw", rawName,
			"player_id", best.ID,
			"score", bestScore,
		)
		return best, false, true, nil
	}

	newID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, false, false, fmt.Errorf("generate player id: %w", err)
	}
	created, err := s.playerRepo.Create(ctx, player.Player{
		ID:             newID,
		Name:           rawName,
		NormalizedName: normalized,
	})
	if err != nil {
		return player.Player{}, false, false, fmt.Errorf("create player: %w", err)
	}

	// The repository resolves concurrent creates of the same normalized
	// name to a single row; only report a creation when our ID survived.
	return created, created.ID == newID, true, nil
}
