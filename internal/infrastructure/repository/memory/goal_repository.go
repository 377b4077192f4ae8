package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/clubarchive/matchlinker/internal/domain/goal"
)

type GoalRepository struct {
	mu    sync.RWMutex
	goals map[string]goal.Goal
}

func NewGoalRepository() *GoalRepository {
	return &GoalRepository{goals: make(map[string]goal.Goal)}
}

func (r *GoalRepository) InsertIfAbsent(_ context.Context, g goal.Goal) (bool, error) {
	if err := g.Validate(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := goalKey(g)
	if _, ok := r.goals[key]; ok {
		return false, nil
	}
	r.goals[key] = g

	return true, nil
}

func (r *GoalRepository) CountByMatchAndTeam(_ context.Context, matchID, teamID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, g := range r.goals {
		if g.MatchID == matchID && g.TeamID == teamID {
			count++
		}
	}

	return count, nil
}

func (r *GoalRepository) ListByMatch(_ context.Context, matchID string) ([]goal.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []goal.Goal
	for _, g := range r.goals {
		if g.MatchID == matchID {
			out = append(out, g)
		}
	}

	return out, nil
}

// scorerTeamIDs returns the team ids a player has scored for; the memory
// player repository derives team history from it the way the SQL join does.
func (r *GoalRepository) scorerTeamIDs(playerID string) map[string]struct{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]struct{})
	for _, g := range r.goals {
		if g.PlayerID == playerID {
			out[g.TeamID] = struct{}{}
		}
	}

	return out
}

func goalKey(g goal.Goal) string {
	return g.MatchID + "|" + g.PlayerID + "|" + g.TeamID + "|" + strconv.Itoa(g.Minute)
}
