package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/clubarchive/matchlinker/internal/domain/player"
)

type PlayerRepository struct {
	mu           sync.RWMutex
	byNormalized map[string]player.Player
	goals        *GoalRepository
}

// NewPlayerRepository builds a player store. Team history lookups need the
// goal repository, mirroring the players-to-goals join in SQL.
func NewPlayerRepository(players []player.Player, goals *GoalRepository) *PlayerRepository {
	byNormalized := make(map[string]player.Player, len(players))
	for _, p := range players {
		byNormalized[p.NormalizedName] = p
	}

	return &PlayerRepository{byNormalized: byNormalized, goals: goals}
}

func (r *PlayerRepository) GetByNormalizedName(_ context.Context, normalized string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byNormalized[normalized]
	return p, ok, nil
}

func (r *PlayerRepository) ListBySubstring(_ context.Context, normalized string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []player.Player
	if normalized == "" {
		return out, nil
	}
	for _, p := range r.byNormalized {
		if strings.Contains(p.NormalizedName, normalized) || strings.Contains(normalized, p.NormalizedName) {
			out = append(out, p)
		}
	}

	return out, nil
}

func (r *PlayerRepository) ListByTeamHistory(_ context.Context, teamID string) ([]player.Player, error) {
	r.mu.RLock()
	players := make([]player.Player, 0, len(r.byNormalized))
	for _, p := range r.byNormalized {
		players = append(players, p)
	}
	r.mu.RUnlock()

	var out []player.Player
	for _, p := range players {
		if r.goals == nil {
			break
		}
		if _, ok := r.goals.scorerTeamIDs(p.ID)[teamID]; ok {
			out = append(out, p)
		}
	}

	return out, nil
}

// Create inserts a player unless one with the same normalized name already
// exists, in which case the existing row wins. This matches the unique
// constraint with re-read-on-conflict behavior of the SQL store.
func (r *PlayerRepository) Create(_ context.Context, p player.Player) (player.Player, error) {
	if err := p.Validate(); err != nil {
		return player.Player{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byNormalized[p.NormalizedName]; ok {
		return existing, nil
	}
	r.byNormalized[p.NormalizedName] = p

	return p, nil
}
