package memory

import (
	"context"
	"sync"

	"github.com/clubarchive/matchlinker/internal/domain/team"
	"github.com/clubarchive/matchlinker/internal/platform/textnorm"
)

type TeamRepository struct {
	mu     sync.RWMutex
	teams  []team.Team
	byName map[string][]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	byName := make(map[string][]team.Team)
	for _, t := range teams {
		byName[textnorm.Normalize(t.Name)] = append(byName[textnorm.Normalize(t.Name)], t)
		if t.Short != "" {
			byName[textnorm.Normalize(t.Short)] = append(byName[textnorm.Normalize(t.Short)], t)
		}
	}

	return &TeamRepository{teams: teams, byName: byName}
}

func (r *TeamRepository) ResolveName(_ context.Context, rawName string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	candidates := r.byName[textnorm.Normalize(rawName)]
	if len(candidates) != 1 {
		return team.Team{}, false, nil
	}

	return candidates[0], true, nil
}

func (r *TeamRepository) ListAll(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.teams))
	out = append(out, r.teams...)

	return out, nil
}
