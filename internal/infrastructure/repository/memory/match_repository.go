package memory

import (
	"context"
	"sync"
	"time"

	"github.com/clubarchive/matchlinker/internal/domain/match"
)

const dateKeyLayout = "2006-01-02"

type MatchRepository struct {
	mu      sync.RWMutex
	matches []match.Match
	byID    map[string]match.Match
	byDate  map[string][]match.Match
	byKey   map[string]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	byID := make(map[string]match.Match, len(matches))
	byDate := make(map[string][]match.Match)
	byKey := make(map[string]match.Match, len(matches))

	for _, m := range matches {
		byID[m.ID] = m
		dateKey := m.Date.Format(dateKeyLayout)
		byDate[dateKey] = append(byDate[dateKey], m)
		byKey[matchKey(m.HomeTeamID, m.AwayTeamID, m.Date)] = m
	}

	return &MatchRepository{matches: matches, byID: byID, byDate: byDate, byKey: byKey}
}

func (r *MatchRepository) GetByTeamsAndDate(_ context.Context, homeTeamID, awayTeamID string, date time.Time) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byKey[matchKey(homeTeamID, awayTeamID, date)]
	return m, ok, nil
}

func (r *MatchRepository) ListByDate(_ context.Context, date time.Time) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := r.byDate[date.Format(dateKeyLayout)]
	out := make([]match.Match, 0, len(matches))
	out = append(out, matches...)

	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, id string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	return m, ok, nil
}

func (r *MatchRepository) ListAll(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.matches))
	out = append(out, r.matches...)

	return out, nil
}

func matchKey(homeTeamID, awayTeamID string, date time.Time) string {
	return homeTeamID + "|" + awayTeamID + "|" + date.Format(dateKeyLayout)
}
