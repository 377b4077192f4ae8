package memory

import (
	"time"

	"github.com/clubarchive/matchlinker/internal/domain/match"
	"github.com/clubarchive/matchlinker/internal/domain/player"
	"github.com/clubarchive/matchlinker/internal/domain/team"
	"github.com/clubarchive/matchlinker/internal/platform/textnorm"
)

// SeedTeams returns a small canonical team set for tests and dry runs.
func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "team-tot", Name: "Tottenham", Short: "TOT"},
		{ID: "team-ars", Name: "Arsenal", Short: "ARS"},
		{ID: "team-liv", Name: "Liverpool", Short: "LIV"},
		{ID: "team-eve", Name: "Everton", Short: "EVE"},
	}
}

// SeedMatches returns matches across two seasons with final scores.
func SeedMatches() []match.Match {
	score := func(v int) *int { return &v }
	return []match.Match{
		{
			ID:         "match-1",
			SeasonID:   "2001-02",
			HomeTeamID: "team-tot",
			AwayTeamID: "team-ars",
			Date:       time.Date(2001, time.August, 18, 0, 0, 0, 0, time.UTC),
			HomeScore:  score(1),
			AwayScore:  score(1),
		},
		{
			ID:         "match-2",
			SeasonID:   "2001-02",
			HomeTeamID: "team-liv",
			AwayTeamID: "team-eve",
			Date:       time.Date(2001, time.September, 15, 0, 0, 0, 0, time.UTC),
			HomeScore:  score(3),
			AwayScore:  score(1),
		},
	}
}

// SeedPlayers returns a few known scorers.
func SeedPlayers() []player.Player {
	names := []struct {
		id   string
		name string
	}{
		{"player-sheringham", "Teddy Sheringham"},
		{"player-henry", "Thierry Henry"},
		{"player-owen", "Michael Owen"},
	}

	out := make([]player.Player, 0, len(names))
	for _, item := range names {
		out = append(out, player.Player{
			ID:             item.id,
			Name:           item.name,
			NormalizedName: textnorm.Normalize(item.name),
		})
	}

	return out
}
