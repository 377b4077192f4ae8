package postgres

import (
	"database/sql"
	"time"

	"github.com/clubarchive/matchlinker/internal/domain/goal"
	"github.com/clubarchive/matchlinker/internal/domain/match"
	"github.com/clubarchive/matchlinker/internal/domain/player"
	"github.com/clubarchive/matchlinker/internal/domain/team"
)

type teamTableModel struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	ShortName sql.NullString `db:"short_name"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:    m.ID,
		Name:  m.Name,
		Short: m.ShortName.String,
	}
}

type matchTableModel struct {
	ID         string        `db:"id"`
	SeasonID   string        `db:"season_id"`
	HomeTeamID string        `db:"home_team_id"`
	AwayTeamID string        `db:"away_team_id"`
	MatchDate  time.Time     `db:"match_date"`
	HomeScore  sql.NullInt64 `db:"home_score"`
	AwayScore  sql.NullInt64 `db:"away_score"`
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:         m.ID,
		SeasonID:   m.SeasonID,
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
		Date:       m.MatchDate.UTC(),
		HomeScore:  nullInt64ToIntPtr(m.HomeScore),
		AwayScore:  nullInt64ToIntPtr(m.AwayScore),
	}
}

type playerTableModel struct {
	ID             string `db:"id"`
	Name           string `db:"name"`
	NormalizedName string `db:"normalized_name"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:             m.ID,
		Name:           m.Name,
		NormalizedName: m.NormalizedName,
	}
}

type goalTableModel struct {
	MatchID  string `db:"match_id"`
	PlayerID string `db:"player_id"`
	TeamID   string `db:"team_id"`
	Minute   int    `db:"minute"`
}

func (m goalTableModel) toDomain() goal.Goal {
	return goal.Goal{
		MatchID:  m.MatchID,
		PlayerID: m.PlayerID,
		TeamID:   m.TeamID,
		Minute:   m.Minute,
	}
}

func nullInt64ToIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int64)
	return &out
}
