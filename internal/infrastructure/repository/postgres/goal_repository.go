package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/clubarchive/matchlinker/internal/domain/goal"
	qb "github.com/clubarchive/matchlinker/internal/platform/querybuilder"
)

type GoalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

// InsertIfAbsent relies on the (match_id, player_id, team_id, minute)
// unique index so concurrent and re-run imports stay idempotent.
func (r *GoalRepository) InsertIfAbsent(ctx context.Context, g goal.Goal) (bool, error) {
	if err := g.Validate(); err != nil {
		return false, fmt.Errorf("validate goal: %w", err)
	}

	row := goalTableModel{
		MatchID:  g.MatchID,
		PlayerID: g.PlayerID,
		TeamID:   g.TeamID,
		Minute:   g.Minute,
	}
	query, args, err := qb.InsertModel("goals", row, "ON CONFLICT (match_id, player_id, team_id, minute) DO NOTHING")
	if err != nil {
		return false, fmt.Errorf("build insert goal query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("insert goal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read insert goal result: %w", err)
	}

	return affected > 0, nil
}

func (r *GoalRepository) CountByMatchAndTeam(ctx context.Context, matchID, teamID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("goals").
		Where(
			qb.Eq("match_id", matchID),
			qb.Eq("team_id", teamID),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count goals query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count goals: %w", err)
	}

	return count, nil
}

func (r *GoalRepository) ListByMatch(ctx context.Context, matchID string) ([]goal.Goal, error) {
	query, args, err := qb.Select("match_id", "player_id", "team_id", "minute").From("goals").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("team_id", "minute").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select goals by match query: %w", err)
	}

	var rows []goalTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select goals by match: %w", err)
	}

	out := make([]goal.Goal, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
