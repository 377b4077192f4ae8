package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/clubarchive/matchlinker/internal/domain/player"
	qb "github.com/clubarchive/matchlinker/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"name",
	"normalized_name",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByNormalizedName(ctx context.Context, normalized string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("normalized_name", normalized)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player by normalized name query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player by normalized name: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) ListBySubstring(ctx context.Context, normalized string) ([]player.Player, error) {
	if normalized == "" {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(
			qb.Expr("(normalized_name LIKE '%' || ? || '%' OR ? LIKE '%' || normalized_name || '%')", normalized, normalized),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by substring query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by substring: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *PlayerRepository) ListByTeamHistory(ctx context.Context, teamID string) ([]player.Player, error) {
	query, args, err := qb.Select(
		"DISTINCT p.id",
		"p.name",
		"p.normalized_name",
	).From("players p JOIN goals g ON g.player_id = p.id").
		Where(qb.Eq("g.team_id", teamID)).
		OrderBy("p.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by team history query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by team history: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

// Create inserts a player. When a concurrent import already created one
// with the same normalized name, the unique constraint fires and the
// existing row is read back and returned instead.
func (r *PlayerRepository) Create(ctx context.Context, p player.Player) (player.Player, error) {
	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("validate player: %w", err)
	}

	row := playerTableModel{
		ID:             p.ID,
		Name:           p.Name,
		NormalizedName: p.NormalizedName,
	}
	query, args, err := qb.InsertModel("players", row, "")
	if err != nil {
		return player.Player{}, fmt.Errorf("build insert player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			existing, ok, readErr := r.GetByNormalizedName(ctx, p.NormalizedName)
			if readErr != nil {
				return player.Player{}, fmt.Errorf("re-read player after conflict: %w", readErr)
			}
			if ok {
				return existing, nil
			}
		}
		return player.Player{}, fmt.Errorf("insert player: %w", err)
	}

	return p, nil
}
