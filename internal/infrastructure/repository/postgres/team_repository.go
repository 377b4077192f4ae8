package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/clubarchive/matchlinker/internal/domain/team"
	qb "github.com/clubarchive/matchlinker/internal/platform/querybuilder"
	"github.com/clubarchive/matchlinker/internal/platform/textnorm"
)

type TeamRepository struct {
	db *sqlx.DB
}

var teamSelectColumns = []string{
	"id",
	"name",
	"short_name",
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// ResolveName compares against the precomputed normalized columns so the
// store agrees with textnorm.Normalize on punctuation, case and diacritics.
func (r *TeamRepository) ResolveName(ctx context.Context, rawName string) (team.Team, bool, error) {
	normalized := textnorm.Normalize(rawName)
	if normalized == "" {
		return team.Team{}, false, nil
	}

	query, args, err := qb.Select(teamSelectColumns...).From("teams").
		Where(
			qb.Expr("(normalized_name = ? OR normalized_short = ?)", normalized, normalized),
		).
		OrderBy("id").
		Limit(2).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build resolve team name query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return team.Team{}, false, fmt.Errorf("resolve team name: %w", err)
	}
	if len(rows) != 1 {
		// Zero hits or an ambiguous name both count as a miss.
		return team.Team{}, false, nil
	}

	return rows[0].toDomain(), true, nil
}

func (r *TeamRepository) ListAll(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("teams").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
