package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectBuilder_ToSQL(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id", "name").
		From("teams").
		Where(Eq("id", "team-1"), Expr("(lower(name) = lower(?) OR lower(short_name) = lower(?))", "spurs", "spurs")).
		OrderBy("name ASC").
		Limit(2).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	want := "SELECT id, name FROM teams WHERE id = $1 AND (lower(name) = lower($2) OR lower(short_name) = lower($3)) ORDER BY name ASC LIMIT 2"
	if sql != want {
		t.Fatalf("sql:\n got=%q\nwant=%q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"team-1", "spurs", "spurs"}) {
		t.Fatalf("args: got=%v", args)
	}
}

func TestSelectBuilder_GroupBy(t *testing.T) {
	t.Parallel()

	sql, _, err := Select("team_id", "COUNT(*)").
		From("goals").
		Where(Eq("match_id", "m-1")).
		GroupBy("team_id").
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	want := "SELECT team_id, COUNT(*) FROM goals WHERE match_id = $1 GROUP BY team_id"
	if sql != want {
		t.Fatalf("sql: got=%q want=%q", sql, want)
	}
}

func TestSelectBuilder_NullAndInConditions(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id").
		From("matches").
		Where(IsNotNull("home_score"), IsNull("away_score"), In("season_id", []any{"2001-02", "2002-03"})).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	want := "SELECT id FROM matches WHERE home_score IS NOT NULL AND away_score IS NULL AND season_id IN ($1, $2)"
	if sql != want {
		t.Fatalf("sql: got=%q want=%q", sql, want)
	}
	if len(args) != 2 {
		t.Fatalf("args: got=%v", args)
	}
}

func TestSelectBuilder_EmptyInNeverMatches(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id").From("matches").Where(In("season_id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}
	if sql != "SELECT id FROM matches WHERE 1=0" {
		t.Fatalf("sql: got=%q", sql)
	}
	if len(args) != 0 {
		t.Fatalf("args: got=%v", args)
	}
}

func TestSelectBuilder_Validation(t *testing.T) {
	t.Parallel()

	if _, _, err := Select().From("teams").ToSQL(); err == nil {
		t.Fatalf("expected error for missing columns")
	}
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatalf("expected error for missing table")
	}
}

func TestInsertBuilder_ToSQL(t *testing.T) {
	t.Parallel()

	sql, args, err := InsertInto("goals").
		Columns("match_id", "player_id", "team_id", "minute").
		Values("m-1", "p-1", "t-1", 60).
		Suffix("ON CONFLICT (match_id, player_id, team_id, minute) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	want := "INSERT INTO goals (match_id, player_id, team_id, minute) VALUES ($1, $2, $3, $4) ON CONFLICT (match_id, player_id, team_id, minute) DO NOTHING"
	if sql != want {
		t.Fatalf("sql:\n got=%q\nwant=%q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"m-1", "p-1", "t-1", 60}) {
		t.Fatalf("args: got=%v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	t.Parallel()

	_, _, err := InsertInto("teams").Columns("id", "name").Values("team-1").ToSQL()
	if err == nil {
		t.Fatalf("expected error for row width mismatch")
	}
}

type insertModelRow struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Score int    `db:"score"`
	Skip  string `db:"-"`
}

func TestInsertModel(t *testing.T) {
	t.Parallel()

	sql, args, err := InsertModel("players", insertModelRow{ID: "p-1", Name: "Owen", Score: 3, Skip: "x"}, "")
	if err != nil {
		t.Fatalf("insert model: %v", err)
	}

	want := "INSERT INTO players (id, name, score) VALUES ($1, $2, $3)"
	if sql != want {
		t.Fatalf("sql: got=%q want=%q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"p-1", "Owen", 3}) {
		t.Fatalf("args: got=%v", args)
	}
}
