package memory

import (
	"context"
	"testing"
	"time"

	"github.com/clubarchive/matchlinker/internal/domain/goal"
	"github.com/clubarchive/matchlinker/internal/domain/player"
	"github.com/clubarchive/matchlinker/internal/domain/team"
)

func TestTeamRepository_ResolveName(t *testing.T) {
	t.Parallel()

	repo := NewTeamRepository(SeedTeams())

	resolved, ok, err := repo.ResolveName(context.Background(), "  TOTTENHAM ")
	if err != nil || !ok {
		t.Fatalf("resolve: ok=%t err=%v", ok, err)
	}
	if resolved.ID != "team-tot" {
		t.Fatalf("resolved id: got=%q want=team-tot", resolved.ID)
	}

	// Short names resolve too.
	resolved, ok, err = repo.ResolveName(context.Background(), "liv")
	if err != nil || !ok || resolved.ID != "team-liv" {
		t.Fatalf("short name resolve: got=%q ok=%t err=%v", resolved.ID, ok, err)
	}

	// Stray punctuation normalizes away in every store.
	resolved, ok, err = repo.ResolveName(context.Background(), "Tottenham.")
	if err != nil || !ok || resolved.ID != "team-tot" {
		t.Fatalf("punctuated resolve: got=%q ok=%t err=%v", resolved.ID, ok, err)
	}

	if _, ok, _ := repo.ResolveName(context.Background(), "..."); ok {
		t.Fatalf("name with no normalized content must not resolve")
	}

	if _, ok, _ := repo.ResolveName(context.Background(), "Accrington"); ok {
		t.Fatalf("unknown name must not resolve")
	}
}

func TestTeamRepository_AmbiguousNameDoesNotResolve(t *testing.T) {
	t.Parallel()

	repo := NewTeamRepository([]team.Team{
		{ID: "t-1", Name: "United"},
		{ID: "t-2", Name: "united"},
	})

	if _, ok, _ := repo.ResolveName(context.Background(), "United"); ok {
		t.Fatalf("ambiguous normalized name must not resolve")
	}
}

func TestMatchRepository_Lookups(t *testing.T) {
	t.Parallel()

	repo := NewMatchRepository(SeedMatches())
	date := time.Date(2001, time.August, 18, 0, 0, 0, 0, time.UTC)

	m, ok, err := repo.GetByTeamsAndDate(context.Background(), "team-tot", "team-ars", date)
	if err != nil || !ok || m.ID != "match-1" {
		t.Fatalf("by teams and date: got=%q ok=%t err=%v", m.ID, ok, err)
	}

	// Home/away order matters.
	if _, ok, _ := repo.GetByTeamsAndDate(context.Background(), "team-ars", "team-tot", date); ok {
		t.Fatalf("swapped sides must not match")
	}

	byDate, err := repo.ListByDate(context.Background(), date)
	if err != nil || len(byDate) != 1 {
		t.Fatalf("by date: got=%d err=%v", len(byDate), err)
	}

	all, err := repo.ListAll(context.Background())
	if err != nil || len(all) != 2 {
		t.Fatalf("list all: got=%d err=%v", len(all), err)
	}
}

func TestGoalRepository_InsertIfAbsent(t *testing.T) {
	t.Parallel()

	repo := NewGoalRepository()
	g := goal.Goal{MatchID: "m-1", PlayerID: "p-1", TeamID: "t-1", Minute: 60}

	inserted, err := repo.InsertIfAbsent(context.Background(), g)
	if err != nil || !inserted {
		t.Fatalf("first insert: inserted=%t err=%v", inserted, err)
	}
	inserted, err = repo.InsertIfAbsent(context.Background(), g)
	if err != nil || inserted {
		t.Fatalf("duplicate insert: inserted=%t err=%v", inserted, err)
	}

	// Same scorer, different minute is a distinct goal.
	g.Minute = 75
	inserted, err = repo.InsertIfAbsent(context.Background(), g)
	if err != nil || !inserted {
		t.Fatalf("distinct minute: inserted=%t err=%v", inserted, err)
	}

	count, err := repo.CountByMatchAndTeam(context.Background(), "m-1", "t-1")
	if err != nil || count != 2 {
		t.Fatalf("count: got=%d err=%v", count, err)
	}
}

func TestPlayerRepository_CreateDeduplicates(t *testing.T) {
	t.Parallel()

	repo := NewPlayerRepository(nil, NewGoalRepository())

	first, err := repo.Create(context.Background(), player.Player{ID: "p-1", Name: "Rebrov", NormalizedName: "rebrov"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := repo.Create(context.Background(), player.Player{ID: "p-2", Name: "REBROV", NormalizedName: "rebrov"})
	if err != nil {
		t.Fatalf("create duplicate: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("duplicate normalized name must return the existing row: got=%q want=%q", second.ID, first.ID)
	}
}

func TestPlayerRepository_ListByTeamHistory(t *testing.T) {
	t.Parallel()

	goals := NewGoalRepository()
	repo := NewPlayerRepository(SeedPlayers(), goals)

	if _, err := goals.InsertIfAbsent(context.Background(), goal.Goal{
		MatchID: "match-2", PlayerID: "player-owen", TeamID: "team-liv", Minute: 12,
	}); err != nil {
		t.Fatalf("seed goal: %v", err)
	}

	history, err := repo.ListByTeamHistory(context.Background(), "team-liv")
	if err != nil {
		t.Fatalf("list by team history: %v", err)
	}
	if len(history) != 1 || history[0].ID != "player-owen" {
		t.Fatalf("history: got=%+v", history)
	}

	empty, err := repo.ListByTeamHistory(context.Background(), "team-ars")
	if err != nil || len(empty) != 0 {
		t.Fatalf("team with no scorers: got=%+v err=%v", empty, err)
	}
}
