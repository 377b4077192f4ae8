package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/clubarchive/matchlinker/internal/domain/goal"
	"github.com/clubarchive/matchlinker/internal/domain/match"
	"github.com/clubarchive/matchlinker/internal/domain/report"
	"github.com/clubarchive/matchlinker/internal/infrastructure/repository/memory"
)

func intPtr(v int) *int { return &v }

func validationMatch(id, season string, home, away int) match.Match {
	return match.Match{
		ID:         id,
		SeasonID:   season,
		HomeTeamID: "team-h-" + id,
		AwayTeamID: "team-a-" + id,
		Date:       time.Date(2001, time.August, 18, 0, 0, 0, 0, time.UTC),
		HomeScore:  intPtr(home),
		AwayScore:  intPtr(away),
	}
}

func insertGoals(t *testing.T, goals *memory.GoalRepository, m match.Match, home, away int) {
	t.Helper()

	for i := 0; i < home; i++ {
		if _, err := goals.InsertIfAbsent(context.Background(), goal.Goal{
			MatchID: m.ID, PlayerID: "p-h", TeamID: m.HomeTeamID, Minute: i + 1,
		}); err != nil {
			t.Fatalf("insert home goal: %v", err)
		}
	}
	for i := 0; i < away; i++ {
		if _, err := goals.InsertIfAbsent(context.Background(), goal.Goal{
			MatchID: m.ID, PlayerID: "p-a", TeamID: m.AwayTeamID, Minute: i + 1,
		}); err != nil {
			t.Fatalf("insert away goal: %v", err)
		}
	}
}

func TestValidateMatch_Statuses(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name           string
		expected       [2]int
		recorded       [2]int
		wantStatus     string
		wantSuggestion string
	}{
		{"consistent", [2]int{2, 1}, [2]int{2, 1}, report.StatusConsistent, ""},
		{"goalless consistent", [2]int{0, 0}, [2]int{0, 0}, report.StatusConsistent, ""},
		{"missing", [2]int{2, 1}, [2]int{0, 0}, report.StatusMissing, ""},
		{"partial", [2]int{2, 1}, [2]int{1, 0}, report.StatusPartial, report.SuggestionUnderAttributed},
		{"over-attributed", [2]int{1, 0}, [2]int{2, 1}, report.StatusInconsistent, report.SuggestionOverAttributed},
		{"skew", [2]int{2, 1}, [2]int{1, 2}, report.StatusInconsistent, report.SuggestionAttributionSkew},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m := validationMatch("m-"+tc.name, "2001-02", tc.expected[0], tc.expected[1])
			goals := memory.NewGoalRepository()
			insertGoals(t, goals, m, tc.recorded[0], tc.recorded[1])

			service := NewValidationService(memory.NewMatchRepository([]match.Match{m}), goals, 1, nil)
			validation, err := service.ValidateMatch(context.Background(), m)
			if err != nil {
				t.Fatalf("validate: %v", err)
			}

			if validation.Status != tc.wantStatus {
				t.Fatalf("status: got=%q want=%q", validation.Status, tc.wantStatus)
			}
			if tc.wantSuggestion == "" {
				if validation.Correction != nil {
					t.Fatalf("unexpected correction: %+v", validation.Correction)
				}
				return
			}
			if validation.Correction == nil {
				t.Fatalf("expected a correction candidate")
			}
			if validation.Correction.Suggestion != tc.wantSuggestion {
				t.Fatalf("suggestion: got=%q want=%q", validation.Correction.Suggestion, tc.wantSuggestion)
			}
		})
	}
}

func TestValidateMatch_RequiresFinalScore(t *testing.T) {
	t.Parallel()

	m := validationMatch("m-noscore", "2001-02", 0, 0)
	m.HomeScore = nil

	service := NewValidationService(memory.NewMatchRepository([]match.Match{m}), memory.NewGoalRepository(), 1, nil)
	if _, err := service.ValidateMatch(context.Background(), m); err == nil {
		t.Fatalf("expected error for match without a final score")
	}
}

func TestValidationService_Run(t *testing.T) {
	t.Parallel()

	consistent := validationMatch("m-1", "2001-02", 1, 1)
	missing := validationMatch("m-2", "2001-02", 3, 0)
	partialNear := validationMatch("m-3", "2001-02", 2, 1)
	partialFar := validationMatch("m-4", "2002-03", 4, 0)
	unscored := validationMatch("m-5", "2002-03", 0, 0)
	unscored.HomeScore = nil
	unscored.AwayScore = nil

	goals := memory.NewGoalRepository()
	insertGoals(t, goals, consistent, 1, 1)
	insertGoals(t, goals, partialNear, 2, 0) // one goal short
	insertGoals(t, goals, partialFar, 1, 0)  // three goals short

	matches := []match.Match{consistent, missing, partialNear, partialFar, unscored}
	service := NewValidationService(memory.NewMatchRepository(matches), goals, 2, nil)

	summary, corrections, coverage, err := service.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// The match without a final score is out of scope.
	if summary.MatchesChecked != 4 {
		t.Fatalf("matches checked: got=%d want=4", summary.MatchesChecked)
	}
	if summary.StatusCounts[report.StatusConsistent] != 1 ||
		summary.StatusCounts[report.StatusMissing] != 1 ||
		summary.StatusCounts[report.StatusPartial] != 2 {
		t.Fatalf("status counts: got=%v", summary.StatusCounts)
	}

	if len(corrections) != 2 {
		t.Fatalf("corrections: got=%d want=2", len(corrections))
	}
	// Closest to reconciliation first.
	if corrections[0].MatchID != "m-3" || corrections[0].Difference != 1 {
		t.Fatalf("first correction: got=%+v", corrections[0])
	}
	if corrections[1].MatchID != "m-4" || corrections[1].Difference != 3 {
		t.Fatalf("second correction: got=%+v", corrections[1])
	}

	if len(coverage) != 2 {
		t.Fatalf("season coverage: got=%d seasons, want 2", len(coverage))
	}
	if coverage[0].SeasonID != "2001-02" || coverage[0].Matches != 3 || coverage[0].Consistent != 1 {
		t.Fatalf("2001-02 coverage: got=%+v", coverage[0])
	}
	if coverage[1].SeasonID != "2002-03" || coverage[1].Matches != 1 || coverage[1].Consistent != 0 {
		t.Fatalf("2002-03 coverage: got=%+v", coverage[1])
	}
	if got := coverage[0].Coverage; got < 0.33 || got > 0.34 {
		t.Fatalf("2001-02 coverage ratio: got=%v want=1/3", got)
	}
}
