package fixture

import (
	"reflect"
	"testing"
	"time"
)

func TestParseRow_FullRow(t *testing.T) {
	t.Parallel()

	fields := []string{
		"Saturday, August 18",
		"Tottenham Hotspur",
		"Arsenal",
		"1",
		"1",
		"Sheringham",
		"60",
		"Henry",
		"23",
	}

	rec, err := ParseRow(fields, 2001, 7)
	if err != nil {
		t.Fatalf("parse row: %v", err)
	}

	wantDate := time.Date(2001, time.August, 18, 0, 0, 0, 0, time.UTC)
	if !rec.Date.Equal(wantDate) {
		t.Fatalf("date: got=%s want=%s", rec.Date, wantDate)
	}
	if rec.HomeTeamRaw != "Tottenham Hotspur" || rec.AwayTeamRaw != "Arsenal" {
		t.Fatalf("teams: got=%q/%q", rec.HomeTeamRaw, rec.AwayTeamRaw)
	}
	if rec.HomeScore == nil || *rec.HomeScore != 1 || rec.AwayScore == nil || *rec.AwayScore != 1 {
		t.Fatalf("scores: got=%v/%v", rec.HomeScore, rec.AwayScore)
	}
	if rec.HomeScorersRaw != "Sheringham" || rec.AwayMinutesRaw != "23" {
		t.Fatalf("goal fields: got=%q/%q", rec.HomeScorersRaw, rec.AwayMinutesRaw)
	}
	if rec.Line != 7 {
		t.Fatalf("line: got=%d want=7", rec.Line)
	}
}

func TestParseRow_MinimalRow(t *testing.T) {
	t.Parallel()

	rec, err := ParseRow([]string{"2001-08-18", "Tottenham", "Arsenal"}, 0, 1)
	if err != nil {
		t.Fatalf("parse row: %v", err)
	}
	if rec.HomeScore != nil || rec.AwayScore != nil {
		t.Fatalf("absent scores must stay nil")
	}
}

func TestParseRow_BlankScoresStayNil(t *testing.T) {
	t.Parallel()

	rec, err := ParseRow([]string{"2001-08-18", "Tottenham", "Arsenal", "", " "}, 0, 1)
	if err != nil {
		t.Fatalf("parse row: %v", err)
	}
	if rec.HomeScore != nil || rec.AwayScore != nil {
		t.Fatalf("blank scores must stay nil")
	}
}

func TestParseRow_Rejections(t *testing.T) {
	t.Parallel()

	cases := [][]string{
		{"2001-08-18", "Tottenham"},                          // too few fields
		{"eighteenth", "Tottenham", "Arsenal"},               // bad date
		{"2001-08-18", "", "Arsenal"},                        // missing team
		{"2001-08-18", "Tottenham", "Arsenal", "one"},        // non-numeric score
		{"2001-08-18", "Tottenham", "Arsenal", "1", "-2"},    // negative score
		{"August 18", "Tottenham", "Arsenal"},                // yearless, no year supplied
	}

	for _, fields := range cases {
		if _, err := ParseRow(fields, 0, 1); err == nil {
			t.Fatalf("expected error for row %v", fields)
		}
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	got := SplitList(" Sheringham : Ferdinand, Les :  ")
	want := []string{"Sheringham", "Ferdinand, Les"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}

	if SplitList("   ") != nil {
		t.Fatalf("blank input must yield nil")
	}
}

func TestLinkResult_Linked(t *testing.T) {
	t.Parallel()

	if (LinkResult{Strategy: StrategyUnlinked}).Linked() {
		t.Fatalf("empty match id must report unlinked")
	}
	if !(LinkResult{MatchID: "match-1", Strategy: StrategyExact}).Linked() {
		t.Fatalf("populated match id must report linked")
	}
}
