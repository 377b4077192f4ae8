package fixture

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/clubarchive/matchlinker/internal/platform/textnorm"
)

// ScorerDelimiter separates scorer names and minute annotations inside one
// source field.
const ScorerDelimiter = ":"

// Record is one parsed source row. It lives only for the duration of
// processing that row; nothing here is persisted.
type Record struct {
	HomeTeamRaw    string
	AwayTeamRaw    string
	Date           time.Time
	HomeScore      *int
	AwayScore      *int
	HomeScorersRaw string
	HomeMinutesRaw string
	AwayScorersRaw string
	AwayMinutesRaw string
	// Line is the 1-based source line, carried for reporting.
	Line int
}

// Strategy identifies which cascade stage linked a record.
type Strategy string

const (
	StrategyExact        Strategy = "exact"
	StrategyAliased      Strategy = "aliased"
	StrategyDateTolerant Strategy = "date_tolerant"
	StrategyFuzzy        Strategy = "fuzzy"
	StrategyUnlinked     Strategy = "unlinked"
)

// LinkResult is the audit outcome of one link attempt. It is never
// persisted; the importer folds it into metrics and logs.
type LinkResult struct {
	MatchID    string
	Strategy   Strategy
	Confidence float64
}

// Linked reports whether the record resolved to a canonical match.
func (r LinkResult) Linked() bool {
	return r.MatchID != ""
}

// ParseRow builds a Record from one delimited source row. Expected columns:
// date, home team, away team, home score, away score, home scorers,
// home minutes, away scorers, away minutes. Scores and goal fields may be
// blank; trailing columns may be absent entirely.
func ParseRow(fields []string, year int, line int) (Record, error) {
	if len(fields) < 3 {
		return Record{}, fmt.Errorf("row has %d fields, need at least date and both team names", len(fields))
	}

	date, err := textnorm.ResolveDate(fields[0], year)
	if err != nil {
		return Record{}, fmt.Errorf("resolve date %q: %w", fields[0], err)
	}

	rec := Record{
		HomeTeamRaw: strings.TrimSpace(fields[1]),
		AwayTeamRaw: strings.TrimSpace(fields[2]),
		Date:        date,
		Line:        line,
	}
	if rec.HomeTeamRaw == "" || rec.AwayTeamRaw == "" {
		return Record{}, fmt.Errorf("row is missing a team name")
	}

	if len(fields) > 3 {
		rec.HomeScore, err = parseOptionalScore(fields[3])
		if err != nil {
			return Record{}, fmt.Errorf("parse home score %q: %w", fields[3], err)
		}
	}
	if len(fields) > 4 {
		rec.AwayScore, err = parseOptionalScore(fields[4])
		if err != nil {
			return Record{}, fmt.Errorf("parse away score %q: %w", fields[4], err)
		}
	}
	if len(fields) > 5 {
		rec.HomeScorersRaw = strings.TrimSpace(fields[5])
	}
	if len(fields) > 6 {
		rec.HomeMinutesRaw = strings.TrimSpace(fields[6])
	}
	if len(fields) > 7 {
		rec.AwayScorersRaw = strings.TrimSpace(fields[7])
	}
	if len(fields) > 8 {
		rec.AwayMinutesRaw = strings.TrimSpace(fields[8])
	}

	return rec, nil
}

// SplitList splits a colon-delimited scorer or minute field, dropping
// empty items.
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ScorerDelimiter)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseOptionalScore(raw string) (*int, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	score, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}
	if score < 0 {
		return nil, fmt.Errorf("score must not be negative")
	}

	return &score, nil
}
