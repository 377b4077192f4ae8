package csvfile

import (
	"strings"
	"testing"
	"time"
)

func TestReader_SkipsHeaderAndParsesRows(t *testing.T) {
	t.Parallel()

	src := strings.Join([]string{
		"date,home,away,home_score,away_score,home_scorers,home_minutes,away_scorers,away_minutes",
		"August 18,Tottenham,Arsenal,1,1,Sheringham,60,Henry,23",
		`September 15,Liverpool,Everton,3,1,"Owen : Owen : Gerrard","12 : 45+2 : 78",Campbell,30`,
	}, "\n")

	result, err := NewReader(2001, nil).Read(strings.NewReader(src))
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if result.RowsRead != 2 || result.ParseErrors != 0 {
		t.Fatalf("rows=%d errors=%d, want 2/0", result.RowsRead, result.ParseErrors)
	}
	if len(result.Records) != 2 {
		t.Fatalf("records: got=%d want=2", len(result.Records))
	}

	first := result.Records[0]
	if !first.Date.Equal(time.Date(2001, time.August, 18, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("year not applied: got=%s", first.Date)
	}
	if first.Line != 2 {
		t.Fatalf("line: got=%d want=2", first.Line)
	}

	// Quoted fields keep the in-field delimiter intact.
	second := result.Records[1]
	if second.HomeScorersRaw != "Owen : Owen : Gerrard" {
		t.Fatalf("quoted scorer field mangled: got=%q", second.HomeScorersRaw)
	}
}

func TestReader_CountsBadRowsWithoutAborting(t *testing.T) {
	t.Parallel()

	src := strings.Join([]string{
		"August 18,Tottenham,Arsenal,1,1",
		"not a date,Leeds,Chelsea,2,0",
		"August 25,Leeds,,1,0",
		"September 1,Liverpool,Everton,3,1",
	}, "\n")

	result, err := NewReader(2001, nil).Read(strings.NewReader(src))
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if result.RowsRead != 4 {
		t.Fatalf("rows read: got=%d want=4", result.RowsRead)
	}
	if result.ParseErrors != 2 {
		t.Fatalf("parse errors: got=%d want=2", result.ParseErrors)
	}
	if len(result.Records) != 2 {
		t.Fatalf("records: got=%d want=2", len(result.Records))
	}
}

func TestReader_NoHeader(t *testing.T) {
	t.Parallel()

	result, err := NewReader(2001, nil).Read(strings.NewReader("August 18,Tottenham,Arsenal\n"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(result.Records) != 1 {
		t.Fatalf("first data row must not be dropped as a header: got=%d records", len(result.Records))
	}
}
