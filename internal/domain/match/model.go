package match

import (
	"fmt"
	"time"
)

// Match is a canonical, persisted fixture with stable identity. The
// importer only ever reads matches; it never creates or mutates them.
type Match struct {
	ID         string
	SeasonID   string
	HomeTeamID string
	AwayTeamID string
	Date       time.Time
	HomeScore  *int
	AwayScore  *int
}

// HasFinalScore reports whether both final scores are recorded.
func (m Match) HasFinalScore() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return fmt.Errorf("match team ids are required")
	}
	if m.Date.IsZero() {
		return fmt.Errorf("match date is required")
	}

	return nil
}
