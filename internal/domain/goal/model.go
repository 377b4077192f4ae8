package goal

import "fmt"

// Goal is one attributed scoring event. The tuple
// (MatchID, PlayerID, TeamID, Minute) is the idempotency key: re-importing
// the same source data must not produce duplicate rows.
type Goal struct {
	MatchID  string
	PlayerID string
	TeamID   string
	Minute   int
}

func (g Goal) Validate() error {
	if g.MatchID == "" {
		return fmt.Errorf("goal match id is required")
	}
	if g.PlayerID == "" {
		return fmt.Errorf("goal player id is required")
	}
	if g.TeamID == "" {
		return fmt.Errorf("goal team id is required")
	}
	if g.Minute < 0 {
		return fmt.Errorf("goal minute must not be negative")
	}

	return nil
}
