package match

import (
	"context"
	"time"
)

// Repository exposes the read surface the linker and validator need.
type Repository interface {
	// GetByTeamsAndDate returns the match between the two teams on the
	// given calendar date. The bool reports whether one was found.
	GetByTeamsAndDate(ctx context.Context, homeTeamID, awayTeamID string, date time.Time) (Match, bool, error)
	ListByDate(ctx context.Context, date time.Time) ([]Match, error)
	GetByID(ctx context.Context, id string) (Match, bool, error)
	ListAll(ctx context.Context) ([]Match, error)
}
