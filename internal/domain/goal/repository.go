package goal

import "context"

// Repository is the write/read surface for attributed goals.
type Repository interface {
	// InsertIfAbsent persists the goal unless an identical row already
	// exists. The bool reports whether a new row was written.
	InsertIfAbsent(ctx context.Context, g Goal) (bool, error)
	CountByMatchAndTeam(ctx context.Context, matchID, teamID string) (int, error)
	ListByMatch(ctx context.Context, matchID string) ([]Goal, error)
}
