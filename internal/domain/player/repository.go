package player

import "context"

// Repository describes player lookups and the one write path the
// attribution resolver owns: creating a player nothing else matched.
type Repository interface {
	// GetByNormalizedName is an exact lookup on the comparable form.
	GetByNormalizedName(ctx context.Context, normalized string) (Player, bool, error)
	// ListBySubstring returns players whose normalized name contains the
	// token or is contained by it.
	ListBySubstring(ctx context.Context, normalized string) ([]Player, error)
	// ListByTeamHistory returns players known to have scored for the team.
	ListByTeamHistory(ctx context.Context, teamID string) ([]Player, error)
	// Create inserts a new player. When another writer already created a
	// player with the same normalized name, implementations must return
	// the existing row instead of failing.
	Create(ctx context.Context, p Player) (Player, error)
}
