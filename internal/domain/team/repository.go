package team

import "context"

// Repository describes team lookups needed by the linking pipeline.
type Repository interface {
	// ResolveName matches a raw source name against canonical or short
	// names. The bool reports whether exactly one team matched.
	ResolveName(ctx context.Context, rawName string) (Team, bool, error)
	ListAll(ctx context.Context) ([]Team, error)
}
