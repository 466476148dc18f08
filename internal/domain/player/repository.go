package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	// FindByExternalIDs returns the players it knows; unknown ids are absent.
	FindByExternalIDs(ctx context.Context, externalIDs []string) ([]Player, error)
}
