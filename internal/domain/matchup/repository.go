package matchup

import "context"

// Repository describes matchup persistence needs from use cases.
type Repository interface {
	ListByWeek(ctx context.Context, week int) ([]Record, error)
}
