package league

import "context"

// Repository describes the conference and season lookups use cases need.
type Repository interface {
	GetConferenceByID(ctx context.Context, conferenceID int64) (Conference, bool, error)
	GetSeasonByID(ctx context.Context, seasonID int64) (Season, bool, error)
}
