package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, teamID int64) (Team, bool, error)
	// GetActiveRosterAssignment returns only the active assignment.
	GetActiveRosterAssignment(ctx context.Context, teamID, conferenceID int64) (RosterAssignment, bool, error)
}
