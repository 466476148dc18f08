package team

import "fmt"

// Team is a fantasy team owned by one manager.
type Team struct {
	ID        int64
	Name      string
	OwnerName string
	OwnerID   string
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// RosterAssignment binds a team inside a conference to its roster slot on the
// external scoring host. At most one assignment per (team, conference) is
// active at a time.
type RosterAssignment struct {
	TeamID           int64
	ConferenceID     int64
	ExternalRosterID string
	IsActive         bool
}

func (a RosterAssignment) Validate() error {
	if a.TeamID <= 0 {
		return fmt.Errorf("roster assignment team id is required")
	}
	if a.ConferenceID <= 0 {
		return fmt.Errorf("roster assignment conference id is required")
	}
	if a.ExternalRosterID == "" {
		return fmt.Errorf("roster assignment external roster id is required")
	}

	return nil
}
