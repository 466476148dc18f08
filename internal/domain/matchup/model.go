package matchup

import "fmt"

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusFinal      Status = "final"
)

var AllStatuses = map[Status]struct{}{
	StatusScheduled:  {},
	StatusInProgress: {},
	StatusFinal:      {},
}

// Record is the stored pairing of two teams for one week. Team2ID == 0 is a
// bye week for Team1.
type Record struct {
	ID                int64
	Week              int
	ConferenceID      int64
	Team1ID           int64
	Team2ID           int64
	IsPlayoff         bool
	Team2ConferenceID int64
	IsInterConference bool
	Status            Status
}

func (r Record) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("matchup id is required")
	}
	if r.Week < 1 {
		return fmt.Errorf("matchup week must be positive")
	}
	if r.ConferenceID <= 0 {
		return fmt.Errorf("matchup conference id is required")
	}
	if r.Team1ID <= 0 {
		return fmt.Errorf("matchup team1 id is required")
	}
	if r.Team1ID == r.Team2ID {
		return fmt.Errorf("matchup teams must differ: team=%d", r.Team1ID)
	}
	if r.Status != "" {
		if _, ok := AllStatuses[r.Status]; !ok {
			return fmt.Errorf("invalid matchup status: %s", r.Status)
		}
	}

	return nil
}

func (r Record) IsBye() bool {
	return r.Team2ID == 0
}

// Team2Conference is the conference team2 plays in, defaulting to the
// record's own conference.
func (r Record) Team2Conference() int64 {
	if r.Team2ConferenceID > 0 {
		return r.Team2ConferenceID
	}
	return r.ConferenceID
}

// TeamIdentity is a team joined with its conference, roster assignment and
// season.
type TeamIdentity struct {
	TeamID           int64
	ConferenceID     int64
	TeamName         string
	OwnerName        string
	ConferenceName   string
	ExternalLeagueID string
	ExternalRosterID string
	SeasonID         int64
	SeasonYear       int
}

type PlayerLine struct {
	PlayerID string
	Name     string
	Points   float64
}

type TeamView struct {
	Identity    TeamIdentity
	Starters    []PlayerLine
	Bench       []PlayerLine
	TotalPoints float64
}

type Winner struct {
	TeamID   int64
	TeamName string
	Margin   float64
}

// DataQuality describes how complete a reconciled matchup is.
type DataQuality struct {
	Team1Complete     bool
	Team2Complete     bool
	BothTeamsHaveData bool
	HasScoringData    bool
	HasStarterData    bool
	Warnings          []string
}

// Aggregated is one fully resolved matchup for a week. Team2 is nil on a bye.
type Aggregated struct {
	MatchupID         int64
	Week              int
	IsPlayoff         bool
	Status            Status
	IsInterConference bool
	Team1             TeamView
	Team2             *TeamView
	Winner            *Winner
	DataQuality       *DataQuality
}
