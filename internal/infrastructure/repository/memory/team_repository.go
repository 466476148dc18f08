package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-matchups/internal/domain/team"
)

type rosterKey struct {
	teamID       int64
	conferenceID int64
}

type TeamRepository struct {
	mu          sync.RWMutex
	teams       map[int64]team.Team
	assignments map[rosterKey][]team.RosterAssignment
}

func NewTeamRepository(teams []team.Team, assignments []team.RosterAssignment) *TeamRepository {
	r := &TeamRepository{
		teams:       make(map[int64]team.Team, len(teams)),
		assignments: make(map[rosterKey][]team.RosterAssignment, len(assignments)),
	}
	for _, item := range teams {
		r.teams[item.ID] = item
	}
	for _, item := range assignments {
		key := rosterKey{teamID: item.TeamID, conferenceID: item.ConferenceID}
		r.assignments[key] = append(r.assignments[key], item)
	}

	return r
}

func (r *TeamRepository) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[teamID]
	return item, ok, nil
}

func (r *TeamRepository) GetActiveRosterAssignment(_ context.Context, teamID, conferenceID int64) (team.RosterAssignment, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.assignments[rosterKey{teamID: teamID, conferenceID: conferenceID}] {
		if item.IsActive {
			return item, true, nil
		}
	}

	return team.RosterAssignment{}, false, nil
}
