package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-matchups/internal/domain/league"
)

type LeagueRepository struct {
	mu          sync.RWMutex
	conferences map[int64]league.Conference
	seasons     map[int64]league.Season
}

func NewLeagueRepository(conferences []league.Conference, seasons []league.Season) *LeagueRepository {
	r := &LeagueRepository{
		conferences: make(map[int64]league.Conference, len(conferences)),
		seasons:     make(map[int64]league.Season, len(seasons)),
	}
	for _, item := range conferences {
		r.conferences[item.ID] = item
	}
	for _, item := range seasons {
		r.seasons[item.ID] = item
	}

	return r
}

func (r *LeagueRepository) GetConferenceByID(_ context.Context, conferenceID int64) (league.Conference, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.conferences[conferenceID]
	return item, ok, nil
}

func (r *LeagueRepository) GetSeasonByID(_ context.Context, seasonID int64) (league.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.seasons[seasonID]
	return item, ok, nil
}
