package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-matchups/internal/domain/matchup"
)

type MatchupRepository struct {
	mu     sync.RWMutex
	byWeek map[int][]matchup.Record
}

func NewMatchupRepository(records []matchup.Record) *MatchupRepository {
	byWeek := make(map[int][]matchup.Record)
	for _, item := range records {
		byWeek[item.Week] = append(byWeek[item.Week], item)
	}
	for week := range byWeek {
		items := byWeek[week]
		sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	}

	return &MatchupRepository{byWeek: byWeek}
}

func (r *MatchupRepository) ListByWeek(_ context.Context, week int) ([]matchup.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byWeek[week]
	out := make([]matchup.Record, 0, len(items))
	out = append(out, items...)

	return out, nil
}
