package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/fantasy-matchups/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	r := &PlayerRepository{players: make(map[string]player.Player, len(players))}
	for _, item := range players {
		r.players[strings.TrimSpace(item.ExternalID)] = item
	}

	return r
}

func (r *PlayerRepository) FindByExternalIDs(_ context.Context, externalIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(externalIDs))
	for _, id := range externalIDs {
		if item, ok := r.players[strings.TrimSpace(id)]; ok {
			out = append(out, item)
		}
	}

	return out, nil
}
