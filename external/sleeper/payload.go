package sleeper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-matchups/internal/usecase"
)

// matchupEntry is one roster in GET /league/{id}/matchups/{week}.
type matchupEntry struct {
	RosterID       int64              `json:"roster_id" validate:"required,gt=0"`
	MatchupID      *int64             `json:"matchup_id"`
	Starters       []string           `json:"starters"`
	Players        []string           `json:"players"`
	Points         *float64           `json:"points"`
	CustomPoints   *float64           `json:"custom_points"`
	StartersPoints json.RawMessage    `json:"starters_points"`
	PlayersPoints  map[string]float64 `json:"players_points"`
}

// directoryEntry is one player in GET /players/{sport}.
type directoryEntry struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	FullName  *string `json:"full_name"`
	Position  string  `json:"position"`
	Team      *string `json:"team"`
}

func (e directoryEntry) displayName() string {
	if e.FullName != nil {
		if name := strings.TrimSpace(*e.FullName); name != "" {
			return name
		}
	}
	return strings.TrimSpace(strings.TrimSpace(e.FirstName) + " " + strings.TrimSpace(e.LastName))
}

func (e matchupEntry) toSnapshot() (usecase.ScoringSnapshot, error) {
	playerPoints := e.PlayersPoints
	if playerPoints == nil {
		playerPoints = map[string]float64{}
	}

	starterPoints, err := parseStartersPoints(e.StartersPoints, e.Starters, playerPoints)
	if err != nil {
		return usecase.ScoringSnapshot{}, fmt.Errorf("roster_id=%d: %w", e.RosterID, err)
	}

	return usecase.ScoringSnapshot{
		ExternalRosterID: strconv.FormatInt(e.RosterID, 10),
		Starters:         cleanIDs(e.Starters),
		StarterPoints:    starterPoints,
		AllPlayers:       cleanIDs(e.Players),
		PlayerPoints:     playerPoints,
		Points:           e.Points,
		CustomPoints:     e.CustomPoints,
	}, nil
}

// parseStartersPoints accepts either an array aligned with starters or an
// object keyed by player id. Starters absent from the object take their
// players_points value.
func parseStartersPoints(raw json.RawMessage, starters []string, playerPoints map[string]float64) ([]float64, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	switch trimmed[0] {
	case '[':
		var out []float64
		if err := sonic.Unmarshal(trimmed, &out); err != nil {
			return nil, fmt.Errorf("decode starters_points array: %w", err)
		}
		return out, nil
	case '{':
		var byID map[string]float64
		if err := sonic.Unmarshal(trimmed, &byID); err != nil {
			return nil, fmt.Errorf("decode starters_points object: %w", err)
		}
		out := make([]float64, len(starters))
		for i, starter := range starters {
			id := strings.TrimSpace(starter)
			if v, ok := byID[id]; ok {
				out[i] = v
				continue
			}
			out[i] = playerPoints[id]
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported starters_points shape")
	}
}

func cleanIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, strings.TrimSpace(id))
	}
	return out
}
