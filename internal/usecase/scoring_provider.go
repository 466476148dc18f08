package usecase

import (
	"context"

	"github.com/riskibarqy/fantasy-matchups/internal/domain/matchup"
)

// TeamIdentity is the fully joined identity of a team inside a conference.
type TeamIdentity = matchup.TeamIdentity

// ScoringSnapshot is one roster's entry in the scoring host's weekly
// matchups payload. It is never persisted.
type ScoringSnapshot struct {
	ExternalRosterID string
	Starters         []string
	// StarterPoints is aligned with Starters; it may be shorter or empty.
	StarterPoints []float64
	AllPlayers    []string
	PlayerPoints  map[string]float64
	Points        *float64
	CustomPoints  *float64
}

// PlayerDirectory maps external player id to display name.
type PlayerDirectory map[string]string

// PlayerDirectorySource loads the scoring host's full player directory.
type PlayerDirectorySource interface {
	FetchPlayerDirectory(ctx context.Context) (PlayerDirectory, error)
}

// ScoringProvider is the external league-hosting API.
type ScoringProvider interface {
	PlayerDirectorySource
	// FetchMatchups returns every roster entry of the league for the week.
	// Implementations return ErrFetchTimeout or ErrFetchHTTP wrapped errors.
	FetchMatchups(ctx context.Context, externalLeagueID string, week int) ([]ScoringSnapshot, error)
}
