package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-matchups/internal/platform/cache"
)

// Cache scopes accepted by MatchupService.ClearCaches.
const (
	CacheScopePlayers = "players"
	CacheScopeTeams   = "teams"
	CacheScopeScoring = "scoring"
	CacheScopeAll     = "all"
)

const playerDirectoryKey = "directory"

type IdentityKey struct {
	TeamID       int64
	ConferenceID int64
}

func (k IdentityKey) String() string {
	return fmt.Sprintf("%d:%d", k.TeamID, k.ConferenceID)
}

type ScoringKey struct {
	ExternalLeagueID string
	Week             int
}

type CacheTTLs struct {
	PlayerNames time.Duration
	Identities  time.Duration
	Scoring     time.Duration
	Directory   time.Duration
}

func DefaultCacheTTLs() CacheTTLs {
	return CacheTTLs{
		PlayerNames: 30 * time.Minute,
		Identities:  15 * time.Minute,
		Scoring:     5 * time.Minute,
		Directory:   60 * time.Minute,
	}
}

// Caches holds every cache the aggregation pipeline reads through.
type Caches struct {
	PlayerNames *cache.Store[string, string]
	Identities  *cache.Store[IdentityKey, TeamIdentity]
	Scoring     *cache.Store[ScoringKey, []ScoringSnapshot]
	Directory   *cache.Store[string, PlayerDirectory]
}

func NewCaches(ttls CacheTTLs, opts ...cache.Option) *Caches {
	defaults := DefaultCacheTTLs()
	if ttls.PlayerNames <= 0 {
		ttls.PlayerNames = defaults.PlayerNames
	}
	if ttls.Identities <= 0 {
		ttls.Identities = defaults.Identities
	}
	if ttls.Scoring <= 0 {
		ttls.Scoring = defaults.Scoring
	}
	if ttls.Directory <= 0 {
		ttls.Directory = defaults.Directory
	}

	return &Caches{
		PlayerNames: cache.NewStore[string, string]("player_names", ttls.PlayerNames, opts...).
			SizeWith(func(k, v string) int { return len(k) + len(v) + 32 }),
		Identities: cache.NewStore[IdentityKey, TeamIdentity]("team_identities", ttls.Identities, opts...).
			SizeWith(func(_ IdentityKey, v TeamIdentity) int {
				return 96 + len(v.TeamName) + len(v.OwnerName) + len(v.ConferenceName) + len(v.ExternalLeagueID) + len(v.ExternalRosterID)
			}),
		Scoring: cache.NewStore[ScoringKey, []ScoringSnapshot]("scoring_snapshots", ttls.Scoring, opts...).
			SizeWith(func(k ScoringKey, v []ScoringSnapshot) int { return len(k.ExternalLeagueID) + snapshotsSize(v) }),
		Directory: cache.NewStore[string, PlayerDirectory]("player_directory", ttls.Directory, opts...).
			SizeWith(func(_ string, v PlayerDirectory) int { return directorySize(v) }),
	}
}

// Sweepables lists the stores for cache.StartSweeper.
func (c *Caches) Sweepables() []cache.Sweepable {
	return []cache.Sweepable{c.PlayerNames, c.Identities, c.Scoring, c.Directory}
}

func (c *Caches) Stats() []cache.Stats {
	return []cache.Stats{
		c.PlayerNames.Stats(),
		c.Identities.Stats(),
		c.Scoring.Stats(),
		c.Directory.Stats(),
	}
}

// Clear empties the caches of one scope and returns the removed entry count.
func (c *Caches) Clear(scope string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(scope)) {
	case CacheScopePlayers:
		return c.PlayerNames.Clear() + c.Directory.Clear(), nil
	case CacheScopeTeams:
		return c.Identities.Clear(), nil
	case CacheScopeScoring:
		return c.Scoring.Clear(), nil
	case CacheScopeAll:
		return c.PlayerNames.Clear() + c.Directory.Clear() + c.Identities.Clear() + c.Scoring.Clear(), nil
	default:
		return 0, fmt.Errorf("%w: unknown cache scope %q", ErrInvalidInput, scope)
	}
}

func snapshotsSize(snapshots []ScoringSnapshot) int {
	size := 24
	for _, s := range snapshots {
		size += 64 + len(s.ExternalRosterID)
		size += 8 * len(s.StarterPoints)
		for _, id := range s.Starters {
			size += len(id) + 16
		}
		for _, id := range s.AllPlayers {
			size += len(id) + 16
		}
		size += 24 * len(s.PlayerPoints)
	}
	return size
}

func directorySize(directory PlayerDirectory) int {
	size := 48
	for id, name := range directory {
		size += len(id) + len(name) + 32
	}
	return size
}
