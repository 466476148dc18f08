package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-matchups/internal/domain/league"
	"github.com/riskibarqy/fantasy-matchups/internal/domain/team"
	"github.com/riskibarqy/fantasy-matchups/internal/platform/cache"
	"github.com/riskibarqy/fantasy-matchups/internal/platform/logging"
	"github.com/riskibarqy/fantasy-matchups/internal/platform/parallel"
	"github.com/sourcegraph/conc"
	"go.opentelemetry.io/otel/attribute"
)

// TeamIdentityResolver joins a team with its conference, active roster
// assignment and season. Successful joins are cached; failures never are.
type TeamIdentityResolver struct {
	teamRepo    team.Repository
	leagueRepo  league.Repository
	cache       *cache.Store[IdentityKey, TeamIdentity]
	maxParallel int
	logger      *logging.Logger
}

func NewTeamIdentityResolver(
	teamRepo team.Repository,
	leagueRepo league.Repository,
	identities *cache.Store[IdentityKey, TeamIdentity],
	maxParallel int,
	logger *logging.Logger,
) *TeamIdentityResolver {
	if logger == nil {
		logger = logging.Default()
	}
	if maxParallel <= 0 {
		maxParallel = parallel.DefaultMaxParallel
	}

	return &TeamIdentityResolver{
		teamRepo:    teamRepo,
		leagueRepo:  leagueRepo,
		cache:       identities,
		maxParallel: maxParallel,
		logger:      logger,
	}
}

func (r *TeamIdentityResolver) Resolve(ctx context.Context, teamID, conferenceID int64) (TeamIdentity, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamIdentityResolver.Resolve",
		attribute.Int64("team.id", teamID),
		attribute.Int64("conference.id", conferenceID),
	)
	defer span.End()

	if teamID <= 0 || conferenceID <= 0 {
		return TeamIdentity{}, fmt.Errorf("%w: team and conference ids are required", ErrInvalidInput)
	}

	key := IdentityKey{TeamID: teamID, ConferenceID: conferenceID}
	if cached, ok := r.cache.Get(ctx, key); ok {
		return cached, nil
	}

	identity, err := r.load(ctx, key)
	if err != nil {
		return TeamIdentity{}, err
	}

	r.cache.Set(ctx, key, identity)
	return identity, nil
}

func (r *TeamIdentityResolver) load(ctx context.Context, key IdentityKey) (TeamIdentity, error) {
	var (
		teamRow     team.Team
		teamFound   bool
		teamErr     error
		conference  league.Conference
		confFound   bool
		confErr     error
		assignment  team.RosterAssignment
		rosterFound bool
		rosterErr   error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		teamRow, teamFound, teamErr = r.teamRepo.GetByID(ctx, key.TeamID)
	})
	wg.Go(func() {
		conference, confFound, confErr = r.leagueRepo.GetConferenceByID(ctx, key.ConferenceID)
	})
	wg.Go(func() {
		assignment, rosterFound, rosterErr = r.teamRepo.GetActiveRosterAssignment(ctx, key.TeamID, key.ConferenceID)
	})
	wg.Wait()

	if teamErr != nil {
		return TeamIdentity{}, fmt.Errorf("get team id=%d: %w", key.TeamID, teamErr)
	}
	if confErr != nil {
		return TeamIdentity{}, fmt.Errorf("get conference id=%d: %w", key.ConferenceID, confErr)
	}
	if rosterErr != nil {
		return TeamIdentity{}, fmt.Errorf("get roster assignment team=%d conference=%d: %w", key.TeamID, key.ConferenceID, rosterErr)
	}
	if !teamFound {
		return TeamIdentity{}, r.missing(IdentityLegTeam, key)
	}
	if !confFound {
		return TeamIdentity{}, r.missing(IdentityLegConference, key)
	}
	if !rosterFound || strings.TrimSpace(assignment.ExternalRosterID) == "" {
		return TeamIdentity{}, r.missing(IdentityLegRoster, key)
	}

	season, seasonFound, err := r.leagueRepo.GetSeasonByID(ctx, conference.SeasonID)
	if err != nil {
		return TeamIdentity{}, fmt.Errorf("get season id=%d: %w", conference.SeasonID, err)
	}
	if !seasonFound {
		return TeamIdentity{}, r.missing(IdentityLegSeason, key)
	}

	return TeamIdentity{
		TeamID:           teamRow.ID,
		ConferenceID:     conference.ID,
		TeamName:         teamRow.Name,
		OwnerName:        teamRow.OwnerName,
		ConferenceName:   conference.Name,
		ExternalLeagueID: strings.TrimSpace(conference.ExternalLeagueID),
		ExternalRosterID: strings.TrimSpace(assignment.ExternalRosterID),
		SeasonID:         season.ID,
		SeasonYear:       season.Year,
	}, nil
}

func (r *TeamIdentityResolver) missing(leg string, key IdentityKey) error {
	r.logger.Debug("team identity incomplete", "leg", leg, "team_id", key.TeamID, "conference_id", key.ConferenceID)
	return &MissingIdentityError{Leg: leg, TeamID: key.TeamID, ConferenceID: key.ConferenceID}
}

// ResolveMany resolves a deduplicated batch. One key failing never aborts
// the others.
func (r *TeamIdentityResolver) ResolveMany(ctx context.Context, keys []IdentityKey) []parallel.Result[IdentityKey, TeamIdentity] {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamIdentityResolver.ResolveMany",
		attribute.Int("keys.count", len(keys)),
	)
	defer span.End()

	unique := dedupeIdentityKeys(keys)
	return parallel.Map(ctx, unique, r.maxParallel, func(ctx context.Context, key IdentityKey) (TeamIdentity, error) {
		return r.Resolve(ctx, key.TeamID, key.ConferenceID)
	})
}

func dedupeIdentityKeys(keys []IdentityKey) []IdentityKey {
	seen := make(map[IdentityKey]struct{}, len(keys))
	out := make([]IdentityKey, 0, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
