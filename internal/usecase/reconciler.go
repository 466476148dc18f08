package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fantasy-matchups/internal/domain/matchup"
	"github.com/riskibarqy/fantasy-matchups/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	warningInterConference  = "inter-conference matchup"
	warningSharedLeagueFlag = "teams marked inter-conference but share one external league id"
)

// Reconciler assembles matchups whose sides live in different external
// leagues. It resolves each side from its own league payload and degrades to
// a placeholder side instead of dropping the matchup.
type Reconciler struct {
	identities *TeamIdentityResolver
	scoring    *ScoringFetcher
	players    *PlayerResolver
	logger     *logging.Logger
}

func NewReconciler(identities *TeamIdentityResolver, scoring *ScoringFetcher, players *PlayerResolver, logger *logging.Logger) *Reconciler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Reconciler{
		identities: identities,
		scoring:    scoring,
		players:    players,
		logger:     logger,
	}
}

type reconciledSide struct {
	view        matchup.TeamView
	complete    bool
	hasScoring  bool
	hasStarters bool
	warning     string
}

// Reconcile builds the matchup from a run's prefetched lookup. It always
// returns a result.
func (r *Reconciler) Reconcile(ctx context.Context, record matchup.Record, lookup *WeekLookup) matchup.Aggregated {
	ctx, span := startUsecaseSpan(ctx, "usecase.Reconciler.Reconcile",
		attribute.Int64("matchup.id", record.ID),
	)
	defer span.End()

	side1Data := lookup.Side(record.Team1ID, record.ConferenceID)
	side1 := reconcileSide("team1", side1Data, lookup.PlayerNames)

	quality := &matchup.DataQuality{
		Warnings: []string{warningInterConference},
	}

	out := matchup.Aggregated{
		MatchupID:         record.ID,
		Week:              record.Week,
		IsPlayoff:         record.IsPlayoff,
		Status:            record.Status,
		IsInterConference: true,
		Team1:             side1.view,
		DataQuality:       quality,
	}

	quality.Team1Complete = side1.complete
	quality.HasScoringData = side1.hasScoring
	quality.HasStarterData = side1.hasStarters
	if side1.warning != "" {
		quality.Warnings = append(quality.Warnings, side1.warning)
	}

	if record.IsBye() {
		quality.Team2Complete = true
		quality.BothTeamsHaveData = side1.hasScoring
		r.logOutcome(ctx, record, quality)
		return out
	}

	side2Data := lookup.Side(record.Team2ID, record.Team2Conference())
	side2 := reconcileSide("team2", side2Data, lookup.PlayerNames)

	if record.IsInterConference && side1Data.HasIdentity && side2Data.HasIdentity &&
		side1Data.Identity.ExternalLeagueID == side2Data.Identity.ExternalLeagueID {
		quality.Warnings = append(quality.Warnings, warningSharedLeagueFlag)
	}

	team2 := side2.view
	out.Team2 = &team2
	quality.Team2Complete = side2.complete
	quality.BothTeamsHaveData = side1.hasScoring && side2.hasScoring
	quality.HasScoringData = side1.hasScoring || side2.hasScoring
	quality.HasStarterData = side1.hasStarters || side2.hasStarters
	if side2.warning != "" {
		quality.Warnings = append(quality.Warnings, side2.warning)
	}

	if side1.complete && side2.complete {
		out.Winner = matchup.DecideWinner(out.Team1, out.Team2)
	}

	r.logOutcome(ctx, record, quality)
	return out
}

// ReconcileMatchup reconciles a single record outside a week run, resolving
// both sides through the cached resolvers.
func (r *Reconciler) ReconcileMatchup(ctx context.Context, record matchup.Record) (matchup.Aggregated, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Reconciler.ReconcileMatchup",
		attribute.Int64("matchup.id", record.ID),
	)
	defer span.End()

	if err := record.Validate(); err != nil {
		return matchup.Aggregated{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	keys := []IdentityKey{{TeamID: record.Team1ID, ConferenceID: record.ConferenceID}}
	if !record.IsBye() {
		keys = append(keys, IdentityKey{TeamID: record.Team2ID, ConferenceID: record.Team2Conference()})
	}

	lookup := &WeekLookup{
		Week:         record.Week,
		Identities:   make(map[IdentityKey]TeamIdentity, len(keys)),
		IdentityErrs: make(map[IdentityKey]error),
		Scoring:      make(map[string][]ScoringSnapshot, len(keys)),
		ScoringErrs:  make(map[string]error),
	}
	for _, key := range keys {
		identity, err := r.identities.Resolve(ctx, key.TeamID, key.ConferenceID)
		if err != nil {
			lookup.IdentityErrs[key] = err
			continue
		}
		lookup.Identities[key] = identity

		leagueID := identity.ExternalLeagueID
		if _, done := lookup.Scoring[leagueID]; done {
			continue
		}
		if _, done := lookup.ScoringErrs[leagueID]; done {
			continue
		}
		snapshots, err := r.scoring.Fetch(ctx, leagueID, record.Week)
		if err != nil {
			lookup.ScoringErrs[leagueID] = err
			continue
		}
		lookup.Scoring[leagueID] = snapshots
	}

	entries := make([]*ScoringSnapshot, 0, len(keys))
	for _, key := range keys {
		side := lookup.Side(key.TeamID, key.ConferenceID)
		if side.Complete() {
			snapshot := side.Snapshot
			entries = append(entries, &snapshot)
		}
	}
	lookup.PlayerNames = r.players.Resolve(ctx, collectPlayerIDs(entries...))

	return r.Reconcile(ctx, record, lookup), nil
}

func (r *Reconciler) logOutcome(ctx context.Context, record matchup.Record, quality *matchup.DataQuality) {
	if quality.Team1Complete && quality.Team2Complete {
		r.logger.DebugContext(ctx, "inter-conference matchup reconciled", "matchup_id", record.ID)
		return
	}
	r.logger.WarnContext(ctx, "inter-conference matchup reconciled with missing data",
		"matchup_id", record.ID,
		"week", record.Week,
		"team1_complete", quality.Team1Complete,
		"team2_complete", quality.Team2Complete,
		"warnings", quality.Warnings,
	)
}

func reconcileSide(label string, data SideData, names map[string]string) reconciledSide {
	if !data.HasIdentity {
		return reconciledSide{
			view:    PlaceholderTeamView(data.Key.TeamID, data.Key.ConferenceID),
			warning: fmt.Sprintf("%s: identity unavailable for team %d: %v", label, data.Key.TeamID, data.Err),
		}
	}

	if data.Err != nil {
		view := PlaceholderTeamView(data.Key.TeamID, data.Key.ConferenceID)
		view.Identity = data.Identity
		out := reconciledSide{view: view}
		switch data.Stage {
		case StageScoring:
			out.warning = fmt.Sprintf("%s: scoring fetch failed for league %s: %v", label, data.Identity.ExternalLeagueID, data.Err)
		default:
			// The league payload arrived but this side has no entry in it.
			out.warning = fmt.Sprintf("%s: roster %s missing from league %s payload", label, data.Identity.ExternalRosterID, data.Identity.ExternalLeagueID)
		}
		return out
	}

	view := BuildTeamView(data.Identity, data.Snapshot, names)
	out := reconciledSide{
		view:        view,
		hasScoring:  true,
		hasStarters: len(data.Snapshot.Starters) > 0,
		complete:    len(data.Snapshot.Starters) > 0,
	}
	if !out.hasStarters {
		out.warning = fmt.Sprintf("%s: team %s has no starters", label, data.Identity.TeamName)
	}
	return out
}
