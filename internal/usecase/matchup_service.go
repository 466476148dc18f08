package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-matchups/internal/domain/matchup"
	"github.com/riskibarqy/fantasy-matchups/internal/platform/cache"
	"github.com/riskibarqy/fantasy-matchups/internal/platform/id"
	"github.com/riskibarqy/fantasy-matchups/internal/platform/logging"
	"github.com/riskibarqy/fantasy-matchups/internal/platform/parallel"
	"go.opentelemetry.io/otel/attribute"
)

const defaultMatchupWorkers = 16

type MatchupServiceConfig struct {
	MaxParallel    int
	MatchupWorkers int
}

// MatchupFailure explains why one stored matchup is missing from a report.
type MatchupFailure struct {
	MatchupID int64
	Stage     string
	Reason    string
}

// WeekReport is the result of one aggregation run. Matchups may be fewer
// than ExpectedCount; Failures says why.
type WeekReport struct {
	RunID         string
	Week          int
	Matchups      []matchup.Aggregated
	ExpectedCount int
	Failures      []MatchupFailure
	DurationMs    int64
}

func (r WeekReport) Partial() bool {
	return len(r.Matchups) < r.ExpectedCount
}

type CacheStatistics struct {
	Caches       []cache.Stats
	TotalEntries int
	ApproxBytes  int64
}

type matchupPlan struct {
	record    matchup.Record
	reconcile bool
	side1     SideData
	side2     SideData
}

type MatchupService struct {
	matchupRepo matchup.Repository
	identities  *TeamIdentityResolver
	scoring     *ScoringFetcher
	players     *PlayerResolver
	reconciler  *Reconciler
	caches      *Caches
	idGen       id.Generator
	cfg         MatchupServiceConfig
	logger      *logging.Logger
}

func NewMatchupService(
	matchupRepo matchup.Repository,
	identities *TeamIdentityResolver,
	scoring *ScoringFetcher,
	players *PlayerResolver,
	reconciler *Reconciler,
	caches *Caches,
	idGen id.Generator,
	cfg MatchupServiceConfig,
	logger *logging.Logger,
) *MatchupService {
	if logger == nil {
		logger = logging.Default()
	}
	if idGen == nil {
		idGen = id.NewUUIDGenerator()
	}
	if cfg.MaxParallel <= 0 {
		cfg.MaxParallel = parallel.DefaultMaxParallel
	}
	if cfg.MatchupWorkers <= 0 {
		cfg.MatchupWorkers = defaultMatchupWorkers
	}

	return &MatchupService{
		matchupRepo: matchupRepo,
		identities:  identities,
		scoring:     scoring,
		players:     players,
		reconciler:  reconciler,
		caches:      caches,
		idGen:       idGen,
		cfg:         cfg,
		logger:      logger,
	}
}

// GetAggregatedMatchups returns every matchup of the week that could be fully
// assembled. Order is not guaranteed.
func (s *MatchupService) GetAggregatedMatchups(ctx context.Context, week int) ([]matchup.Aggregated, error) {
	report, err := s.AggregateWeek(ctx, week)
	if err != nil {
		return nil, err
	}
	return report.Matchups, nil
}

// AggregateWeek runs the full pipeline. Only a failed record query fails the
// run; every other problem drops or degrades a single matchup.
func (s *MatchupService) AggregateWeek(ctx context.Context, week int) (WeekReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.AggregateWeek",
		attribute.Int("week", week),
	)
	defer span.End()

	start := time.Now()
	if week < 1 {
		return WeekReport{}, fmt.Errorf("%w: week must be positive", ErrInvalidInput)
	}

	runID, err := s.idGen.NewID()
	if err != nil {
		s.logger.WarnContext(ctx, "generate aggregation run id failed", "error", err)
	}
	logger := s.logger.With("run_id", runID, "week", week)

	records, err := s.matchupRepo.ListByWeek(ctx, week)
	if err != nil {
		return WeekReport{}, fmt.Errorf("list matchups by week: %w", err)
	}

	report := WeekReport{
		RunID:         runID,
		Week:          week,
		Matchups:      []matchup.Aggregated{},
		ExpectedCount: len(records),
	}
	if len(records) == 0 {
		report.DurationMs = time.Since(start).Milliseconds()
		return report, nil
	}

	valid := make([]matchup.Record, 0, len(records))
	keys := make([]IdentityKey, 0, 2*len(records))
	for _, record := range records {
		if err := record.Validate(); err != nil {
			report.Failures = append(report.Failures, s.fail(ctx, logger, record.ID, StageValidate, err))
			continue
		}
		valid = append(valid, record)
		keys = append(keys, IdentityKey{TeamID: record.Team1ID, ConferenceID: record.ConferenceID})
		if !record.IsBye() {
			keys = append(keys, IdentityKey{TeamID: record.Team2ID, ConferenceID: record.Team2Conference()})
		}
	}

	lookup := &WeekLookup{Week: week}
	lookup.Identities, lookup.IdentityErrs = parallel.Partition(s.identities.ResolveMany(ctx, keys))

	leagueIDs := make([]string, 0, len(lookup.Identities))
	for _, identity := range lookup.Identities {
		leagueIDs = append(leagueIDs, identity.ExternalLeagueID)
	}
	lookup.Scoring, lookup.ScoringErrs = parallel.Partition(s.scoring.FetchMany(ctx, leagueIDs, week))

	plans := make([]matchupPlan, 0, len(valid))
	entries := make([]*ScoringSnapshot, 0, 2*len(valid))
	for _, record := range valid {
		plan := matchupPlan{
			record: record,
			side1:  lookup.Side(record.Team1ID, record.ConferenceID),
		}
		if !record.IsBye() {
			plan.side2 = lookup.Side(record.Team2ID, record.Team2Conference())
		}
		plan.reconcile = record.IsInterConference || spansLeagues(plan.side1, plan.side2)

		if !plan.reconcile {
			failed := plan.side1
			if failed.Complete() && !record.IsBye() {
				failed = plan.side2
			}
			if !failed.Complete() {
				report.Failures = append(report.Failures, s.fail(ctx, logger, record.ID, failed.Stage, failed.Err))
				continue
			}
		}

		for _, side := range []SideData{plan.side1, plan.side2} {
			if side.Complete() && side.HasIdentity {
				snapshot := side.Snapshot
				entries = append(entries, &snapshot)
			}
		}
		plans = append(plans, plan)
	}

	lookup.PlayerNames = s.players.Resolve(ctx, collectPlayerIDs(entries...))

	assembled := s.assemble(ctx, logger, plans, lookup)
	for i, item := range assembled {
		if item == nil {
			report.Failures = append(report.Failures, s.fail(ctx, logger, plans[i].record.ID, StageAssemble, fmt.Errorf("assembly did not complete")))
			continue
		}
		report.Matchups = append(report.Matchups, *item)
	}

	report.DurationMs = time.Since(start).Milliseconds()
	logger.InfoContext(ctx, "week aggregated",
		"expected", report.ExpectedCount,
		"assembled", len(report.Matchups),
		"failed", len(report.Failures),
		"duration_ms", report.DurationMs,
	)
	return report, nil
}

func (s *MatchupService) assemble(ctx context.Context, logger *logging.Logger, plans []matchupPlan, lookup *WeekLookup) []*matchup.Aggregated {
	out := make([]*matchup.Aggregated, len(plans))
	build := func(i int) {
		plan := plans[i]
		var item matchup.Aggregated
		if plan.reconcile {
			item = s.reconciler.Reconcile(ctx, plan.record, lookup)
		} else {
			item = assembleMatchup(plan.record, plan.side1, plan.side2, lookup.PlayerNames)
		}
		out[i] = &item
	}

	pool, err := ants.NewPool(min(s.cfg.MatchupWorkers, len(plans)), ants.WithPanicHandler(func(p any) {
		logger.ErrorContext(ctx, "matchup assembly panicked", "panic", p)
	}))
	if err != nil {
		logger.WarnContext(ctx, "create matchup worker pool failed, assembling inline", "error", err)
		for i := range plans {
			build(i)
		}
		return out
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i := range plans {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			build(i)
		}); err != nil {
			workers.Done()
			build(i)
		}
	}
	workers.Wait()

	return out
}

func (s *MatchupService) fail(ctx context.Context, logger *logging.Logger, matchupID int64, stage string, err error) MatchupFailure {
	reason := "unknown"
	if err != nil {
		reason = err.Error()
	}
	logger.WarnContext(ctx, "matchup omitted from week",
		"matchup_id", matchupID,
		"stage", stage,
		"error", reason,
	)
	return MatchupFailure{MatchupID: matchupID, Stage: stage, Reason: reason}
}

// ReconcileMatchup reconciles one record on demand.
func (s *MatchupService) ReconcileMatchup(ctx context.Context, record matchup.Record) (matchup.Aggregated, error) {
	return s.reconciler.ReconcileMatchup(ctx, record)
}

// ReconcileWeekMatchup loads one stored matchup of the week and reconciles it
// side by side, whatever route the week run would give it.
func (s *MatchupService) ReconcileWeekMatchup(ctx context.Context, week int, matchupID int64) (matchup.Aggregated, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.ReconcileWeekMatchup",
		attribute.Int("week", week),
		attribute.Int64("matchup.id", matchupID),
	)
	defer span.End()

	if week < 1 || matchupID <= 0 {
		return matchup.Aggregated{}, fmt.Errorf("%w: week and matchup id must be positive", ErrInvalidInput)
	}

	records, err := s.matchupRepo.ListByWeek(ctx, week)
	if err != nil {
		return matchup.Aggregated{}, fmt.Errorf("list matchups by week: %w", err)
	}
	for _, record := range records {
		if record.ID == matchupID {
			return s.ReconcileMatchup(ctx, record)
		}
	}

	return matchup.Aggregated{}, fmt.Errorf("%w: matchup id=%d week=%d", ErrNotFound, matchupID, week)
}

func (s *MatchupService) CacheStatistics() CacheStatistics {
	out := CacheStatistics{Caches: s.caches.Stats()}
	for _, stats := range out.Caches {
		out.TotalEntries += stats.Entries
		out.ApproxBytes += stats.ApproxBytes
	}
	return out
}

func (s *MatchupService) ClearCaches(ctx context.Context, scope string) (int, error) {
	removed, err := s.caches.Clear(scope)
	if err != nil {
		return 0, err
	}
	s.logger.InfoContext(ctx, "caches cleared", "scope", scope, "removed", removed)
	return removed, nil
}

func spansLeagues(side1, side2 SideData) bool {
	return side1.HasIdentity && side2.HasIdentity &&
		side1.Identity.ExternalLeagueID != side2.Identity.ExternalLeagueID
}
