package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-matchups/internal/platform/cache"
	"github.com/riskibarqy/fantasy-matchups/internal/platform/logging"
	"github.com/riskibarqy/fantasy-matchups/internal/platform/parallel"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultScoringTimeout = 10 * time.Second

// ScoringFetcher reads weekly league payloads from the provider, caching
// each (league, week) so every team in a league shares one request.
type ScoringFetcher struct {
	provider    ScoringProvider
	cache       *cache.Store[ScoringKey, []ScoringSnapshot]
	timeout     time.Duration
	maxParallel int
	logger      *logging.Logger
}

func NewScoringFetcher(
	provider ScoringProvider,
	snapshots *cache.Store[ScoringKey, []ScoringSnapshot],
	timeout time.Duration,
	maxParallel int,
	logger *logging.Logger,
) *ScoringFetcher {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = DefaultScoringTimeout
	}
	if maxParallel <= 0 {
		maxParallel = parallel.DefaultMaxParallel
	}

	return &ScoringFetcher{
		provider:    provider,
		cache:       snapshots,
		timeout:     timeout,
		maxParallel: maxParallel,
		logger:      logger,
	}
}

func (f *ScoringFetcher) Fetch(ctx context.Context, externalLeagueID string, week int) ([]ScoringSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringFetcher.Fetch",
		attribute.String("league.external_id", externalLeagueID),
		attribute.Int("week", week),
	)
	defer span.End()

	externalLeagueID = strings.TrimSpace(externalLeagueID)
	if externalLeagueID == "" {
		return nil, fmt.Errorf("%w: external league id is required", ErrInvalidInput)
	}
	if week < 1 {
		return nil, fmt.Errorf("%w: week must be positive", ErrInvalidInput)
	}

	key := ScoringKey{ExternalLeagueID: externalLeagueID, Week: week}
	return f.cache.GetOrLoad(ctx, key, func(ctx context.Context) ([]ScoringSnapshot, error) {
		start := time.Now()
		fetchCtx, cancel := context.WithTimeout(ctx, f.timeout)
		defer cancel()

		snapshots, err := f.provider.FetchMatchups(fetchCtx, externalLeagueID, week)
		if err != nil {
			err = classifyFetchError(fetchCtx, err)
			f.logger.WarnContext(ctx, "scoring fetch failed",
				"league_id", externalLeagueID,
				"week", week,
				"duration_ms", time.Since(start).Milliseconds(),
				"error", err,
			)
			return nil, err
		}

		f.logger.DebugContext(ctx, "scoring fetched",
			"league_id", externalLeagueID,
			"week", week,
			"rosters", len(snapshots),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return snapshots, nil
	})
}

// FetchMany fetches distinct leagues in parallel; one league failing never
// cancels the others.
func (f *ScoringFetcher) FetchMany(ctx context.Context, externalLeagueIDs []string, week int) []parallel.Result[string, []ScoringSnapshot] {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringFetcher.FetchMany",
		attribute.Int("leagues.count", len(externalLeagueIDs)),
	)
	defer span.End()

	unique := make([]string, 0, len(externalLeagueIDs))
	seen := make(map[string]struct{}, len(externalLeagueIDs))
	for _, id := range externalLeagueIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	return parallel.Map(ctx, unique, f.maxParallel, func(ctx context.Context, leagueID string) ([]ScoringSnapshot, error) {
		return f.Fetch(ctx, leagueID, week)
	})
}

// FindEntry returns the roster's snapshot from a league payload.
func FindEntry(snapshots []ScoringSnapshot, externalRosterID string) (ScoringSnapshot, error) {
	externalRosterID = strings.TrimSpace(externalRosterID)
	for _, s := range snapshots {
		if s.ExternalRosterID == externalRosterID {
			return s, nil
		}
	}
	return ScoringSnapshot{}, fmt.Errorf("%w: roster=%s", ErrMissingScoringEntry, externalRosterID)
}

func classifyFetchError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, ErrFetchTimeout), errors.Is(err, ErrFetchHTTP):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrFetchTimeout, err)
	default:
		return fmt.Errorf("%w: %v", ErrFetchHTTP, err)
	}
}
