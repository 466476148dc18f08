package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/fantasy-matchups/external/sleeper"
	"github.com/riskibarqy/fantasy-matchups/internal/config"
	"github.com/riskibarqy/fantasy-matchups/internal/infrastructure/repository/redisstore"
	"github.com/riskibarqy/fantasy-matchups/internal/interfaces/httpapi"
	"github.com/riskibarqy/fantasy-matchups/internal/platform/cache"
	"github.com/riskibarqy/fantasy-matchups/internal/platform/id"
	"github.com/riskibarqy/fantasy-matchups/internal/platform/logging"
	"github.com/riskibarqy/fantasy-matchups/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-matchups/internal/usecase"
)

// App is the wired aggregation pipeline plus the resources it owns.
type App struct {
	cfg     config.Config
	logger  *logging.Logger
	caches  *usecase.Caches
	service *usecase.MatchupService
	closers []func() error
}

// Options overrides collaborators, mainly for tests.
type Options struct {
	Provider usecase.ScoringProvider
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger, opts Options) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, logger: logger, closers: []func() error{repos.close}}

	provider := opts.Provider
	if provider == nil {
		provider = sleeper.NewClient(sleeper.ClientConfig{
			BaseURL:          cfg.ScoringBaseURL,
			Sport:            cfg.ScoringSport,
			Timeout:          cfg.ScoringTimeout,
			DirectoryTimeout: cfg.ScoringDirectoryTimeout,
			MaxRetries:       cfg.ScoringMaxRetries,
			Logger:           logger.Named("sleeper"),
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.ScoringCircuitEnabled,
				FailureThreshold: cfg.ScoringCircuitFailureCount,
				OpenTimeout:      cfg.ScoringCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ScoringCircuitHalfOpenMax,
			},
		})
	}

	var directorySource usecase.PlayerDirectorySource = provider
	if cfg.RedisURL != "" {
		client, err := redisstore.Open(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, player directory snapshot disabled", "error", err)
		} else {
			a.closers = append(a.closers, client.Close)
			directorySource = redisstore.NewPlayerDirectorySnapshot(client, provider, "", cfg.PlayerDirectorySnapshotTTL, logger.Named("redisstore"))
			logger.Info("player directory snapshot enabled", "ttl", cfg.PlayerDirectorySnapshotTTL.String())
		}
	}

	a.caches = usecase.NewCaches(usecase.CacheTTLs{
		PlayerNames: cfg.CachePlayerTTL,
		Identities:  cfg.CacheTeamTTL,
		Scoring:     cfg.CacheScoringTTL,
		Directory:   cfg.CacheDirectoryTTL,
	})

	usecaseLogger := logger.Named("usecase")
	identities := usecase.NewTeamIdentityResolver(repos.teams, repos.leagues, a.caches.Identities, cfg.AggregatorMaxParallel, usecaseLogger)
	scoring := usecase.NewScoringFetcher(provider, a.caches.Scoring, cfg.ScoringTimeout, cfg.AggregatorMaxParallel, usecaseLogger)
	players := usecase.NewPlayerResolver(
		a.caches.PlayerNames,
		usecase.DefaultPlayerNameStrategies(repos.players, cfg.PlayerLookupBatchSize, a.caches.Directory, directorySource, cfg.ScoringDirectoryTimeout),
		usecaseLogger,
	)
	reconciler := usecase.NewReconciler(identities, scoring, players, usecaseLogger)

	a.service = usecase.NewMatchupService(
		repos.matchups,
		identities,
		scoring,
		players,
		reconciler,
		a.caches,
		id.NewUUIDGenerator(),
		usecase.MatchupServiceConfig{
			MaxParallel:    cfg.AggregatorMaxParallel,
			MatchupWorkers: cfg.AggregatorMatchupWorkers,
		},
		usecaseLogger,
	)

	return a, nil
}

func (a *App) Service() *usecase.MatchupService {
	return a.service
}

// StartBackground runs cache sweeping until ctx is done.
func (a *App) StartBackground(ctx context.Context) {
	cache.StartSweeper(ctx, a.cfg.CacheSweepInterval, a.logger.Named("cache"), a.caches.Sweepables()...)
}

func (a *App) Handler() http.Handler {
	handler := httpapi.NewHandler(a.service, a.logger.Named("httpapi"))
	return httpapi.NewRouter(handler, a.logger.Named("httpapi"), a.cfg.CORSAllowedOrigins, a.cfg.InternalAdminToken)
}

func (a *App) HTTPServer() (*http.Server, error) {
	if a.cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      a.Handler(),
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	}, nil
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
