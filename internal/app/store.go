package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/fantasy-matchups/internal/config"
	"github.com/riskibarqy/fantasy-matchups/internal/domain/league"
	"github.com/riskibarqy/fantasy-matchups/internal/domain/matchup"
	"github.com/riskibarqy/fantasy-matchups/internal/domain/player"
	"github.com/riskibarqy/fantasy-matchups/internal/domain/team"
	"github.com/riskibarqy/fantasy-matchups/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-matchups/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-matchups/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const (
	dbMaxOpenConns    = 20
	dbMaxIdleConns    = 5
	dbConnMaxLifetime = 30 * time.Minute
	dbPingTimeout     = 5 * time.Second
)

// repositories are the read-only ports the pipeline consumes.
type repositories struct {
	leagues  league.Repository
	teams    team.Repository
	matchups matchup.Repository
	players  player.Repository
	close    func() error
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		logger.Info("store opened", "driver", cfg.StoreDriver, "db_name", dbNameFromURL(cfg.DBURL))
		return repositories{
			leagues:  postgres.NewLeagueRepository(db),
			teams:    postgres.NewTeamRepository(db),
			matchups: postgres.NewMatchupRepository(db),
			players:  postgres.NewPlayerRepository(db),
			close:    db.Close,
		}, nil
	case config.StoreDriverMemory, "":
		logger.Info("store opened", "driver", config.StoreDriverMemory)
		return newMemoryRepositories(), nil
	default:
		return repositories{}, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}

func newMemoryRepositories() repositories {
	return repositories{
		leagues:  memory.NewLeagueRepository(memory.SeedConferences(), memory.SeedSeasons()),
		teams:    memory.NewTeamRepository(memory.SeedTeams(), memory.SeedRosterAssignments()),
		matchups: memory.NewMatchupRepository(memory.SeedMatchups()),
		players:  memory.NewPlayerRepository(memory.SeedPlayers()),
		close:    func() error { return nil },
	}
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	db.SetConnMaxLifetime(dbConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}
