package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-matchups/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StoreDriver != StoreDriverMemory {
		t.Fatalf("unexpected store driver: %q", cfg.StoreDriver)
	}
	if cfg.ScoringTimeout != 10*time.Second {
		t.Fatalf("unexpected scoring timeout: %s", cfg.ScoringTimeout)
	}
	if cfg.ScoringDirectoryTimeout != 20*time.Second {
		t.Fatalf("expected directory timeout to double scoring timeout, got %s", cfg.ScoringDirectoryTimeout)
	}
	if cfg.CachePlayerTTL != 30*time.Minute || cfg.CacheTeamTTL != 15*time.Minute ||
		cfg.CacheScoringTTL != 5*time.Minute || cfg.CacheDirectoryTTL != 60*time.Minute {
		t.Fatalf("unexpected cache ttls: %+v", cfg)
	}
	if cfg.AggregatorMaxParallel != 8 || cfg.AggregatorMatchupWorkers != 16 {
		t.Fatalf("unexpected aggregator sizing: %d/%d", cfg.AggregatorMaxParallel, cfg.AggregatorMatchupWorkers)
	}
	if cfg.PlayerLookupBatchSize != 200 {
		t.Fatalf("unexpected player lookup batch size: %d", cfg.PlayerLookupBatchSize)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
}

func TestLoad_DirectoryTimeoutFollowsScoringTimeout(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SCORING_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ScoringDirectoryTimeout != 6*time.Second {
		t.Fatalf("unexpected directory timeout: %s", cfg.ScoringDirectoryTimeout)
	}
}

func TestLoad_StoreDriverValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORE_DRIVER", "mongo")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown STORE_DRIVER")
	}
}

func TestLoad_RejectsNonPositiveCacheTTL(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CACHE_SCORING_TTL", "0s")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero CACHE_SCORING_TTL")
	}
}

func TestLoad_SnapshotTTLFollowsDirectoryTTL(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PlayerDirectorySnapshotTTL != cfg.CacheDirectoryTTL {
		t.Fatalf("expected snapshot ttl %s, got %s", cfg.CacheDirectoryTTL, cfg.PlayerDirectorySnapshotTTL)
	}

	t.Setenv("CACHE_DIRECTORY_TTL", "20m")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PlayerDirectorySnapshotTTL != 20*time.Minute {
		t.Fatalf("unexpected snapshot ttl: %s", cfg.PlayerDirectorySnapshotTTL)
	}
}

func TestLoad_RejectsSnapshotTTLAboveDirectoryTTL(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CACHE_DIRECTORY_TTL", "60m")
	t.Setenv("PLAYER_DIRECTORY_SNAPSHOT_TTL", "6h")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for snapshot ttl above directory ttl")
	}
}

func TestLoad_SweepIntervalZeroDisables(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CACHE_SWEEP_INTERVAL", "0s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.CacheSweepInterval != 0 {
		t.Fatalf("expected sweep interval 0, got %s", cfg.CacheSweepInterval)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "uptrace-dsn='https://token@api.uptrace.dev/1'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_ScoringCircuitValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SCORING_CIRCUIT_FAILURE_COUNT", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for SCORING_CIRCUIT_FAILURE_COUNT=0")
	}
}
