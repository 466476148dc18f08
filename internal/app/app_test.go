package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-matchups/internal/config"
	"github.com/riskibarqy/fantasy-matchups/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-matchups/internal/platform/logging"
	"github.com/riskibarqy/fantasy-matchups/internal/usecase"
)

type seededProvider struct {
	byLeague map[string][]usecase.ScoringSnapshot
}

func (p seededProvider) FetchMatchups(_ context.Context, leagueID string, _ int) ([]usecase.ScoringSnapshot, error) {
	return p.byLeague[leagueID], nil
}

func (p seededProvider) FetchPlayerDirectory(context.Context) (usecase.PlayerDirectory, error) {
	return usecase.PlayerDirectory{"9999": "Directory Player"}, nil
}

func points(v float64) *float64 { return &v }

func snapshot(rosterID string, total float64) usecase.ScoringSnapshot {
	return usecase.ScoringSnapshot{
		ExternalRosterID: rosterID,
		Starters:         []string{"4046", "9999"},
		StarterPoints:    []float64{total - 10, 10},
		AllPlayers:       []string{"4046", "9999", "1466"},
		PlayerPoints:     map[string]float64{"4046": total - 10, "9999": 10, "1466": 4},
		Points:           points(total),
	}
}

func testConfig() config.Config {
	return config.Config{
		ServiceName:              "fantasy-matchups-api",
		HTTPAddr:                 ":0",
		StoreDriver:              config.StoreDriverMemory,
		CORSAllowedOrigins:       []string{"*"},
		InternalAdminToken:       "admin-secret",
		ScoringTimeout:           time.Second,
		ScoringDirectoryTimeout:  2 * time.Second,
		AggregatorMaxParallel:    4,
		AggregatorMatchupWorkers: 4,
		PlayerLookupBatchSize:    50,
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()

	provider := seededProvider{byLeague: map[string][]usecase.ScoringSnapshot{
		memory.ExternalLeagueLegends: {
			snapshot("1", 110.4),
			snapshot("2", 98.2),
			snapshot("3", 87.5),
			snapshot("4", 91),
		},
		memory.ExternalLeagueRookies: {
			snapshot("1", 70),
			snapshot("2", 70),
		},
	}}

	a, err := New(context.Background(), testConfig(), logging.NewNop(), Options{Provider: provider})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() {
		if err := a.Close(); err != nil {
			t.Fatalf("close app: %v", err)
		}
	})
	return a
}

func TestApp_WeekMatchupsOverHTTP(t *testing.T) {
	a := newTestApp(t)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/weeks/5/matchups", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data struct {
			Matchups []struct {
				MatchupID int64 `json:"matchupId"`
				Team1     struct {
					TotalPoints float64 `json:"totalPoints"`
				} `json:"team1"`
				Winner *struct {
					TeamID int64 `json:"teamId"`
				} `json:"winner"`
			} `json:"matchups"`
		} `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	got := body.Data.Matchups
	if len(got) != 3 {
		t.Fatalf("expected 3 matchups, got %d", len(got))
	}
	if got[0].MatchupID != 501 || got[1].MatchupID != 502 || got[2].MatchupID != 503 {
		t.Fatalf("expected matchups sorted by id, got %+v", got)
	}
	if got[0].Winner == nil || got[0].Winner.TeamID != 10 || got[0].Team1.TotalPoints != 110.4 {
		t.Fatalf("unexpected first matchup: %+v", got[0])
	}
	if got[1].Winner == nil || got[1].Winner.TeamID != 13 {
		t.Fatalf("expected team 13 to win matchup 502, got %+v", got[1].Winner)
	}
	if got[2].Winner != nil {
		t.Fatalf("expected tie in matchup 503 to have no winner")
	}
}

func TestApp_CacheStatsAfterRun(t *testing.T) {
	a := newTestApp(t)

	if _, err := a.Service().AggregateWeek(context.Background(), 5); err != nil {
		t.Fatalf("aggregate week: %v", err)
	}

	stats := a.Service().CacheStatistics()
	if stats.TotalEntries == 0 {
		t.Fatalf("expected caches to be populated after a run")
	}

	removed, err := a.Service().ClearCaches(context.Background(), usecase.CacheScopeAll)
	if err != nil {
		t.Fatalf("clear caches: %v", err)
	}
	if removed != stats.TotalEntries {
		t.Fatalf("expected %d removed, got %d", stats.TotalEntries, removed)
	}
}

func TestApp_HTTPServerRequiresAddr(t *testing.T) {
	a := newTestApp(t)
	a.cfg.HTTPAddr = ""

	if _, err := a.HTTPServer(); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}
