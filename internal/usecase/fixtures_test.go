package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-matchups/internal/domain/league"
	"github.com/riskibarqy/fantasy-matchups/internal/domain/matchup"
	"github.com/riskibarqy/fantasy-matchups/internal/domain/player"
	"github.com/riskibarqy/fantasy-matchups/internal/domain/team"
	"github.com/riskibarqy/fantasy-matchups/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-matchups/internal/platform/cache"
	"github.com/riskibarqy/fantasy-matchups/internal/platform/id"
	"github.com/riskibarqy/fantasy-matchups/internal/platform/logging"
)

const (
	testLeagueL1 = "L1"
	testLeagueL2 = "L2"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 10, 6, 18, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// fakeProvider serves canned league payloads and counts calls per league.
type fakeProvider struct {
	mu             sync.Mutex
	matchups       map[string][]ScoringSnapshot
	matchupErrs    map[string]error
	directory      PlayerDirectory
	directoryErr   error
	matchupCalls   map[string]int
	directoryCalls int
	delay          time.Duration
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		matchups:     make(map[string][]ScoringSnapshot),
		matchupErrs:  make(map[string]error),
		directory:    PlayerDirectory{},
		matchupCalls: make(map[string]int),
	}
}

func (p *fakeProvider) FetchMatchups(ctx context.Context, leagueID string, _ int) ([]ScoringSnapshot, error) {
	p.mu.Lock()
	p.matchupCalls[leagueID]++
	delay := p.delay
	snapshots, ok := p.matchups[leagueID]
	err := p.matchupErrs[leagueID]
	p.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return []ScoringSnapshot{}, nil
	}
	return snapshots, nil
}

func (p *fakeProvider) FetchPlayerDirectory(_ context.Context) (PlayerDirectory, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.directoryCalls++
	if p.directoryErr != nil {
		return nil, p.directoryErr
	}
	out := make(PlayerDirectory, len(p.directory))
	for k, v := range p.directory {
		out[k] = v
	}
	return out, nil
}

func (p *fakeProvider) calls(leagueID string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.matchupCalls[leagueID]
}

func (p *fakeProvider) directoryCallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.directoryCalls
}

type testStore struct {
	seasons     []league.Season
	conferences []league.Conference
	teams       []team.Team
	assignments []team.RosterAssignment
	records     []matchup.Record
	players     []player.Player
}

// scenarioStore is two conferences on two external leagues with three
// week-5 matchups in L1 and one in L2.
func scenarioStore() testStore {
	return testStore{
		seasons: []league.Season{{ID: 1, Year: 2024, IsCurrent: true}},
		conferences: []league.Conference{
			{ID: 1, Name: "Legends", ExternalLeagueID: testLeagueL1, SeasonID: 1},
			{ID: 2, Name: "Rookies", ExternalLeagueID: testLeagueL2, SeasonID: 1},
		},
		teams: []team.Team{
			{ID: 10, Name: "Gridiron Gang", OwnerName: "Alex"},
			{ID: 11, Name: "Blitz Brigade", OwnerName: "Sam"},
			{ID: 12, Name: "Hail Mary Heroes", OwnerName: "Jordan"},
			{ID: 13, Name: "Pocket Passers", OwnerName: "Riley"},
			{ID: 14, Name: "Sack Masters", OwnerName: "Quinn"},
			{ID: 15, Name: "Two Point Tries", OwnerName: "Avery"},
			{ID: 20, Name: "Red Zone Raiders", OwnerName: "Casey"},
		},
		assignments: []team.RosterAssignment{
			{TeamID: 10, ConferenceID: 1, ExternalRosterID: "3", IsActive: true},
			{TeamID: 11, ConferenceID: 1, ExternalRosterID: "7", IsActive: true},
			{TeamID: 12, ConferenceID: 1, ExternalRosterID: "1", IsActive: true},
			{TeamID: 13, ConferenceID: 1, ExternalRosterID: "2", IsActive: true},
			{TeamID: 14, ConferenceID: 1, ExternalRosterID: "4", IsActive: true},
			{TeamID: 15, ConferenceID: 1, ExternalRosterID: "5", IsActive: true},
			{TeamID: 20, ConferenceID: 2, ExternalRosterID: "1", IsActive: true},
		},
		records: []matchup.Record{
			{ID: 1, Week: 5, ConferenceID: 1, Team1ID: 10, Team2ID: 11, Status: matchup.StatusFinal},
			{ID: 2, Week: 5, ConferenceID: 1, Team1ID: 12, Team2ID: 13, Status: matchup.StatusFinal},
			{ID: 3, Week: 5, ConferenceID: 1, Team1ID: 14, Team2ID: 15, Status: matchup.StatusFinal},
		},
		players: []player.Player{
			{ExternalID: "4046", FirstName: "Patrick", LastName: "Mahomes"},
			{ExternalID: "4034", FirstName: "Christian", LastName: "McCaffrey"},
		},
	}
}

func points(v float64) *float64 {
	return &v
}

// scenarioProvider serves L1 week 5: roster 3 scores 110.4, roster 7 98.2.
func scenarioProvider() *fakeProvider {
	p := newFakeProvider()
	p.matchups[testLeagueL1] = []ScoringSnapshot{
		{
			ExternalRosterID: "3",
			Starters:         []string{"4046", "4034", "6794"},
			StarterPoints:    []float64{32.4, 40, 38},
			AllPlayers:       []string{"4046", "4034", "6794", "9999"},
			PlayerPoints:     map[string]float64{"4046": 32.4, "4034": 40, "6794": 38, "9999": 4.5},
			Points:           points(110.4),
		},
		{
			ExternalRosterID: "7",
			Starters:         []string{"4881", "4866"},
			StarterPoints:    []float64{50.1, 48.1},
			AllPlayers:       []string{"4881", "4866", "1466"},
			PlayerPoints:     map[string]float64{"4881": 50.1, "4866": 48.1, "1466": 7},
			Points:           points(98.2),
		},
		{ExternalRosterID: "1", Starters: []string{"1466"}, PlayerPoints: map[string]float64{"1466": 70}, Points: points(70)},
		{ExternalRosterID: "2", Starters: []string{"4881"}, PlayerPoints: map[string]float64{"4881": 60}, Points: points(60)},
		{ExternalRosterID: "4", Starters: []string{"4866"}, PlayerPoints: map[string]float64{"4866": 80}, Points: points(80)},
		{ExternalRosterID: "5", Starters: []string{"4034"}, PlayerPoints: map[string]float64{"4034": 81}, Points: points(81)},
	}
	p.matchups[testLeagueL2] = []ScoringSnapshot{
		{ExternalRosterID: "1", Starters: []string{"6794"}, PlayerPoints: map[string]float64{"6794": 90}, Points: points(90)},
	}
	p.directory = PlayerDirectory{
		"6794": "Justin Jefferson",
		"4881": "Lamar Jackson",
		"4866": "Saquon Barkley",
		"1466": "Travis Kelce",
	}
	return p
}

type testPipeline struct {
	service    *MatchupService
	caches     *Caches
	clock      *testClock
	provider   *fakeProvider
	identities *TeamIdentityResolver
	scoring    *ScoringFetcher
	players    *PlayerResolver
	reconciler *Reconciler
}

func newTestPipeline(store testStore, provider *fakeProvider) *testPipeline {
	return newTestPipelineWithRepos(
		memory.NewMatchupRepository(store.records),
		memory.NewTeamRepository(store.teams, store.assignments),
		memory.NewLeagueRepository(store.conferences, store.seasons),
		memory.NewPlayerRepository(store.players),
		provider,
	)
}

func newTestPipelineWithRepos(
	matchupRepo matchup.Repository,
	teamRepo team.Repository,
	leagueRepo league.Repository,
	playerRepo player.Repository,
	provider *fakeProvider,
) *testPipeline {
	clock := newTestClock()
	logger := logging.NewNop()
	caches := NewCaches(DefaultCacheTTLs(), cache.WithClock(clock.Now))

	identities := NewTeamIdentityResolver(teamRepo, leagueRepo, caches.Identities, 4, logger)
	scoring := NewScoringFetcher(provider, caches.Scoring, time.Second, 4, logger)
	players := NewPlayerResolver(
		caches.PlayerNames,
		DefaultPlayerNameStrategies(playerRepo, 2, caches.Directory, provider, time.Second),
		logger,
	)
	reconciler := NewReconciler(identities, scoring, players, logger)
	service := NewMatchupService(
		matchupRepo,
		identities,
		scoring,
		players,
		reconciler,
		caches,
		id.Static("run-test"),
		MatchupServiceConfig{MaxParallel: 4, MatchupWorkers: 2},
		logger,
	)

	return &testPipeline{
		service:    service,
		caches:     caches,
		clock:      clock,
		provider:   provider,
		identities: identities,
		scoring:    scoring,
		players:    players,
		reconciler: reconciler,
	}
}

func findMatchup(items []matchup.Aggregated, matchupID int64) (matchup.Aggregated, bool) {
	for _, item := range items {
		if item.MatchupID == matchupID {
			return item, true
		}
	}
	return matchup.Aggregated{}, false
}
