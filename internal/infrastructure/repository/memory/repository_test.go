package memory

import (
	"context"
	"testing"
)

func TestTeamRepository_GetActiveRosterAssignment_SkipsInactive(t *testing.T) {
	t.Parallel()

	repo := NewTeamRepository(SeedTeams(), SeedRosterAssignments())
	got, ok, err := repo.GetActiveRosterAssignment(context.Background(), 13, ConferenceIDLegends)
	if err != nil {
		t.Fatalf("get roster assignment: %v", err)
	}
	if !ok {
		t.Fatalf("expected active assignment")
	}
	if got.ExternalRosterID != "4" {
		t.Fatalf("unexpected roster id: got=%s want=4", got.ExternalRosterID)
	}

	if _, ok, _ := repo.GetActiveRosterAssignment(context.Background(), 13, ConferenceIDRookies); ok {
		t.Fatalf("expected no assignment in other conference")
	}
}

func TestMatchupRepository_ListByWeek(t *testing.T) {
	t.Parallel()

	repo := NewMatchupRepository(SeedMatchups())
	items, err := repo.ListByWeek(context.Background(), 5)
	if err != nil {
		t.Fatalf("list matchups: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("unexpected matchup count: got=%d want=3", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i-1].ID > items[i].ID {
			t.Fatalf("expected matchups ordered by id")
		}
	}

	empty, err := repo.ListByWeek(context.Background(), 17)
	if err != nil {
		t.Fatalf("list empty week: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty week, got %d", len(empty))
	}
}

func TestPlayerRepository_FindByExternalIDs(t *testing.T) {
	t.Parallel()

	repo := NewPlayerRepository(SeedPlayers())
	items, err := repo.FindByExternalIDs(context.Background(), []string{"4046", "missing", "KC"})
	if err != nil {
		t.Fatalf("find players: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("unexpected player count: got=%d want=2", len(items))
	}
	if items[1].Name() != "Kansas City Chiefs" {
		t.Fatalf("unexpected name: %s", items[1].Name())
	}
}

func TestLeagueRepository_Lookups(t *testing.T) {
	t.Parallel()

	repo := NewLeagueRepository(SeedConferences(), SeedSeasons())
	conf, ok, err := repo.GetConferenceByID(context.Background(), ConferenceIDRookies)
	if err != nil || !ok {
		t.Fatalf("get conference: ok=%v err=%v", ok, err)
	}
	season, ok, err := repo.GetSeasonByID(context.Background(), conf.SeasonID)
	if err != nil || !ok {
		t.Fatalf("get season: ok=%v err=%v", ok, err)
	}
	if season.Year != 2024 {
		t.Fatalf("unexpected season year: %d", season.Year)
	}
}
