package memory

import (
	"github.com/riskibarqy/fantasy-matchups/internal/domain/league"
	"github.com/riskibarqy/fantasy-matchups/internal/domain/matchup"
	"github.com/riskibarqy/fantasy-matchups/internal/domain/player"
	"github.com/riskibarqy/fantasy-matchups/internal/domain/team"
)

const (
	SeasonID2024 int64 = 1

	ConferenceIDLegends int64 = 1
	ConferenceIDRookies int64 = 2

	ExternalLeagueLegends = "1048201735512010752"
	ExternalLeagueRookies = "1048201735512010753"
)

func SeedSeasons() []league.Season {
	return []league.Season{
		{ID: SeasonID2024, Year: 2024, IsCurrent: true},
	}
}

func SeedConferences() []league.Conference {
	return []league.Conference{
		{ID: ConferenceIDLegends, Name: "Legends", ExternalLeagueID: ExternalLeagueLegends, SeasonID: SeasonID2024},
		{ID: ConferenceIDRookies, Name: "Rookies", ExternalLeagueID: ExternalLeagueRookies, SeasonID: SeasonID2024},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: 10, Name: "Gridiron Gang", OwnerName: "Alex", OwnerID: "u-10"},
		{ID: 11, Name: "Blitz Brigade", OwnerName: "Sam", OwnerID: "u-11"},
		{ID: 12, Name: "Hail Mary Heroes", OwnerName: "Jordan", OwnerID: "u-12"},
		{ID: 13, Name: "Pocket Passers", OwnerName: "Riley", OwnerID: "u-13"},
		{ID: 20, Name: "Red Zone Raiders", OwnerName: "Casey", OwnerID: "u-20"},
		{ID: 21, Name: "Fourth Down Few", OwnerName: "Morgan", OwnerID: "u-21"},
	}
}

func SeedRosterAssignments() []team.RosterAssignment {
	return []team.RosterAssignment{
		{TeamID: 10, ConferenceID: ConferenceIDLegends, ExternalRosterID: "1", IsActive: true},
		{TeamID: 11, ConferenceID: ConferenceIDLegends, ExternalRosterID: "2", IsActive: true},
		{TeamID: 12, ConferenceID: ConferenceIDLegends, ExternalRosterID: "3", IsActive: true},
		{TeamID: 13, ConferenceID: ConferenceIDLegends, ExternalRosterID: "9", IsActive: false},
		{TeamID: 13, ConferenceID: ConferenceIDLegends, ExternalRosterID: "4", IsActive: true},
		{TeamID: 20, ConferenceID: ConferenceIDRookies, ExternalRosterID: "1", IsActive: true},
		{TeamID: 21, ConferenceID: ConferenceIDRookies, ExternalRosterID: "2", IsActive: true},
	}
}

func SeedMatchups() []matchup.Record {
	return []matchup.Record{
		{ID: 501, Week: 5, ConferenceID: ConferenceIDLegends, Team1ID: 10, Team2ID: 11, Status: matchup.StatusFinal},
		{ID: 502, Week: 5, ConferenceID: ConferenceIDLegends, Team1ID: 12, Team2ID: 13, Status: matchup.StatusFinal},
		{ID: 503, Week: 5, ConferenceID: ConferenceIDRookies, Team1ID: 20, Team2ID: 21, Status: matchup.StatusFinal},
		{
			ID:                601,
			Week:              6,
			ConferenceID:      ConferenceIDLegends,
			Team1ID:           10,
			Team2ID:           20,
			Team2ConferenceID: ConferenceIDRookies,
			IsInterConference: true,
			Status:            matchup.StatusScheduled,
		},
		{ID: 602, Week: 6, ConferenceID: ConferenceIDLegends, Team1ID: 11, Team2ID: 12, Status: matchup.StatusScheduled},
		{ID: 603, Week: 6, ConferenceID: ConferenceIDLegends, Team1ID: 13, Status: matchup.StatusScheduled},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ExternalID: "4046", FirstName: "Patrick", LastName: "Mahomes", Position: "QB", NFLTeam: "KC"},
		{ExternalID: "4034", FirstName: "Christian", LastName: "McCaffrey", Position: "RB", NFLTeam: "SF"},
		{ExternalID: "6794", FirstName: "Justin", LastName: "Jefferson", Position: "WR", NFLTeam: "MIN"},
		{ExternalID: "4881", FirstName: "Lamar", LastName: "Jackson", Position: "QB", NFLTeam: "BAL"},
		{ExternalID: "4866", FirstName: "Saquon", LastName: "Barkley", Position: "RB", NFLTeam: "PHI"},
		{ExternalID: "1466", FirstName: "Travis", LastName: "Kelce", Position: "TE", NFLTeam: "KC"},
		{ExternalID: "KC", DisplayName: "Kansas City Chiefs", Position: "DEF", NFLTeam: "KC"},
	}
}
