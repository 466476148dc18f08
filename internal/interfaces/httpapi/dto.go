package httpapi

import (
	"sort"

	"github.com/riskibarqy/fantasy-matchups/internal/domain/matchup"
	"github.com/riskibarqy/fantasy-matchups/internal/usecase"
)

type teamIdentityDTO struct {
	TeamID           int64  `json:"teamId"`
	TeamName         string `json:"teamName"`
	OwnerName        string `json:"ownerName,omitempty"`
	ConferenceID     int64  `json:"conferenceId"`
	ConferenceName   string `json:"conferenceName,omitempty"`
	ExternalLeagueID string `json:"externalLeagueId,omitempty"`
	ExternalRosterID string `json:"externalRosterId,omitempty"`
	SeasonYear       int    `json:"seasonYear,omitempty"`
}

type playerLineDTO struct {
	PlayerID string  `json:"playerId"`
	Name     string  `json:"name"`
	Points   float64 `json:"points"`
}

type teamViewDTO struct {
	Identity    teamIdentityDTO `json:"identity"`
	Starters    []playerLineDTO `json:"starters"`
	Bench       []playerLineDTO `json:"bench"`
	TotalPoints float64         `json:"totalPoints"`
}

type winnerDTO struct {
	TeamID   int64   `json:"teamId"`
	TeamName string  `json:"teamName"`
	Margin   float64 `json:"margin"`
}

type dataQualityDTO struct {
	Team1Complete     bool     `json:"team1Complete"`
	Team2Complete     bool     `json:"team2Complete"`
	BothTeamsHaveData bool     `json:"bothTeamsHaveData"`
	HasScoringData    bool     `json:"hasScoringData"`
	HasStarterData    bool     `json:"hasStarterData"`
	Warnings          []string `json:"warnings"`
}

type matchupDTO struct {
	MatchupID         int64           `json:"matchupId"`
	Week              int             `json:"week"`
	IsPlayoff         bool            `json:"isPlayoff"`
	Status            string          `json:"status"`
	IsInterConference bool            `json:"isInterConference"`
	Team1             teamViewDTO     `json:"team1"`
	Team2             *teamViewDTO    `json:"team2"`
	Winner            *winnerDTO      `json:"winner,omitempty"`
	DataQuality       *dataQualityDTO `json:"dataQuality,omitempty"`
}

type matchupFailureDTO struct {
	MatchupID int64  `json:"matchupId"`
	Stage     string `json:"stage"`
	Reason    string `json:"reason"`
}

type weekMatchupsDTO struct {
	RunID         string              `json:"runId"`
	Week          int                 `json:"week"`
	ExpectedCount int                 `json:"expectedCount"`
	Partial       bool                `json:"partial"`
	DurationMs    int64               `json:"durationMs"`
	Matchups      []matchupDTO        `json:"matchups"`
	Failures      []matchupFailureDTO `json:"failures,omitempty"`
}

type cacheStatsItemDTO struct {
	Name        string `json:"name"`
	Entries     int    `json:"entries"`
	ApproxBytes int64  `json:"approxBytes"`
	TTLSeconds  int64  `json:"ttlSeconds"`
}

type cacheStatsDTO struct {
	Caches       []cacheStatsItemDTO `json:"caches"`
	TotalEntries int                 `json:"totalEntries"`
	ApproxBytes  int64               `json:"approxBytes"`
}

type clearCacheDTO struct {
	Scope   string `json:"scope"`
	Removed int    `json:"removed"`
}

// WeekPayload renders a report exactly as GET /v1/weeks/{week}/matchups
// returns it in the data field, matchups sorted by id.
func WeekPayload(report usecase.WeekReport) any {
	return toWeekMatchupsDTO(report)
}

// CacheStatsPayload is the data field of GET /v1/cache/stats.
func CacheStatsPayload(stats usecase.CacheStatistics) any {
	return toCacheStatsDTO(stats)
}

func toWeekMatchupsDTO(report usecase.WeekReport) weekMatchupsDTO {
	out := weekMatchupsDTO{
		RunID:         report.RunID,
		Week:          report.Week,
		ExpectedCount: report.ExpectedCount,
		Partial:       report.Partial(),
		DurationMs:    report.DurationMs,
		Matchups:      make([]matchupDTO, 0, len(report.Matchups)),
	}
	for _, item := range report.Matchups {
		out.Matchups = append(out.Matchups, toMatchupDTO(item))
	}
	sort.Slice(out.Matchups, func(i, j int) bool {
		return out.Matchups[i].MatchupID < out.Matchups[j].MatchupID
	})
	for _, failure := range report.Failures {
		out.Failures = append(out.Failures, matchupFailureDTO{
			MatchupID: failure.MatchupID,
			Stage:     failure.Stage,
			Reason:    failure.Reason,
		})
	}
	return out
}

func toMatchupDTO(item matchup.Aggregated) matchupDTO {
	out := matchupDTO{
		MatchupID:         item.MatchupID,
		Week:              item.Week,
		IsPlayoff:         item.IsPlayoff,
		Status:            string(item.Status),
		IsInterConference: item.IsInterConference,
		Team1:             toTeamViewDTO(item.Team1),
	}
	if item.Team2 != nil {
		team2 := toTeamViewDTO(*item.Team2)
		out.Team2 = &team2
	}
	if item.Winner != nil {
		out.Winner = &winnerDTO{
			TeamID:   item.Winner.TeamID,
			TeamName: item.Winner.TeamName,
			Margin:   item.Winner.Margin,
		}
	}
	if dq := item.DataQuality; dq != nil {
		warnings := dq.Warnings
		if warnings == nil {
			warnings = []string{}
		}
		out.DataQuality = &dataQualityDTO{
			Team1Complete:     dq.Team1Complete,
			Team2Complete:     dq.Team2Complete,
			BothTeamsHaveData: dq.BothTeamsHaveData,
			HasScoringData:    dq.HasScoringData,
			HasStarterData:    dq.HasStarterData,
			Warnings:          warnings,
		}
	}
	return out
}

func toTeamViewDTO(view matchup.TeamView) teamViewDTO {
	return teamViewDTO{
		Identity: teamIdentityDTO{
			TeamID:           view.Identity.TeamID,
			TeamName:         view.Identity.TeamName,
			OwnerName:        view.Identity.OwnerName,
			ConferenceID:     view.Identity.ConferenceID,
			ConferenceName:   view.Identity.ConferenceName,
			ExternalLeagueID: view.Identity.ExternalLeagueID,
			ExternalRosterID: view.Identity.ExternalRosterID,
			SeasonYear:       view.Identity.SeasonYear,
		},
		Starters:    toPlayerLineDTOs(view.Starters),
		Bench:       toPlayerLineDTOs(view.Bench),
		TotalPoints: view.TotalPoints,
	}
}

func toPlayerLineDTOs(lines []matchup.PlayerLine) []playerLineDTO {
	out := make([]playerLineDTO, 0, len(lines))
	for _, line := range lines {
		out = append(out, playerLineDTO{PlayerID: line.PlayerID, Name: line.Name, Points: line.Points})
	}
	return out
}

func toCacheStatsDTO(stats usecase.CacheStatistics) cacheStatsDTO {
	out := cacheStatsDTO{
		Caches:       make([]cacheStatsItemDTO, 0, len(stats.Caches)),
		TotalEntries: stats.TotalEntries,
		ApproxBytes:  stats.ApproxBytes,
	}
	for _, item := range stats.Caches {
		out.Caches = append(out.Caches, cacheStatsItemDTO{
			Name:        item.Name,
			Entries:     item.Entries,
			ApproxBytes: item.ApproxBytes,
			TTLSeconds:  int64(item.TTL.Seconds()),
		})
	}
	return out
}
