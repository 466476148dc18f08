package main

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/riskibarqy/fantasy-matchups/internal/domain/matchup"
	"github.com/riskibarqy/fantasy-matchups/internal/usecase"
)

const byeLabel = "BYE"

func writeJSON(w io.Writer, v any) error {
	enc := sonic.ConfigStd.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeWeekTable(w io.Writer, report usecase.WeekReport, useColors bool) error {
	highlight, dim := fmt.Sprint, fmt.Sprint
	if useColors {
		highlight = color.New(color.FgGreen, color.Bold).SprintFunc()
		dim = color.New(color.FgYellow).SprintFunc()
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Matchup", "Status", "Team 1", "Pts", "Team 2", "Pts", "Notes"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	rows := make([][]string, 0, len(report.Matchups))
	for _, item := range sortedMatchups(report.Matchups) {
		team1Name, team1Pts := item.Team1.Identity.TeamName, formatPoints(item.Team1.TotalPoints)
		team2Name, team2Pts := byeLabel, "-"
		if item.Team2 != nil {
			team2Name, team2Pts = item.Team2.Identity.TeamName, formatPoints(item.Team2.TotalPoints)
		}

		if item.Winner != nil {
			if item.Winner.TeamID == item.Team1.Identity.TeamID {
				team1Name, team1Pts = highlight(team1Name), highlight(team1Pts)
			} else {
				team2Name, team2Pts = highlight(team2Name), highlight(team2Pts)
			}
		}

		rows = append(rows, []string{
			strconv.FormatInt(item.MatchupID, 10),
			string(item.Status),
			team1Name,
			team1Pts,
			team2Name,
			team2Pts,
			dim(matchupNotes(item)),
		})
	}

	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Week %d: %d of %d matchups (run %s, %dms)\n",
		report.Week, len(report.Matchups), report.ExpectedCount, report.RunID, report.DurationMs)
	if err != nil {
		return err
	}
	for _, failure := range report.Failures {
		if _, err := fmt.Fprintf(w, "  skipped matchup %d at %s: %s\n", failure.MatchupID, failure.Stage, failure.Reason); err != nil {
			return err
		}
	}
	return nil
}

func writeCacheStatsTable(w io.Writer, stats usecase.CacheStatistics) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Cache", "Entries", "Approx Bytes", "TTL"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	rows := make([][]string, 0, len(stats.Caches)+1)
	for _, item := range stats.Caches {
		rows = append(rows, []string{
			item.Name,
			strconv.Itoa(item.Entries),
			strconv.FormatInt(item.ApproxBytes, 10),
			item.TTL.String(),
		})
	}
	rows = append(rows, []string{"total", strconv.Itoa(stats.TotalEntries), strconv.FormatInt(stats.ApproxBytes, 10), ""})

	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func matchupNotes(item matchup.Aggregated) string {
	var notes []string
	if item.IsPlayoff {
		notes = append(notes, "playoff")
	}
	if item.Winner == nil && item.Team2 != nil && (item.DataQuality == nil || item.DataQuality.BothTeamsHaveData) {
		notes = append(notes, "tie")
	}
	if item.DataQuality != nil {
		notes = append(notes, item.DataQuality.Warnings...)
	}
	return strings.Join(notes, "; ")
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func sortedMatchups(items []matchup.Aggregated) []matchup.Aggregated {
	out := slices.Clone(items)
	slices.SortFunc(out, func(a, b matchup.Aggregated) int {
		return cmp.Compare(a.MatchupID, b.MatchupID)
	})
	return out
}
