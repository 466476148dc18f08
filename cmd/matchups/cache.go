package main

import (
	"github.com/riskibarqy/fantasy-matchups/internal/app"
	"github.com/riskibarqy/fantasy-matchups/internal/interfaces/httpapi"
	"github.com/spf13/cobra"
)

func newCacheStatsCmd(opts *cliOptions, factory appFactory) *cobra.Command {
	var warmWeek int

	cmd := &cobra.Command{
		Use:   "cache-stats",
		Short: "Show pipeline cache sizes, optionally after warming them with one week",
		Example: `  matchups cache-stats --week 5
  matchups cache-stats --week 5 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, factory, func(a *app.App) error {
				if warmWeek > 0 {
					if _, err := a.Service().AggregateWeek(cmd.Context(), warmWeek); err != nil {
						return err
					}
				}

				stats := a.Service().CacheStatistics()
				out := cmd.OutOrStdout()
				if opts.output == outputJSON {
					return writeJSON(out, httpapi.CacheStatsPayload(stats))
				}
				return writeCacheStatsTable(out, stats)
			})
		},
	}

	cmd.Flags().IntVar(&warmWeek, "week", 0, "aggregate this week first so the caches are populated")

	return cmd
}
