package main

import (
	"fmt"
	"strconv"

	"github.com/riskibarqy/fantasy-matchups/internal/app"
	"github.com/riskibarqy/fantasy-matchups/internal/interfaces/httpapi"
	"github.com/spf13/cobra"
)

func newWeekCmd(opts *cliOptions, factory appFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "week <n>",
		Short: "Show every aggregated matchup of a week",
		Example: `  matchups week 5
  matchups week 5 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, err := strconv.Atoi(args[0])
			if err != nil || week < 1 {
				return fmt.Errorf("week must be a positive integer, got %q", args[0])
			}

			return withApp(cmd, opts, factory, func(a *app.App) error {
				report, err := a.Service().AggregateWeek(cmd.Context(), week)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if opts.output == outputJSON {
					return writeJSON(out, httpapi.WeekPayload(report))
				}
				return writeWeekTable(out, report, !opts.noColor)
			})
		},
	}
}
