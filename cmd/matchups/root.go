package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/riskibarqy/fantasy-matchups/internal/app"
	"github.com/riskibarqy/fantasy-matchups/internal/config"
	"github.com/riskibarqy/fantasy-matchups/internal/platform/logging"
	"github.com/spf13/cobra"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// cliOptions are the persistent flags shared by every subcommand.
type cliOptions struct {
	output  string
	noColor bool
	verbose bool
}

// appFactory builds the pipeline; tests swap it for a seeded one.
type appFactory func(ctx context.Context, logger *logging.Logger) (*app.App, error)

func defaultAppFactory(ctx context.Context, logger *logging.Logger) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return app.New(ctx, cfg, logger, app.Options{})
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(defaultAppFactory)
}

func newRootCmdWith(factory appFactory) *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:   "matchups",
		Short: "Aggregate fantasy football matchups for a week",
		Long: `Builds the weekly matchup view for every conference: team identities from
the store, live scoring from the league host, and player names from the
store with a directory fallback.

Configuration is read from the same environment variables as the API.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch opts.output {
			case outputTable, outputJSON:
				return nil
			default:
				return fmt.Errorf("invalid --output %q: valid values are %s, %s", opts.output, outputTable, outputJSON)
			}
		},
	}

	root.PersistentFlags().StringVarP(&opts.output, "output", "o", outputTable, "output format: table or json")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored table output")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log pipeline progress to stderr")

	root.AddCommand(newWeekCmd(opts, factory))
	root.AddCommand(newCacheStatsCmd(opts, factory))

	return root
}

func (o *cliOptions) logger(stderr io.Writer) *logging.Logger {
	if !o.verbose {
		return logging.NewNop()
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return logging.NewConsole(stderr, logging.LevelDebug)
}

func withApp(cmd *cobra.Command, opts *cliOptions, factory appFactory, fn func(a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := factory(ctx, opts.logger(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	return fn(a)
}
