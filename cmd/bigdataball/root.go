package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonnyRank/bigdataball-data/internal/app"
	"github.com/JonnyRank/bigdataball-data/internal/config"
	"github.com/JonnyRank/bigdataball-data/internal/platform/logging"
)

// runtime carries state shared by the subcommands of one invocation.
type runtime struct {
	jsonOutput bool

	cfg    config.Config
	logger *logging.Logger
}

func newRootCommand() *cobra.Command {
	rt := &runtime{}

	root := &cobra.Command{
		Use:          "bigdataball",
		Short:        "Ingest BigDataBall NBA logs and build season summaries",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			rt.cfg = cfg
			rt.logger = logging.New(logging.Options{
				Level:  cfg.LogLevel,
				Format: cfg.LogFormat,
				File:   cfg.LogFile,
				Output: os.Stderr,
			})
			logging.SetDefault(rt.logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.logger != nil {
				_ = rt.logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVar(&rt.jsonOutput, "json", false, "Print results as JSON")

	root.AddCommand(
		authCommand(rt),
		syncCommand(rt),
		ingestCommand(rt),
		summarizeCommand(rt),
		exportCommand(rt),
		slateCommand(rt),
		renamePlayerCommand(rt),
		pipelineCommand(rt),
		serveCommand(rt),
	)
	return root
}

// withApp wires the application for one command and releases it afterwards.
func (rt *runtime) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	a, err := app.New(ctx, rt.cfg, rt.logger)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	defer func() {
		if err := a.Close(context.WithoutCancel(ctx)); err != nil {
			rt.logger.WarnContext(ctx, "shutdown incomplete", "error", err)
		}
	}()
	return fn(ctx, a)
}
