package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JonnyRank/bigdataball-data/external/gdrive"
	"github.com/JonnyRank/bigdataball-data/internal/app"
	"github.com/JonnyRank/bigdataball-data/internal/domain/gamelog"
	"github.com/JonnyRank/bigdataball-data/internal/domain/summary"
	"github.com/JonnyRank/bigdataball-data/internal/usecase"
)

func authCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authorize read access to the BigDataBall Google Drive folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oauthCfg, err := gdrive.LoadOAuthConfig(rt.cfg.DriveCredentialsFile)
			if err != nil {
				return err
			}
			token, err := gdrive.Authorize(cmd.Context(), oauthCfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if err := gdrive.SaveToken(rt.cfg.DriveTokenFile, token); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Token saved to %s\n", rt.cfg.DriveTokenFile)
			return nil
		},
	}
}

func syncCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Download the newest feed files from Google Drive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd, func(ctx context.Context, a *app.App) error {
				result, err := a.Sync.Sync(ctx, a.Jobs())
				if reportErr := rt.report(cmd, result, func(w io.Writer) { printSync(w, result) }); reportErr != nil {
					return reportErr
				}
				return err
			})
		},
	}
}

func ingestCommand(rt *runtime) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Append new rows from the incoming folders and archive the files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories := []gamelog.Category{gamelog.CategoryFantasy, gamelog.CategoryPlayer}
			if category != "all" {
				c, err := gamelog.ParseCategory(category)
				if err != nil {
					return err
				}
				categories = []gamelog.Category{c}
			}

			return rt.withApp(cmd, func(ctx context.Context, a *app.App) error {
				results := make([]usecase.IngestResult, 0, len(categories))
				for _, c := range categories {
					folders := a.Folders(a.Config.Fantasy)
					if c == gamelog.CategoryPlayer {
						folders = a.Folders(a.Config.Player)
					}
					result, err := a.Ingestion.IngestFolder(ctx, c, folders)
					if err != nil {
						return fmt.Errorf("ingest %s: %w", c, err)
					}
					results = append(results, result)
				}
				return rt.report(cmd, results, func(w io.Writer) {
					for _, r := range results {
						printIngest(w, r)
					}
				})
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "all", "Log category to ingest: fantasy, player or all")
	return cmd
}

func summarizeCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize",
		Short: "Rebuild the season summary table and its views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd, func(ctx context.Context, a *app.App) error {
				result, err := a.Summaries.Rebuild(ctx)
				if err != nil {
					return err
				}
				return rt.report(cmd, result, func(w io.Writer) { printSummary(w, result) })
			})
		},
	}
}

func exportCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the season summary views to timestamped CSV files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd, func(ctx context.Context, a *app.App) error {
				files, err := a.Exports.ExportViews(ctx, summary.Views)
				if reportErr := rt.report(cmd, files, func(w io.Writer) { printFiles(w, files) }); reportErr != nil {
					return reportErr
				}
				return err
			})
		},
	}
}

func slateCommand(rt *runtime) *cobra.Command {
	var (
		input     usecase.SlateInput
		entries   string
		minGP     int
		writeCSV  bool
		writeView bool
	)

	cmd := &cobra.Command{
		Use:   "slate",
		Short: "Extract per-player averages for the players in a contest entries export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input.EntriesPath = entries
			if input.EntriesPath == "" {
				input.EntriesPath = rt.cfg.SlateEntriesPath
			}
			if input.PriorSeason == "" {
				input.PriorSeason = rt.cfg.SlatePriorSeason
			}
			if input.CurrentSeason == "" {
				input.CurrentSeason = rt.cfg.SlateCurrentSeason
			}
			input.MinPriorGP = rt.cfg.SlateMinPriorGP
			if cmd.Flags().Changed("min-prior-gp") {
				input.MinPriorGP = minGP
			}
			// Without an explicit choice write both outputs.
			input.WriteCSV = writeCSV || !writeView
			input.WriteView = writeView || !writeCSV

			return rt.withApp(cmd, func(ctx context.Context, a *app.App) error {
				result, err := a.Slates.Extract(ctx, input)
				if err != nil {
					return err
				}
				return rt.report(cmd, result, func(w io.Writer) { printSlate(w, result) })
			})
		},
	}
	cmd.Flags().StringVar(&entries, "entries", "", "Contest entries CSV (defaults to SLATE_ENTRIES_PATH)")
	cmd.Flags().StringVar(&input.PriorSeason, "prior", "", "Prior season key such as 2024-25")
	cmd.Flags().StringVar(&input.CurrentSeason, "current", "", "Current season key such as 2025-26")
	cmd.Flags().IntVar(&minGP, "min-prior-gp", 0, "Minimum prior-season games for a prior-season row")
	cmd.Flags().BoolVar(&writeCSV, "csv", false, "Write the averages CSV files")
	cmd.Flags().BoolVar(&writeView, "view", false, "Create the slate view")
	return cmd
}

func renamePlayerCommand(rt *runtime) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "rename-player",
		Short: "Correct a canonical player name in the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd, func(ctx context.Context, a *app.App) error {
				updated, err := a.Registry.Rename(ctx, from, to)
				if err != nil {
					return err
				}
				result := map[string]any{"from": from, "to": to, "updated": updated}
				return rt.report(cmd, result, func(w io.Writer) {
					fmt.Fprintf(w, "Renamed %q to %q (%d rows)\n", from, to, updated)
				})
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Current player name")
	cmd.Flags().StringVar(&to, "to", "", "New player name")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func pipelineCommand(rt *runtime) *cobra.Command {
	var skipSync, export bool

	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Run sync, ingestion, summary rebuild and export in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd, func(ctx context.Context, a *app.App) error {
				result, err := a.Pipeline.Run(ctx, usecase.PipelineInput{
					Jobs:     a.Jobs(),
					Fantasy:  a.Folders(a.Config.Fantasy),
					Player:   a.Folders(a.Config.Player),
					SkipSync: skipSync || !a.Config.DriveEnabled,
					Export:   export,
				})
				if reportErr := rt.report(cmd, result, func(w io.Writer) { printPipeline(w, result) }); reportErr != nil {
					return reportErr
				}
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&skipSync, "skip-sync", false, "Ingest what is already in the incoming folders")
	cmd.Flags().BoolVar(&export, "export", false, "Export the summary views to CSV after the rebuild")
	return cmd
}

func printSync(w io.Writer, r usecase.SyncResult) {
	fmt.Fprintf(w, "Sync: %d downloaded, %d skipped, %d failed\n", r.DownloadedCount, r.SkippedCount, r.FailedCount)
	for _, j := range r.Jobs {
		line := fmt.Sprintf("  %-12s %-10s %s", j.Job, j.Status, j.File)
		if j.Message != "" {
			line += " (" + j.Message + ")"
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

func printIngest(w io.Writer, r usecase.IngestResult) {
	fmt.Fprintf(w, "Ingest %s: %d files, %d rows inserted, %d duplicates, %d new players\n",
		r.Category, len(r.Files), r.Inserted, r.Duplicates, r.NewPlayers)
	for _, f := range r.Files {
		fmt.Fprintf(w, "  %s: %d rows, %d inserted\n", f.File, f.Rows, f.Inserted)
	}
}

func printSummary(w io.Writer, r usecase.RebuildResult) {
	fmt.Fprintf(w, "Summary: %d rows from %d records\n", r.Rows, r.Records)
	if r.Unclassified > 0 {
		fmt.Fprintf(w, "  unclassified season segments: %d (%s)\n", r.Unclassified, strings.Join(r.UnclassifiedSegments, ", "))
	}
	if r.BadDates > 0 {
		fmt.Fprintf(w, "  unparseable dates: %d\n", r.BadDates)
	}
	if r.UnmappedTeams > 0 {
		fmt.Fprintf(w, "  unmapped teams: %d\n", r.UnmappedTeams)
	}
	for _, v := range r.CreatedViews {
		fmt.Fprintf(w, "  view %s\n", v)
	}
	for v, msg := range r.FailedViews {
		fmt.Fprintf(w, "  view %s failed: %s\n", v, msg)
	}
}

func printSlate(w io.Writer, r usecase.SlateResult) {
	fmt.Fprintf(w, "Slate: %d entries, %d players (%s vs %s)\n", r.Entries, len(r.Players), r.PriorSeason, r.CurrentSeason)
	for _, m := range r.Renamed {
		fmt.Fprintf(w, "  matched %q -> %q (%d)\n", m.Query, m.Name, m.Score)
	}
	for _, m := range r.Rejected {
		fmt.Fprintf(w, "  no match for %q (best %q, %d)\n", m.Query, m.Name, m.Score)
	}
	printFiles(w, r.Files)
	if r.View != "" {
		fmt.Fprintf(w, "  view %s\n", r.View)
	}
}

func printPipeline(w io.Writer, r usecase.PipelineResult) {
	fmt.Fprintf(w, "Run %s (%d ms)\n", r.RunID, r.DurationMs)
	if r.Sync != nil {
		printSync(w, *r.Sync)
	}
	if r.Fantasy != nil {
		printIngest(w, *r.Fantasy)
	}
	if r.Player != nil {
		printIngest(w, *r.Player)
	}
	if r.Summary != nil {
		printSummary(w, *r.Summary)
	}
	printFiles(w, r.Exported)
}

func printFiles(w io.Writer, files []string) {
	for _, f := range files {
		fmt.Fprintf(w, "  wrote %s\n", f)
	}
}
