package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/JonnyRank/bigdataball-data/db"
	"github.com/JonnyRank/bigdataball-data/internal/config"
	"github.com/JonnyRank/bigdataball-data/internal/platform/database"
	"github.com/JonnyRank/bigdataball-data/internal/platform/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "migration",
		Short:        "Apply or inspect the schema migrations of the BigDataBall store",
		Long:         "Reads DB_DRIVER and DB_URL the same way the bigdataball command does.",
		SilenceUsage: true,
	}
	root.AddCommand(
		upCommand(),
		downCommand(),
		versionCommand(),
		forceCommand(),
		gotoCommand(),
	)
	return root
}

func upCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(m *migrate.Migrate, logger *logging.Logger) error {
				if err := ignoreNoChange(m.Up(), logger); err != nil {
					return fmt.Errorf("apply migrations: %w", err)
				}
				logger.Info("migrations applied")
				return nil
			})
		},
	}
}

func downCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back the latest migrations, one unless steps is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := parseSteps(args)
			if err != nil {
				return err
			}
			return withMigrator(cmd, func(m *migrate.Migrate, logger *logging.Logger) error {
				if err := ignoreNoChange(m.Steps(-steps), logger); err != nil {
					return fmt.Errorf("roll back %d migration(s): %w", steps, err)
				}
				logger.Info("migrations rolled back", "steps", steps)
				return nil
			})
		},
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(m *migrate.Migrate, _ *logging.Logger) error {
				version, dirty, err := m.Version()
				switch {
				case errors.Is(err, migrate.ErrNilVersion):
					fmt.Fprintln(cmd.OutOrStdout(), "version: none")
					fmt.Fprintln(cmd.OutOrStdout(), "dirty: false")
					return nil
				case err != nil:
					return fmt.Errorf("read version: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version: %d\n", version)
				fmt.Fprintf(cmd.OutOrStdout(), "dirty: %t\n", dirty)
				return nil
			})
		},
	}
}

func forceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "force <version>",
		Short: "Mark version as applied and clear the dirty flag without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := parseVersion(args[0])
			if err != nil {
				return err
			}
			return withMigrator(cmd, func(m *migrate.Migrate, logger *logging.Logger) error {
				if err := m.Force(version); err != nil {
					return fmt.Errorf("force version %d: %w", version, err)
				}
				logger.Info("schema version forced", "version", version)
				return nil
			})
		},
	}
}

func gotoCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "goto <version>",
		Aliases: []string{"migrate"},
		Short:   "Migrate up or down to version",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parseTarget(args[0])
			if err != nil {
				return err
			}
			return withMigrator(cmd, func(m *migrate.Migrate, logger *logging.Logger) error {
				if err := ignoreNoChange(m.Migrate(target), logger); err != nil {
					return fmt.Errorf("migrate to version %d: %w", target, err)
				}
				logger.Info("schema migrated", "version", target)
				return nil
			})
		},
	}
}

// withMigrator opens the configured store, hands its migrator to fn and
// closes both afterwards.
func withMigrator(cmd *cobra.Command, fn func(m *migrate.Migrate, logger *logging.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stderr,
	}).With("driver", cfg.DBDriver)
	defer func() {
		_ = logger.Sync()
	}()

	if cfg.DBDriver == config.DriverSQLite && !strings.Contains(cfg.DBURL, "memory") {
		if err := os.MkdirAll(filepath.Dir(strings.TrimPrefix(cfg.DBURL, "file:")), 0o755); err != nil {
			return fmt.Errorf("create database dir: %w", err)
		}
	}

	conn, err := database.Open(cmd.Context(), cfg.DBDriver, cfg.DBURL)
	if err != nil {
		return err
	}
	m, err := database.NewMigrator(conn, cfg.DBDriver, db.Migrations, "migrations")
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err := errors.Join(srcErr, dbErr); err != nil {
			logger.Warn("close migrator", "error", err)
		}
	}()

	return fn(m, logger)
}

func ignoreNoChange(err error, logger *logging.Logger) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("version must be >= 0")
	}
	return value, nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(value), nil
}
