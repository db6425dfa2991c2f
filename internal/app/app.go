package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/JonnyRank/bigdataball-data/external/gdrive"
	"github.com/JonnyRank/bigdataball-data/internal/config"
	"github.com/JonnyRank/bigdataball-data/internal/domain/dataset"
	"github.com/JonnyRank/bigdataball-data/internal/domain/namematch"
	"github.com/JonnyRank/bigdataball-data/internal/domain/notification"
	"github.com/JonnyRank/bigdataball-data/internal/infrastructure/csvexport"
	"github.com/JonnyRank/bigdataball-data/internal/infrastructure/ingest"
	"github.com/JonnyRank/bigdataball-data/internal/infrastructure/notify"
	"github.com/JonnyRank/bigdataball-data/internal/infrastructure/repository/sqlstore"
	"github.com/JonnyRank/bigdataball-data/internal/observability"
	"github.com/JonnyRank/bigdataball-data/internal/platform/database"
	idgen "github.com/JonnyRank/bigdataball-data/internal/platform/id"
	"github.com/JonnyRank/bigdataball-data/internal/platform/logging"
	"github.com/JonnyRank/bigdataball-data/internal/usecase"
	crerr "github.com/cockroachdb/errors"
)

// App holds the wired services behind every command.
type App struct {
	Config config.Config
	Logger *logging.Logger
	DB     *sqlx.DB

	Sync      *usecase.SyncService
	Ingestion *usecase.IngestionService
	Summaries *usecase.SummaryService
	Exports   *usecase.ExportService
	Slates    *usecase.SlateService
	Registry  *usecase.RegistryService
	Pipeline  *usecase.PipelineService

	closers []func(context.Context) error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	a := &App{Config: cfg, Logger: logger}

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init uptrace: %w", err)
	}
	a.closers = append(a.closers, shutdownTracing)

	stopProfiling, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		_ = a.Close(ctx)
		return nil, fmt.Errorf("init pyroscope: %w", err)
	}
	a.closers = append(a.closers, func(context.Context) error { return stopProfiling() })

	if err := a.wire(ctx); err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	return a, nil
}

func (a *App) wire(ctx context.Context) error {
	cfg, logger := a.Config, a.Logger

	if cfg.DBDriver == config.DriverSQLite && !strings.Contains(cfg.DBURL, "memory") {
		if err := os.MkdirAll(filepath.Dir(strings.TrimPrefix(cfg.DBURL, "file:")), 0o755); err != nil {
			return fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := database.Open(ctx, cfg.DBDriver, cfg.DBURL)
	if err != nil {
		return err
	}
	a.DB = db
	a.closers = append(a.closers, func(context.Context) error { return db.Close() })

	if cfg.DBAutoMigrate {
		if err := database.Migrate(db, cfg.DBDriver); err != nil {
			return err
		}
	}

	catalog, err := ingest.LoadCatalog(cfg.ColumnMapFile)
	if err != nil {
		return err
	}

	logs := sqlstore.NewGamelogRepository(db)
	players := sqlstore.NewPlayerRepository(db)
	summaries := sqlstore.NewSummaryRepository(db)
	slates := sqlstore.NewSlateRepository(db)
	sink := csvexport.NewWriter(cfg.CSVExportDir)

	a.Sync = usecase.NewSyncService(a.driveSource(ctx), cfg.DriveMaxWorkers, logger)
	a.Ingestion = usecase.NewIngestionService(ingest.NewInbox(catalog), logs, players, logger)
	a.Summaries = usecase.NewSummaryService(logs, players, summaries, usecase.SummaryConfig{WindowDays: cfg.TrailingWindowDays}, logger)
	a.Exports = usecase.NewExportService(summaries, sink, logger)
	a.Slates = usecase.NewSlateService(slates, sink, namematch.NewResolver(cfg.MatchThreshold), logger)
	a.Registry = usecase.NewRegistryService(players, logger)

	notifier, err := a.notifier()
	if err != nil {
		return err
	}
	a.Pipeline = usecase.NewPipelineService(a.Sync, a.Ingestion, a.Summaries, a.Exports, notifier, idgen.NewUUIDGenerator(), logger)
	return nil
}

// driveSource returns nil when Drive is disabled or not yet authorized; sync
// then reports the dependency as unavailable instead of failing every command.
func (a *App) driveSource(ctx context.Context) dataset.Source {
	cfg := a.Config
	if !cfg.DriveEnabled {
		return nil
	}

	oauthCfg, err := gdrive.LoadOAuthConfig(cfg.DriveCredentialsFile)
	if err != nil {
		a.Logger.WarnContext(ctx, "google drive sync unavailable", "error", err)
		return nil
	}
	tokens, err := gdrive.TokenSource(ctx, oauthCfg, cfg.DriveTokenFile)
	if err != nil {
		if crerr.Is(err, gdrive.ErrNotAuthorized) {
			a.Logger.WarnContext(ctx, "google drive sync unavailable, run the auth command first", "token_file", cfg.DriveTokenFile)
		} else {
			a.Logger.WarnContext(ctx, "google drive sync unavailable", "error", err)
		}
		return nil
	}

	client, err := gdrive.NewClient(ctx, gdrive.ClientConfig{
		HTTPClient:     gdrive.NewHTTPClient(ctx, tokens, cfg.DriveTimeout),
		Logger:         a.Logger,
		CircuitBreaker: cfg.DriveBreaker,
	})
	if err != nil {
		a.Logger.WarnContext(ctx, "google drive sync unavailable", "error", err)
		return nil
	}
	return client
}

func (a *App) notifier() (notification.Notifier, error) {
	if !a.Config.NotifyEnabled {
		return notify.Nop{}, nil
	}
	sender, err := notify.NewSender(a.Config.NotifyURLs, a.Config.NotifyTimeout, a.Logger)
	if err != nil {
		return nil, fmt.Errorf("build notifier: %w", err)
	}
	return sender, nil
}

// Jobs converts the configured Drive feeds into sync jobs.
func (a *App) Jobs() []dataset.Job {
	jobs := make([]dataset.Job, 0, len(a.Config.DriveJobs))
	for _, j := range a.Config.DriveJobs {
		jobs = append(jobs, dataset.Job{
			Name:        j.Name,
			FolderID:    j.FolderID,
			Match:       j.Match,
			Destination: j.Destination,
		})
	}
	return jobs
}

func (a *App) Folders(f config.Folders) usecase.IngestFolders {
	return usecase.IngestFolders{Incoming: f.Incoming, Archive: f.Archive}
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return stderrors.Join(errs...)
}
