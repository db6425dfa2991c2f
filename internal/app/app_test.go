package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonnyRank/bigdataball-data/internal/config"
	"github.com/JonnyRank/bigdataball-data/internal/domain/dataset"
	"github.com/JonnyRank/bigdataball-data/internal/platform/logging"
	"github.com/JonnyRank/bigdataball-data/internal/usecase"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	root := t.TempDir()
	return config.Config{
		AppEnv:             config.EnvDev,
		ServiceName:        "bigdataball-data",
		DBDriver:           config.DriverSQLite,
		DBURL:              filepath.Join(root, "db", "nba_fantasy_logs.db"),
		DBAutoMigrate:      true,
		DataDir:            root,
		Fantasy:            config.Folders{Incoming: filepath.Join(root, "in"), Archive: filepath.Join(root, "archive")},
		CSVExportDir:       filepath.Join(root, "exports"),
		MatchThreshold:     90,
		TrailingWindowDays: 30,
		DriveMaxWorkers:    1,
	}
}

func TestNew_WiresServices(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.DriveJobs = []config.DatasetJob{{Name: "DFS Feed", FolderID: "folder", Match: "-dfs-feed.xlsx", Destination: cfg.Fantasy.Incoming}}

	a, err := New(ctx, cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(ctx) })

	assert.NotNil(t, a.Pipeline)
	assert.NotNil(t, a.Slates)
	assert.Equal(t, []dataset.Job{{Name: "DFS Feed", FolderID: "folder", Match: "-dfs-feed.xlsx", Destination: cfg.Fantasy.Incoming}}, a.Jobs())
	assert.Equal(t, usecase.IngestFolders{Incoming: cfg.Fantasy.Incoming, Archive: cfg.Fantasy.Archive}, a.Folders(cfg.Fantasy))

	result, err := a.Ingestion.IngestFolder(ctx, "fantasy", a.Folders(cfg.Fantasy))
	require.NoError(t, err)
	assert.Empty(t, result.Files)

	// Drive is disabled, so sync has no source to talk to.
	_, err = a.Sync.Sync(ctx, a.Jobs())
	assert.True(t, errors.Is(err, usecase.ErrDependencyUnavailable), "got %v", err)
}

func TestNew_DriveWithoutCredentialsStillStarts(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.DriveEnabled = true
	cfg.DriveCredentialsFile = filepath.Join(cfg.DataDir, "missing.json")

	a, err := New(ctx, cfg, logging.NewNop())
	require.NoError(t, err)
	require.NoError(t, a.Close(ctx))
}

func TestNew_RejectsBadNotifierURL(t *testing.T) {
	cfg := testConfig(t)
	cfg.NotifyEnabled = true
	cfg.NotifyURLs = []string{"notaservice://x"}

	_, err := New(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
}
