package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonnyRank/bigdataball-data/internal/usecase"
)

func setTestEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for key, value := range map[string]string{
		"DATA_DIR":          dir,
		"DB_DRIVER":         "sqlite3",
		"DB_URL":            "",
		"APP_LOG_LEVEL":     "error",
		"DRIVE_ENABLED":     "false",
		"NOTIFY_ENABLED":    "false",
		"UPTRACE_ENABLED":   "false",
		"PYROSCOPE_ENABLED": "false",
	} {
		t.Setenv(key, value)
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestIngestCommand_JSON(t *testing.T) {
	setTestEnv(t)

	out, err := execute(t, "ingest", "--json")
	require.NoError(t, err)

	var results []usecase.IngestResult
	require.NoError(t, sonic.UnmarshalString(out, &results))
	require.Len(t, results, 2)
	assert.Equal(t, "fantasy", string(results[0].Category))
	assert.Equal(t, "player", string(results[1].Category))
}

func TestIngestCommand_RejectsUnknownCategory(t *testing.T) {
	setTestEnv(t)

	_, err := execute(t, "ingest", "--category", "odds")
	require.Error(t, err)
}

func TestRenamePlayerCommand_UnknownPlayer(t *testing.T) {
	setTestEnv(t)

	_, err := execute(t, "rename-player", "--from", "GG Jackson", "--to", "Gregory Jackson")
	assert.True(t, errors.Is(err, usecase.ErrNotFound), "got %v", err)
}

func TestSlateCommand_MissingEntriesFile(t *testing.T) {
	dir := setTestEnv(t)

	_, err := execute(t, "slate", "--entries", filepath.Join(dir, "DKEntries.csv"))
	assert.True(t, errors.Is(err, usecase.ErrNotFound), "got %v", err)
}
