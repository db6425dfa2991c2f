package csvexport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonnyRank/bigdataball-data/internal/domain/summary"
)

func TestWriterWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "csv_exports")
	w := NewWriter(dir)

	path, err := w.Write(context.Background(), "slate_player_averages_03-31-2024_183000", summary.Extract{
		Columns: []string{"season", "player", "team", "stdv"},
		Rows: [][]string{
			{"2023-24", "De'Aaron Fox", "SAC", "9.12"},
			{"2023-24", "Jones, Jr.", "", "4.5"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "slate_player_averages_03-31-2024_183000.csv"), path)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "SEASON,PLAYER,TEAM,STDV\n2023-24,De'Aaron Fox,SAC,9.12\n2023-24,\"Jones, Jr.\",,4.5\n", string(body))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file removed after rename")
}

func TestWriterRejectsPathNames(t *testing.T) {
	w := NewWriter(t.TempDir())
	for _, name := range []string{"", "../escape", ".hidden", "a/b"} {
		_, err := w.Write(context.Background(), name, summary.Extract{Columns: []string{"a"}})
		if err == nil {
			t.Fatalf("expected error for name %q", name)
		}
	}
}
