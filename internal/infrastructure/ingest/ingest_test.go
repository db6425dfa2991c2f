package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/JonnyRank/bigdataball-data/internal/domain/gamelog"
)

func writeWorkbook(t *testing.T, path string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	require.NoError(t, f.SaveAs(path))
}

func fantasyRows(data ...[]any) [][]any {
	rows := [][]any{
		{"BIGDATABALL", "", "", "", "", "", "", "", "", "", "", "", "DFS POSITION", "", "", "DFS SALARY", "", "", "DFS FANTASY POINTS"},
		{
			"BIGDATABALL\nDATASET", "GAME-ID", "DATE", "PLAYER-ID", "PLAYER", "OWN\nTEAM", "OPPONENT\nTEAM",
			"STARTER\n(Y/N)", "VENUE\n(R/H/N)", "MINUTES", "USAGE\nRATE", "DAYS REST\n(3+ = SEASON DEBUT, 0 = BACK-TO-BACK)",
			"DRAFTKINGS", "FANDUEL", "YAHOO",
			"FOR DRAFTKINGS CLASSIC CONTESTS", "FOR FANDUEL FULL ROSTER CONTESTS", "FOR YAHOO FULL SLATE CONTESTS",
			"DRAFTKINGS", "FANDUEL", "YAHOO",
		},
		{"", "", "", "", "", "", "", "", "", "", "", "", "POSITION", "POSITION", "POSITION", "SALARY", "SALARY", "SALARY", "POINTS", "POINTS", "POINTS"},
	}
	return append(rows, data...)
}

func fantasyRow(id int, date any, name string, minutes any) []any {
	return []any{
		"2023-24 Regular Season", "22300001", date, id, name, "Oklahoma City", "Boston",
		"Y", "H", minutes, 31.2, 1,
		"PG", "PG", "G",
		10400, 11000, 55,
		55.25, 54.3, 53.1,
	}
}

func TestNormalizeHeader(t *testing.T) {
	cases := map[string]string{
		"STARTER (Y/N)":    "STARTER_Y_N",
		"OWN\nTEAM":        "OWN_TEAM",
		" usage rate (%) ": "USAGE_RATE",
		"3P":               "3P",
		"---":              "",
	}
	for in, want := range cases {
		if got := NormalizeHeader(in); got != want {
			t.Fatalf("NormalizeHeader(%q) = %q, want %q", in, got, want)
		}
	}

	got := NormalizeHeaders([]string{"DRAFTKINGS", "FANDUEL", "DraftKings", "DRAFTKINGS", ""})
	assert.Equal(t, []string{"DRAFTKINGS", "FANDUEL", "DRAFTKINGS_1", "DRAFTKINGS_2", ""}, got)
}

func TestInboxReadFantasyWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "01-15-2024-nba-season-dfs-feed.xlsx")
	writeWorkbook(t, path, fantasyRows(
		fantasyRow(1628983, 45292.0, "Shai Gilgeous-Alexander", 36.5),
		[]any{},
		fantasyRow(1630162, "2024-01-02", "Anthony Edwards", "-"),
	))

	records, err := NewInbox(nil).Read(context.Background(), path, gamelog.CategoryFantasy)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, int64(1628983), first.PlayerID)
	assert.Equal(t, "Shai Gilgeous-Alexander", first.Player)
	assert.Equal(t, "2024-01-01", first.Date)
	assert.Equal(t, "2023-24 Regular Season", first.TextOf(gamelog.FieldSegment))
	assert.Equal(t, "Oklahoma City", first.TextOf(gamelog.FieldTeam))
	assert.Equal(t, "Boston", first.TextOf("OPPONENT"))
	assert.Equal(t, "Y", first.TextOf(gamelog.FieldStarted))
	assert.Equal(t, "H", first.TextOf("VENUE"))
	assert.Equal(t, "PG", first.TextOf("DK_POSITION"))

	salary, ok := first.NumberOf(gamelog.FieldDKSalary)
	require.True(t, ok)
	assert.Equal(t, 10400.0, salary)
	points, ok := first.NumberOf(gamelog.FieldDKPoints)
	require.True(t, ok)
	assert.Equal(t, 55.25, points)
	minutes, _ := first.NumberOf(gamelog.FieldMinutes)
	assert.Equal(t, 36.5, minutes)
	rest, ok := first.NumberOf("DAYS_REST")
	require.True(t, ok)
	assert.Equal(t, 1.0, rest)

	second := records[1]
	assert.Equal(t, "2024-01-02", second.Date)
	_, ok = second.NumberOf(gamelog.FieldMinutes)
	assert.False(t, ok, "a dash is a null cell")
}

func TestInboxReadPlayerCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "season-player-feed.csv")
	body := strings.Join([]string{
		"BIGDATABALL DATASET,GAME-ID,DATE,PLAYER-ID,PLAYER FULL NAME,POSITION,OWN TEAM,OPPONENT TEAM,VENUE (R/H/N),STARTER (Y/N),MIN,FG,FGA,3P,3PA,FT,FTA,OR,DR,TOT,A,PF,ST,TO,BL,PTS,USAGE RATE (%),DAYS REST",
		`2023-24 Regular Season,22300001,01/15/2024,1628983,Shai Gilgeous-Alexander,G,Oklahoma City,Boston,H,Y,36,12,20,2,5,8,9,1,4,5,6,2,2,3,1,34,32.5%,1`,
		",,,,,,,,,,,,,,,,,,,,,,,,,,,",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	records, err := NewInbox(nil).Read(context.Background(), path, gamelog.CategoryPlayer)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "2024-01-15", rec.Date)
	assert.Equal(t, "Shai Gilgeous-Alexander", rec.Player)
	assert.Equal(t, "G", rec.TextOf("POSITION"))
	for field, want := range map[string]float64{
		"OREB": 1, "DREB": 4, "TREB": 5, "AST": 6, "STL": 2, "TOV": 3, "BLK": 1,
		"3P": 2, "3PA": 5, gamelog.FieldMinutes: 36, gamelog.FieldUsage: 32.5, "DAYS_REST": 1,
	} {
		got, ok := rec.NumberOf(field)
		require.Truef(t, ok, "missing %s", field)
		assert.Equalf(t, want, got, "field %s", field)
	}
}

func TestNormalizeErrors(t *testing.T) {
	n := NewNormalizer(nil)

	t.Run("no header", func(t *testing.T) {
		_, err := n.Normalize(Sheet{Rows: [][]string{{"A", "B"}, {"1", "2"}}}, gamelog.CategoryPlayer)
		require.ErrorIs(t, err, ErrHeaderNotFound)
	})

	t.Run("missing player column", func(t *testing.T) {
		_, err := n.Normalize(Sheet{Rows: [][]string{{"PLAYER-ID", "DATE"}, {"1", "2024-01-01"}}}, gamelog.CategoryPlayer)
		require.ErrorIs(t, err, ErrMissingColumn)
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := n.Normalize(Sheet{Rows: [][]string{{"PLAYER-ID", "PLAYER", "DATE"}, {"1", "AJ Green", "yesterday"}}}, gamelog.CategoryPlayer)
		require.ErrorIs(t, err, ErrMalformedDate)
		assert.Contains(t, err.Error(), "row 2")
	})

	t.Run("malformed number", func(t *testing.T) {
		_, err := n.Normalize(Sheet{Rows: [][]string{{"PLAYER-ID", "PLAYER", "DATE", "MIN"}, {"1", "AJ Green", "2024-01-01", "abc"}}}, gamelog.CategoryPlayer)
		require.ErrorIs(t, err, ErrMalformedValue)
	})

	t.Run("fractional id", func(t *testing.T) {
		_, err := n.Normalize(Sheet{Rows: [][]string{{"PLAYER-ID", "PLAYER", "DATE"}, {"1.5", "AJ Green", "2024-01-01"}}}, gamelog.CategoryPlayer)
		require.ErrorIs(t, err, ErrMalformedValue)
	})

	t.Run("blank player name", func(t *testing.T) {
		_, err := n.Normalize(Sheet{Rows: [][]string{{"PLAYER-ID", "PLAYER", "DATE"}, {"1", "", "2024-01-01"}}}, gamelog.CategoryPlayer)
		require.ErrorIs(t, err, ErrMalformedValue)
	})
}

func TestParseDate(t *testing.T) {
	cases := map[string]string{
		"45292":               "2024-01-01",
		"45292.5":             "2024-01-01",
		"2024-01-02":          "2024-01-02",
		"2024-01-02 00:00:00": "2024-01-02",
		"1/3/2024":            "2024-01-03",
		"20240104":            "2024-01-04",
	}
	for in, want := range cases {
		got, err := parseDate(in, false)
		if err != nil || got != want {
			t.Fatalf("parseDate(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := parseDate("-4", false); !errors.Is(err, ErrMalformedDate) {
		t.Fatalf("expected malformed date for negative serial, got %v", err)
	}
}

func TestInboxPendingAndArchive(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	archive := filepath.Join(t.TempDir(), "archive")
	for _, name := range []string{"b.xlsx", "a.xlsx", "c.csv", "~$a.xlsx", ".hidden.xlsx", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.xlsx"), 0o755))

	inbox := NewInbox(nil)
	pending, err := inbox.Pending(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.xlsx"),
		filepath.Join(dir, "b.xlsx"),
		filepath.Join(dir, "c.csv"),
	}, pending)

	require.NoError(t, inbox.Archive(ctx, pending[0], archive))
	_, err = os.Stat(filepath.Join(archive, "a.xlsx"))
	require.NoError(t, err)
	_, err = os.Stat(pending[0])
	assert.True(t, os.IsNotExist(err))

	missing, err := inbox.Pending(ctx, filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestLoadCatalogMergesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "columns.yaml")
	yaml := `
fantasy:
  skip_after_header: 0
  rename:
    SALARY: dk_salary
  drop: [notes]
player:
  signature: [player_id, date, player]
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)

	fantasy, err := catalog.Profile(gamelog.CategoryFantasy)
	require.NoError(t, err)
	assert.Equal(t, 0, fantasy.skip())
	assert.Equal(t, gamelog.FieldDKSalary, fantasy.Rename["SALARY"])
	assert.Equal(t, gamelog.FieldStarted, fantasy.Rename["STARTER_Y_N"])
	assert.Contains(t, fantasy.Drop, "NOTES")
	assert.Contains(t, fantasy.Drop, "FANDUEL")

	player, err := catalog.Profile(gamelog.CategoryPlayer)
	require.NoError(t, err)
	assert.Equal(t, []string{"PLAYER_ID", "DATE", "PLAYER"}, player.Signature)

	defaults, err := LoadCatalog("")
	require.NoError(t, err)
	assert.Equal(t, 1, defaults[gamelog.CategoryFantasy].skip())
}

func TestLoadCatalogRejectsUnknownCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "columns.yaml")
	require.NoError(t, os.WriteFile(path, []byte("boxscore:\n  drop: [X]\n"), 0o644))

	_, err := LoadCatalog(path)
	require.Error(t, err)
}

func TestProfileCanonicalPrefersLongestPrefix(t *testing.T) {
	p := Profile{Prefix: map[string]string{"DAYS": "DAYS", "DAYS_REST": "DAYS_REST"}, Drop: []string{"YAHOO"}}

	field, keep := p.canonical("DAYS_REST_3_SEASON_DEBUT")
	assert.True(t, keep)
	assert.Equal(t, "DAYS_REST", field)

	_, keep = p.canonical("YAHOO")
	assert.False(t, keep)
}
