package usecase

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonnyRank/bigdataball-data/internal/domain/gamelog"
	"github.com/JonnyRank/bigdataball-data/internal/domain/namematch"
	"github.com/JonnyRank/bigdataball-data/internal/domain/slate"
	"github.com/JonnyRank/bigdataball-data/internal/domain/summary"
	"github.com/JonnyRank/bigdataball-data/internal/infrastructure/csvexport"
	"github.com/JonnyRank/bigdataball-data/internal/infrastructure/ingest"
	"github.com/JonnyRank/bigdataball-data/internal/infrastructure/repository/sqlstore"
	"github.com/JonnyRank/bigdataball-data/internal/platform/database"
)

const fantasyCSVHeader = "BIGDATABALL DATASET,DATE,PLAYER-ID,PLAYER,OWN TEAM,STARTER (Y/N),MINUTES,USAGE RATE,DRAFTKINGS,FOR DRAFTKINGS CLASSIC CONTESTS,DRAFTKINGS\n" +
	",,,,,,,,POSITION,SALARY,POINTS\n"

func openStore(t *testing.T) *sqlx.DB {
	t.Helper()
	conn, err := database.Open(context.Background(), database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, database.Migrate(conn, database.DriverSQLite))
	return conn
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestDailyRefreshEndToEnd(t *testing.T) {
	ctx := context.Background()
	db := openStore(t)
	root := t.TempDir()
	folders := IngestFolders{
		Incoming: filepath.Join(root, "Daily_Fantasy_Logs"),
		Archive:  filepath.Join(root, "Archived_Fantasy_Logs"),
	}

	writeFile(t, filepath.Join(folders.Incoming, "01-01-2025-nba-season-dfs-feed.csv"), fantasyCSVHeader+
		"2024-25 Regular Season,2024-12-20,1631260,AJ Green,Milwaukee,N,20,15,SG,3500,16\n"+
		"2024-25 Regular Season,2024-12-20,203999,Nikola Jokić,Denver,Y,36,30,C,12000,60\n"+
		"2024-25 Regular Season,2024-12-22,1631260,AJ Green,Milwaukee,N,10,15,SG,3500,4\n")
	writeFile(t, filepath.Join(folders.Incoming, "01-02-2025-nba-season-dfs-feed.csv"), fantasyCSVHeader+
		"2024-25 Regular Season,2024-12-22,1631260,AJ Green,Milwaukee,N,10,15,SG,3500,4\n"+
		"2024-25 Regular Season,2025-01-01,203999,Nikola Jokić,Denver,Y,40,32,C,12200,70\n")

	logs := sqlstore.NewGamelogRepository(db)
	players := sqlstore.NewPlayerRepository(db)
	summaries := sqlstore.NewSummaryRepository(db)
	sink := csvexport.NewWriter(filepath.Join(root, "csv_exports"))
	ingestion := NewIngestionService(ingest.NewInbox(nil), logs, players, nil)

	ingested, err := ingestion.IngestFolder(ctx, gamelog.CategoryFantasy, folders)
	require.NoError(t, err)
	assert.Equal(t, 4, ingested.Inserted)
	assert.Equal(t, 1, ingested.Duplicates)
	assert.Equal(t, 2, ingested.NewPlayers)

	archived, err := os.ReadDir(folders.Archive)
	require.NoError(t, err)
	assert.Len(t, archived, 2)
	pending, err := os.ReadDir(folders.Incoming)
	require.NoError(t, err)
	assert.Empty(t, pending)

	again, err := ingestion.IngestFolder(ctx, gamelog.CategoryFantasy, folders)
	require.NoError(t, err)
	assert.Empty(t, again.Files, "archived files are not re-read")

	rebuild := NewSummaryService(logs, players, summaries, SummaryConfig{}, nil)
	rebuild.now = func() time.Time { return time.Date(2025, time.January, 2, 8, 0, 0, 0, time.UTC) }
	rebuilt, err := rebuild.Rebuild(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, rebuilt.Rows)
	assert.Len(t, rebuilt.CreatedViews, len(summary.Views))

	first, err := summaries.ReadView(ctx, summary.Table)
	require.NoError(t, err)
	require.Len(t, first.Rows, 2)

	second, err := rebuild.Rebuild(ctx)
	require.NoError(t, err)
	assert.Equal(t, rebuilt.Rows, second.Rows)
	rebuiltAgain, err := summaries.ReadView(ctx, summary.Table)
	require.NoError(t, err)
	assert.Equal(t, first, rebuiltAgain, "rebuild is idempotent")

	exports := NewExportService(summaries, sink, nil)
	exports.now = func() time.Time { return time.Date(2025, time.January, 2, 8, 30, 5, 0, time.UTC) }
	written, err := exports.ExportViews(ctx, rebuilt.Views)
	require.NoError(t, err)
	require.Len(t, written, 2)
	assert.Equal(t, "player_averages_regular_season_01-02-2025_083005.csv", filepath.Base(written[0]))

	entries := filepath.Join(root, "DKEntries.csv")
	writeFile(t, entries, strings.Join([]string{
		"Entry ID,Contest Name,,Instructions",
		",,,Position,Name + ID,Name,ID",
		",,,SG,A.J. Green (1),A.J. Green,1",
		",,,C,Nikola Jokic (2),Nikola Jokic,2",
		",,,PF,Zion Williamson (3),Zion Williamson,3",
	}, "\n"))

	slates := NewSlateService(sqlstore.NewSlateRepository(db), sink, namematch.NewResolver(namematch.DefaultThreshold), nil)
	slates.now = exports.now
	extracted, err := slates.Extract(ctx, SlateInput{
		EntriesPath:   entries,
		PriorSeason:   "2023-24",
		CurrentSeason: "2024-25",
		WriteCSV:      true,
		WriteView:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, extracted.Entries)
	assert.Equal(t, []string{"AJ Green", "Nikola Jokić"}, extracted.Players)
	require.Len(t, extracted.Rejected, 1)
	assert.Equal(t, "Zion Williamson", extracted.Rejected[0].Query)
	require.Len(t, extracted.Files, 2)
	assert.Equal(t, slate.ViewName, extracted.View)

	body, err := os.ReadFile(extracted.Files[0])
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "SEASON,PLAYER,TEAM,GP,GS,MPG,GSMPG,FPPG,GSFPPG,FPPM,GSFPPM,STDV", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2024-25,Nikola Jokić,DEN,2,2,38,38,65,65,1.71,1.71,"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "2024-25,AJ Green,MIL,2,0,15,"), lines[2])

	var slateRows int
	require.NoError(t, db.GetContext(ctx, &slateRows, "SELECT COUNT(*) FROM "+slate.ViewName))
	assert.Equal(t, 2, slateRows)
}
