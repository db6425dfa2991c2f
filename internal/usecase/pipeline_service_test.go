package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/JonnyRank/bigdataball-data/internal/domain/gamelog"
	"github.com/JonnyRank/bigdataball-data/internal/domain/notification"
	"github.com/JonnyRank/bigdataball-data/internal/infrastructure/csvexport"
	"github.com/JonnyRank/bigdataball-data/internal/infrastructure/ingest"
	"github.com/JonnyRank/bigdataball-data/internal/infrastructure/repository/sqlstore"
	gamelogmock "github.com/JonnyRank/bigdataball-data/internal/mocks/domain/gamelog"
	notificationmock "github.com/JonnyRank/bigdataball-data/internal/mocks/domain/notification"
	playermock "github.com/JonnyRank/bigdataball-data/internal/mocks/domain/player"
	summarymock "github.com/JonnyRank/bigdataball-data/internal/mocks/domain/summary"
	"github.com/JonnyRank/bigdataball-data/internal/platform/id"
)

func TestPipelineService_Run_NotifiesSuccess(t *testing.T) {
	ctx := context.Background()
	db := openStore(t)
	root := t.TempDir()
	input := PipelineInput{
		Fantasy: IngestFolders{Incoming: filepath.Join(root, "fantasy"), Archive: filepath.Join(root, "fantasy_archive")},
		Player:  IngestFolders{Incoming: filepath.Join(root, "player"), Archive: filepath.Join(root, "player_archive")},
		Export:  true,
	}
	writeFile(t, filepath.Join(input.Fantasy.Incoming, "01-01-2025-nba-season-dfs-feed.csv"), fantasyCSVHeader+
		"2024-25 Regular Season,2024-12-20,1631260,AJ Green,Milwaukee,N,20,15,SG,3500,16\n")

	logs := sqlstore.NewGamelogRepository(db)
	players := sqlstore.NewPlayerRepository(db)
	summaries := sqlstore.NewSummaryRepository(db)
	notifier := notificationmock.NewNotifier(t)
	service := NewPipelineService(
		nil,
		NewIngestionService(ingest.NewInbox(nil), logs, players, nil),
		NewSummaryService(logs, players, summaries, SummaryConfig{}, nil),
		NewExportService(summaries, csvexport.NewWriter(filepath.Join(root, "exports")), nil),
		notifier,
		id.Static("run-1"),
		nil,
	)

	notifier.On("Notify", ctx, mock.MatchedBy(func(msg notification.Message) bool {
		return msg.Subject == "BigDataBall pipeline succeeded" &&
			strings.Contains(msg.Body, "Run run-1") &&
			strings.Contains(msg.Body, "Ingest fantasy: 1 files, 1 rows inserted")
	})).Return(errors.New("smtp down")).Once()

	result, err := service.Run(ctx, input)
	if err != nil {
		t.Fatalf("run pipeline: %v", err)
	}
	if result.RunID != "run-1" {
		t.Fatalf("unexpected run id: %s", result.RunID)
	}
	if result.Sync != nil {
		t.Fatalf("expected sync to be skipped without jobs")
	}
	if result.Summary == nil || result.Summary.Rows != 1 {
		t.Fatalf("unexpected summary: %+v", result.Summary)
	}
	if len(result.Exported) != 2 {
		t.Fatalf("unexpected exports: %v", result.Exported)
	}
}

func TestPipelineService_Run_StopsAndNotifiesFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	inbox := gamelogmock.NewInbox(t)
	notifier := notificationmock.NewNotifier(t)
	summaries := summarymock.NewRepository(t)
	service := NewPipelineService(
		nil,
		NewIngestionService(inbox, gamelogmock.NewRepository(t), playermock.NewRepository(t), nil),
		NewSummaryService(gamelogmock.NewRepository(t), playermock.NewRepository(t), summaries, SummaryConfig{}, nil),
		nil,
		notifier,
		id.Static("run-2"),
		nil,
	)

	listErr := errors.New("permission denied")
	inbox.On("Pending", ctx, "fantasy").Return(nil, listErr).Once()
	notifier.On("Notify", ctx, mock.MatchedBy(func(msg notification.Message) bool {
		return msg.Subject == "BigDataBall pipeline failed" && strings.Contains(msg.Body, "ingest fantasy")
	})).Return(nil).Once()

	_, err := service.Run(ctx, PipelineInput{
		Fantasy: IngestFolders{Incoming: "fantasy", Archive: "fantasy_archive"},
		Player:  IngestFolders{Incoming: "player", Archive: "player_archive"},
	})
	if !errors.Is(err, listErr) {
		t.Fatalf("expected pending error, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "ingest "+string(gamelog.CategoryFantasy)+":") {
		t.Fatalf("expected stage label, got %v", err)
	}
	summaries.AssertNotCalled(t, "MissingTables", mock.Anything)
}

func TestPipelineService_Run_RejectsOverlappingRuns(t *testing.T) {
	t.Parallel()

	service := NewPipelineService(nil, nil, nil, nil, nil, id.Static("run-3"), nil)
	service.running.Store(true)

	_, err := service.Run(context.Background(), PipelineInput{})
	if !errors.Is(err, ErrRunInProgress) {
		t.Fatalf("expected ErrRunInProgress, got %v", err)
	}
}
