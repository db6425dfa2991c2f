package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/JonnyRank/bigdataball-data/internal/domain/dataset"
	"github.com/JonnyRank/bigdataball-data/internal/domain/gamelog"
	"github.com/JonnyRank/bigdataball-data/internal/domain/notification"
	"github.com/JonnyRank/bigdataball-data/internal/platform/id"
	"github.com/JonnyRank/bigdataball-data/internal/platform/logging"
)

type PipelineInput struct {
	Jobs    []dataset.Job
	Fantasy IngestFolders
	Player  IngestFolders
	// SkipSync leaves the local inboxes as they are.
	SkipSync bool
	Export   bool
}

type PipelineResult struct {
	RunID      string         `json:"run_id"`
	Sync       *SyncResult    `json:"sync,omitempty"`
	Fantasy    *IngestResult  `json:"fantasy,omitempty"`
	Player     *IngestResult  `json:"player,omitempty"`
	Summary    *RebuildResult `json:"summary,omitempty"`
	Exported   []string       `json:"exported,omitempty"`
	DurationMs int64          `json:"duration_ms"`
}

// PipelineService runs the daily refresh end to end and reports the outcome
// through the notifier.
type PipelineService struct {
	sync      *SyncService
	ingestion *IngestionService
	summaries *SummaryService
	exports   *ExportService
	notifier  notification.Notifier
	ids       id.Generator
	logger    *logging.Logger

	running atomic.Bool
}

func NewPipelineService(
	sync *SyncService,
	ingestion *IngestionService,
	summaries *SummaryService,
	exports *ExportService,
	notifier notification.Notifier,
	ids id.Generator,
	logger *logging.Logger,
) *PipelineService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &PipelineService{
		sync:      sync,
		ingestion: ingestion,
		summaries: summaries,
		exports:   exports,
		notifier:  notifier,
		ids:       ids,
		logger:    logger,
	}
}

// Run executes sync, fantasy ingestion, player ingestion, summary rebuild and
// the optional export in order. The first failing stage stops the run; its
// error carries the stage label. Only one run executes at a time.
func (s *PipelineService) Run(ctx context.Context, input PipelineInput) (PipelineResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PipelineService.Run")
	defer span.End()

	if !s.running.CompareAndSwap(false, true) {
		return PipelineResult{}, ErrRunInProgress
	}
	defer s.running.Store(false)

	start := time.Now()
	runID, err := s.ids.NewID()
	if err != nil {
		return PipelineResult{}, err
	}
	logger := s.logger.With("run_id", runID)
	result := PipelineResult{RunID: runID}

	err = s.run(ctx, logger, input, &result)
	result.DurationMs = time.Since(start).Milliseconds()
	if err != nil {
		logger.ErrorContext(ctx, "pipeline failed", "error", err)
		s.notify(ctx, logger, notification.Message{
			Subject: "BigDataBall pipeline failed",
			Body:    fmt.Sprintf("Run %s failed after %dms.\n\n%v", runID, result.DurationMs, err),
		})
		return result, err
	}

	logger.InfoContext(ctx, "pipeline finished", "duration_ms", result.DurationMs)
	s.notify(ctx, logger, notification.Message{
		Subject: "BigDataBall pipeline succeeded",
		Body:    pipelineSummary(result),
	})
	return result, nil
}

func (s *PipelineService) run(ctx context.Context, logger *logging.Logger, input PipelineInput, result *PipelineResult) error {
	if !input.SkipSync && len(input.Jobs) > 0 {
		if s.sync == nil {
			return fmt.Errorf("sync: %w: remote sync is not configured", ErrDependencyUnavailable)
		}
		synced, err := s.sync.Sync(ctx, input.Jobs)
		result.Sync = &synced
		if err != nil {
			return fmt.Errorf("sync: %w", err)
		}
	} else {
		logger.InfoContext(ctx, "skipping remote sync", "jobs", len(input.Jobs))
	}

	fantasy, err := s.ingestion.IngestFolder(ctx, gamelog.CategoryFantasy, input.Fantasy)
	result.Fantasy = &fantasy
	if err != nil {
		return fmt.Errorf("ingest %s: %w", gamelog.CategoryFantasy, err)
	}

	players, err := s.ingestion.IngestFolder(ctx, gamelog.CategoryPlayer, input.Player)
	result.Player = &players
	if err != nil {
		return fmt.Errorf("ingest %s: %w", gamelog.CategoryPlayer, err)
	}

	rebuilt, err := s.summaries.Rebuild(ctx)
	result.Summary = &rebuilt
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	if input.Export {
		written, err := s.exports.ExportViews(ctx, rebuilt.Views)
		result.Exported = written
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	return nil
}

func (s *PipelineService) notify(ctx context.Context, logger *logging.Logger, msg notification.Message) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, msg); err != nil {
		logger.WarnContext(ctx, "send notification failed", "subject", msg.Subject, "error", err)
	}
}

func pipelineSummary(result PipelineResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s finished in %dms.\n", result.RunID, result.DurationMs)
	if result.Sync != nil {
		fmt.Fprintf(&b, "Sync: %d downloaded, %d skipped.\n", result.Sync.DownloadedCount, result.Sync.SkippedCount)
	}
	for _, ingest := range []*IngestResult{result.Fantasy, result.Player} {
		if ingest == nil {
			continue
		}
		fmt.Fprintf(&b, "Ingest %s: %d files, %d rows inserted, %d duplicates, %d new players.\n",
			ingest.Category, len(ingest.Files), ingest.Inserted, ingest.Duplicates, ingest.NewPlayers)
	}
	if result.Summary != nil {
		fmt.Fprintf(&b, "Summary: %d rows, views %s.\n", result.Summary.Rows, strings.Join(result.Summary.CreatedViews, ", "))
		if len(result.Summary.FailedViews) > 0 {
			fmt.Fprintf(&b, "Failed views: %d.\n", len(result.Summary.FailedViews))
		}
	}
	if len(result.Exported) > 0 {
		fmt.Fprintf(&b, "Exported: %s.\n", strings.Join(result.Exported, ", "))
	}
	return b.String()
}
