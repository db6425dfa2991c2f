package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/JonnyRank/bigdataball-data/internal/domain/gamelog"
	"github.com/JonnyRank/bigdataball-data/internal/domain/player"
	"github.com/JonnyRank/bigdataball-data/internal/domain/slate"
	"github.com/JonnyRank/bigdataball-data/internal/domain/summary"
	"github.com/JonnyRank/bigdataball-data/internal/platform/database"
	"github.com/JonnyRank/bigdataball-data/internal/platform/logging"
)

// summaryPrerequisites must exist before a rebuild reads anything.
var summaryPrerequisites = []string{"fantasy_logs", "dim_players", "map_teams"}

type SummaryConfig struct {
	WindowDays int
}

type RebuildResult struct {
	summary.Report
	Rows         int               `json:"rows"`
	Views        []summary.View    `json:"-"`
	CreatedViews []string          `json:"created_views"`
	FailedViews  map[string]string `json:"failed_views,omitempty"`
}

type SummaryService struct {
	logs      gamelog.Repository
	players   player.Repository
	summaries summary.Repository
	cfg       SummaryConfig
	now       func() time.Time
	logger    *logging.Logger
}

func NewSummaryService(
	logs gamelog.Repository,
	players player.Repository,
	summaries summary.Repository,
	cfg SummaryConfig,
	logger *logging.Logger,
) *SummaryService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = summary.DefaultWindowDays
	}
	return &SummaryService{
		logs:      logs,
		players:   players,
		summaries: summaries,
		cfg:       cfg,
		now:       time.Now,
		logger:    logger,
	}
}

// Rebuild recomputes the summary table from the full fantasy log history and
// recreates the season-type views. A view that fails to build is reported
// and does not stop the others.
func (s *SummaryService) Rebuild(ctx context.Context) (RebuildResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SummaryService.Rebuild")
	defer span.End()

	var result RebuildResult
	missing, err := s.summaries.MissingTables(ctx, summaryPrerequisites...)
	if err != nil {
		return result, fmt.Errorf("check summary prerequisites: %w", err)
	}
	if len(missing) > 0 {
		return result, fmt.Errorf("%w: tables %v do not exist, run ingestion first", ErrMissingPrerequisite, missing)
	}

	records, err := s.logs.List(ctx, gamelog.CategoryFantasy)
	if err != nil {
		return result, fmt.Errorf("load fantasy logs: %w", err)
	}
	registry, err := s.players.List(ctx)
	if err != nil {
		return result, fmt.Errorf("load player registry: %w", err)
	}
	names := make(map[int64]string, len(registry))
	for _, p := range registry {
		names[p.ID] = p.Name
	}
	teams, err := s.summaries.TeamMappings(ctx)
	if err != nil {
		return result, fmt.Errorf("load team mappings: %w", err)
	}

	rows, report := summary.Build(summary.Input{
		Records: records,
		Names:   names,
		Teams:   teams,
		AsOf:    s.now(),
	}, summary.Options{WindowDays: s.cfg.WindowDays})
	result.Report = report
	result.Rows = len(rows)

	if report.Unclassified > 0 {
		s.logger.WarnContext(ctx, "excluded rows with unclassified season segments",
			"rows", report.Unclassified,
			"segments", report.UnclassifiedSegments,
		)
	}
	if report.BadDates > 0 {
		s.logger.WarnContext(ctx, "excluded rows with unparseable dates", "rows", report.BadDates)
	}
	if report.UnmappedTeams > 0 {
		s.logger.WarnContext(ctx, "rows with unmapped team names", "rows", report.UnmappedTeams)
	}

	if err := s.summaries.Replace(ctx, rows); err != nil {
		return result, fmt.Errorf("replace %s: %w", summary.Table, err)
	}

	for _, v := range summary.Views {
		if err := s.summaries.CreateView(ctx, v); err != nil {
			if result.FailedViews == nil {
				result.FailedViews = make(map[string]string)
			}
			result.FailedViews[v.Name] = err.Error()
			s.logger.ErrorContext(ctx, "create view failed", "view", v.Name, "error", err)
			continue
		}
		result.Views = append(result.Views, v)
		result.CreatedViews = append(result.CreatedViews, v.Name)
	}

	s.logger.InfoContext(ctx, "summary rebuilt",
		"records", report.Records,
		"groups", report.Groups,
		"rows", result.Rows,
		"views", len(result.CreatedViews),
	)
	return result, nil
}

// ReadView returns the rows of one of the published views.
func (s *SummaryService) ReadView(ctx context.Context, name string) (summary.Extract, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SummaryService.ReadView")
	defer span.End()

	if !publishedView(name) {
		return summary.Extract{}, fmt.Errorf("%w: view %q", ErrNotFound, name)
	}
	extract, err := s.summaries.ReadView(ctx, name)
	if err != nil {
		if database.IsMissingTable(err) {
			return summary.Extract{}, fmt.Errorf("%w: view %s has not been built yet", ErrNotFound, name)
		}
		return summary.Extract{}, fmt.Errorf("read view %s: %w", name, err)
	}
	return extract, nil
}

func publishedView(name string) bool {
	if name == slate.ViewName {
		return true
	}
	for _, v := range summary.Views {
		if v.Name == name {
			return true
		}
	}
	return false
}
