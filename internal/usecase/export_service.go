package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JonnyRank/bigdataball-data/internal/domain/summary"
	"github.com/JonnyRank/bigdataball-data/internal/platform/logging"
)

// ExportTimestampLayout stamps export file names as MM-DD-YYYY_HHMMSS.
const ExportTimestampLayout = "01-02-2006_150405"

type ExportService struct {
	summaries summary.Repository
	sink      summary.Sink
	now       func() time.Time
	logger    *logging.Logger
}

func NewExportService(summaries summary.Repository, sink summary.Sink, logger *logging.Logger) *ExportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ExportService{
		summaries: summaries,
		sink:      sink,
		now:       time.Now,
		logger:    logger,
	}
}

// ExportViews writes each view to the sink under "<base>_<timestamp>". Every
// view is attempted; failures are joined into the returned error.
func (s *ExportService) ExportViews(ctx context.Context, views []summary.View) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExportService.ExportViews")
	defer span.End()

	stamp := s.now().Format(ExportTimestampLayout)
	var (
		written []string
		errs    []error
	)
	for _, v := range views {
		extract, err := s.summaries.ReadView(ctx, v.Name)
		if err != nil {
			errs = append(errs, fmt.Errorf("read view %s: %w", v.Name, err))
			continue
		}
		path, err := s.sink.Write(ctx, exportName(v.BaseName, stamp), extract)
		if err != nil {
			errs = append(errs, fmt.Errorf("write view %s: %w", v.Name, err))
			continue
		}
		s.logger.InfoContext(ctx, "view exported", "view", v.Name, "rows", len(extract.Rows), "path", path)
		written = append(written, path)
	}
	return written, errors.Join(errs...)
}

func exportName(base, stamp string) string {
	return base + "_" + stamp
}
