package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/JonnyRank/bigdataball-data/internal/domain/dataset"
	"github.com/JonnyRank/bigdataball-data/internal/platform/logging"
)

const (
	syncStatusDownloaded = "downloaded"
	syncStatusSkipped    = "skipped"
	syncStatusEmpty      = "empty"
	syncStatusFailed     = "failed"
)

type SyncJobResult struct {
	Job        string `json:"job"`
	File       string `json:"file,omitempty"`
	Path       string `json:"path,omitempty"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

type SyncResult struct {
	WorkerCount     int             `json:"worker_count"`
	DownloadedCount int             `json:"downloaded_count"`
	SkippedCount    int             `json:"skipped_count"`
	FailedCount     int             `json:"failed_count"`
	Jobs            []SyncJobResult `json:"jobs"`
}

type SyncService struct {
	source     dataset.Source
	maxWorkers int
	logger     *logging.Logger
}

func NewSyncService(source dataset.Source, maxWorkers int, logger *logging.Logger) *SyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	return &SyncService{
		source:     source,
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

// Sync mirrors the newest file of every job into its destination. A file
// already present locally is left untouched. Jobs run independently on a
// bounded pool; every failed job is reported and joined into the error.
func (s *SyncService) Sync(ctx context.Context, jobs []dataset.Job) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.Sync")
	defer span.End()

	workerCount := min(s.maxWorkers, max(len(jobs), 1))
	result := SyncResult{
		WorkerCount: workerCount,
		Jobs:        make([]SyncJobResult, 0, len(jobs)),
	}
	if len(jobs) == 0 {
		return result, nil
	}
	if s.source == nil {
		return result, fmt.Errorf("%w: remote file source is not configured", ErrDependencyUnavailable)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return result, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		workers sync.WaitGroup
		errs    []error
	)
	for _, job := range jobs {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row, err := s.syncJob(ctx, job)
			row.DurationMs = time.Since(start).Milliseconds()

			mu.Lock()
			defer mu.Unlock()
			switch row.Status {
			case syncStatusDownloaded:
				result.DownloadedCount++
			case syncStatusFailed:
				result.FailedCount++
				errs = append(errs, fmt.Errorf("sync %s: %w", job.Name, err))
			default:
				result.SkippedCount++
			}
			result.Jobs = append(result.Jobs, row)
		}); err != nil {
			workers.Done()
			return result, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	sort.SliceStable(result.Jobs, func(i, j int) bool {
		return result.Jobs[i].Job < result.Jobs[j].Job
	})
	return result, errors.Join(errs...)
}

func (s *SyncService) syncJob(ctx context.Context, job dataset.Job) (SyncJobResult, error) {
	row := SyncJobResult{Job: job.Name}

	files, err := s.source.List(ctx, job.FolderID, job.Match)
	if err != nil {
		row.Status, row.Message = syncStatusFailed, err.Error()
		return row, fmt.Errorf("list remote files: %w", err)
	}
	latest, ok := dataset.Latest(files)
	if !ok {
		row.Status = syncStatusEmpty
		row.Message = fmt.Sprintf("no files matching %q", job.Match)
		s.logger.WarnContext(ctx, "no remote files matched", "job", job.Name, "match", job.Match)
		return row, nil
	}
	row.File = latest.Name

	name := filepath.Base(strings.TrimSpace(latest.Name))
	if name == "." || name == string(filepath.Separator) || name == "" {
		row.Status, row.Message = syncStatusFailed, "remote file has no usable name"
		return row, fmt.Errorf("remote file %s has no usable name", latest.ID)
	}
	target := filepath.Join(job.Destination, name)
	row.Path = target

	if _, err := os.Stat(target); err == nil {
		row.Status = syncStatusSkipped
		row.Message = "already present"
		s.logger.InfoContext(ctx, "remote file already present", "job", job.Name, "file", name)
		return row, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		row.Status, row.Message = syncStatusFailed, err.Error()
		return row, fmt.Errorf("stat %s: %w", target, err)
	}

	if err := s.download(ctx, latest.ID, job.Destination, target); err != nil {
		row.Status, row.Message = syncStatusFailed, err.Error()
		return row, err
	}
	row.Status = syncStatusDownloaded
	s.logger.InfoContext(ctx, "remote file downloaded", "job", job.Name, "file", name, "path", target)
	return row, nil
}

// download streams into a hidden temp file beside target and renames it into
// place; a partial transfer never appears under the final name.
func (s *SyncService) download(ctx context.Context, fileID, dir, target string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create destination %s: %w", dir, err)
	}

	body, err := s.source.Download(ctx, fileID)
	if err != nil {
		return fmt.Errorf("download %s: %w", fileID, err)
	}
	defer body.Close()

	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := io.Copy(tmp, body); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", fileID, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("move download into place: %w", err)
	}
	return nil
}
