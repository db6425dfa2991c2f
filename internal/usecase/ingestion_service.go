package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/JonnyRank/bigdataball-data/internal/domain/gamelog"
	"github.com/JonnyRank/bigdataball-data/internal/domain/player"
	"github.com/JonnyRank/bigdataball-data/internal/platform/logging"
)

// IngestFolders is the incoming/archive directory pair of one category.
type IngestFolders struct {
	Incoming string
	Archive  string
}

type IngestFileResult struct {
	File       string `json:"file"`
	Rows       int    `json:"rows"`
	Inserted   int    `json:"inserted"`
	Duplicates int    `json:"duplicates"`
	NewPlayers int    `json:"new_players"`
}

type IngestResult struct {
	Category   gamelog.Category   `json:"category"`
	Files      []IngestFileResult `json:"files"`
	Inserted   int                `json:"inserted"`
	Duplicates int                `json:"duplicates"`
	NewPlayers int                `json:"new_players"`
}

type IngestionService struct {
	inbox   gamelog.Inbox
	logs    gamelog.Repository
	players player.Repository
	logger  *logging.Logger
}

func NewIngestionService(
	inbox gamelog.Inbox,
	logs gamelog.Repository,
	players player.Repository,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		inbox:   inbox,
		logs:    logs,
		players: players,
		logger:  logger,
	}
}

// IngestFolder appends every pending file of folders.Incoming to the store
// of category c, oldest name first. Each file commits on its own and is
// archived only after its commit; the first failing file stops the run and
// stays in place together with every file after it.
func (s *IngestionService) IngestFolder(ctx context.Context, c gamelog.Category, folders IngestFolders) (IngestResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.IngestFolder")
	defer span.End()

	result := IngestResult{Category: c}
	if _, err := gamelog.ParseCategory(string(c)); err != nil {
		return result, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if strings.TrimSpace(folders.Incoming) == "" || strings.TrimSpace(folders.Archive) == "" {
		return result, fmt.Errorf("%w: incoming and archive folders are required", ErrInvalidInput)
	}

	files, err := s.inbox.Pending(ctx, folders.Incoming)
	if err != nil {
		return result, fmt.Errorf("list pending %s files: %w", c, err)
	}
	if len(files) == 0 {
		s.logger.InfoContext(ctx, "no pending files", "category", c, "dir", folders.Incoming)
		return result, nil
	}

	storedKeys, err := s.logs.LoadKeys(ctx, c)
	if err != nil {
		return result, fmt.Errorf("load %s keys: %w", c, err)
	}
	keys := gamelog.NewKeySet(storedKeys...)

	knownIDs, err := s.players.ListIDs(ctx)
	if err != nil {
		return result, fmt.Errorf("load player registry: %w", err)
	}
	registry := player.NewRegistry(knownIDs)

	s.logger.InfoContext(ctx, "ingesting files",
		"category", c,
		"files", len(files),
		"known_keys", keys.Len(),
		"known_players", registry.Len(),
	)

	for _, path := range files {
		file, err := s.ingestFile(ctx, c, path, folders.Archive, keys, registry)
		if err != nil {
			return result, fmt.Errorf("file %s: %w", filepath.Base(path), err)
		}
		result.Files = append(result.Files, file)
		result.Inserted += file.Inserted
		result.Duplicates += file.Duplicates
		result.NewPlayers += file.NewPlayers
	}

	s.logger.InfoContext(ctx, "ingestion finished",
		"category", c,
		"files", len(result.Files),
		"inserted", result.Inserted,
		"duplicates", result.Duplicates,
		"new_players", result.NewPlayers,
	)
	return result, nil
}

func (s *IngestionService) ingestFile(
	ctx context.Context,
	c gamelog.Category,
	path, archiveDir string,
	keys *gamelog.KeySet,
	registry *player.Registry,
) (IngestFileResult, error) {
	out := IngestFileResult{File: filepath.Base(path)}

	records, err := s.inbox.Read(ctx, path, c)
	if err != nil {
		return out, err
	}
	out.Rows = len(records)

	fresh, duplicates := keys.Partition(records)
	out.Duplicates = duplicates

	candidates := make([]player.Player, 0, len(fresh))
	for _, rec := range fresh {
		candidates = append(candidates, player.Player{ID: rec.PlayerID, Name: rec.Player})
	}
	newPlayers := registry.Missing(candidates)

	if len(fresh) > 0 || len(newPlayers) > 0 {
		if err := s.logs.AppendBatch(ctx, gamelog.Batch{
			Category: c,
			Players:  newPlayers,
			Records:  fresh,
		}); err != nil {
			return out, fmt.Errorf("append batch: %w", err)
		}
	}
	keys.AddRecords(fresh)
	registry.Admit(newPlayers)
	out.Inserted = len(fresh)
	out.NewPlayers = len(newPlayers)

	if err := s.inbox.Archive(ctx, path, archiveDir); err != nil {
		return out, fmt.Errorf("archive: %w", err)
	}

	s.logger.InfoContext(ctx, "file ingested",
		"category", c,
		"file", out.File,
		"rows", out.Rows,
		"inserted", out.Inserted,
		"duplicates", out.Duplicates,
		"new_players", out.NewPlayers,
	)
	return out, nil
}
