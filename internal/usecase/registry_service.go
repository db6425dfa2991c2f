package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/JonnyRank/bigdataball-data/internal/domain/player"
	"github.com/JonnyRank/bigdataball-data/internal/platform/logging"
)

type RegistryService struct {
	players player.Repository
	logger  *logging.Logger
}

func NewRegistryService(players player.Repository, logger *logging.Logger) *RegistryService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RegistryService{players: players, logger: logger}
}

// Rename corrects a canonical registry name. Ingestion never rewrites names,
// so this is the only way an entry changes after its first insert.
func (s *RegistryService) Rename(ctx context.Context, from, to string) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistryService.Rename")
	defer span.End()

	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from == "" || to == "" {
		return 0, fmt.Errorf("%w: from and to names are required", ErrInvalidInput)
	}
	if from == to {
		return 0, fmt.Errorf("%w: from and to names are identical", ErrInvalidInput)
	}

	updated, err := s.players.Rename(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("rename player %q: %w", from, err)
	}
	if updated == 0 {
		return 0, fmt.Errorf("%w: no registry entry named %q", ErrNotFound, from)
	}

	s.logger.InfoContext(ctx, "player renamed", "from", from, "to", to, "rows", updated)
	return updated, nil
}
