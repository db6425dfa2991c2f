package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/JonnyRank/bigdataball-data/internal/domain/namematch"
	"github.com/JonnyRank/bigdataball-data/internal/domain/slate"
	"github.com/JonnyRank/bigdataball-data/internal/domain/summary"
	"github.com/JonnyRank/bigdataball-data/internal/platform/logging"
)

// SlateInput selects the entries file, the seasons and the outputs of one
// slate extraction. Empty seasons are derived from the run date.
type SlateInput struct {
	EntriesPath   string
	PriorSeason   string
	CurrentSeason string
	MinPriorGP    int
	WriteCSV      bool
	WriteView     bool
}

type SlateResult struct {
	Entries       int               `json:"entries"`
	Players       []string          `json:"players"`
	Renamed       []namematch.Match `json:"renamed,omitempty"`
	Rejected      []namematch.Match `json:"rejected,omitempty"`
	PriorSeason   string            `json:"prior_season"`
	CurrentSeason string            `json:"current_season"`
	Files         []string          `json:"files,omitempty"`
	View          string            `json:"view,omitempty"`
}

type SlateService struct {
	slates   slate.Repository
	sink     summary.Sink
	resolver namematch.Resolver
	now      func() time.Time
	logger   *logging.Logger
}

func NewSlateService(slates slate.Repository, sink summary.Sink, resolver namematch.Resolver, logger *logging.Logger) *SlateService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SlateService{
		slates:   slates,
		sink:     sink,
		resolver: resolver,
		now:      time.Now,
		logger:   logger,
	}
}

// Extract resolves the entries file's player names against the regular
// season view and writes the requested outputs for the matched players.
func (s *SlateService) Extract(ctx context.Context, input SlateInput) (SlateResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SlateService.Extract")
	defer span.End()

	var result SlateResult
	if !input.WriteCSV && !input.WriteView {
		return result, fmt.Errorf("%w: choose at least one of csv or view output", ErrInvalidInput)
	}
	if strings.TrimSpace(input.EntriesPath) == "" {
		return result, fmt.Errorf("%w: entries path is required", ErrInvalidInput)
	}

	now := s.now()
	prior, current := slate.SeasonsAt(now)
	if strings.TrimSpace(input.PriorSeason) != "" {
		prior = strings.TrimSpace(input.PriorSeason)
	}
	if strings.TrimSpace(input.CurrentSeason) != "" {
		current = strings.TrimSpace(input.CurrentSeason)
	}
	result.PriorSeason = prior
	result.CurrentSeason = current

	entries, err := readEntries(input.EntriesPath)
	if err != nil {
		return result, err
	}
	result.Entries = len(entries)

	refs, err := s.slates.References(ctx)
	if err != nil {
		return result, fmt.Errorf("load reference players: %w", err)
	}
	resolved := s.resolver.Resolve(entries, refs)
	result.Players = resolved.Names
	result.Rejected = resolved.Rejected
	for _, m := range resolved.Accepted {
		if m.Query != m.Name {
			result.Renamed = append(result.Renamed, m)
			s.logger.InfoContext(ctx, "mapped entry name", "entry", m.Query, "player", m.Name, "score", m.Score)
		}
	}
	for _, m := range resolved.Rejected {
		s.logger.WarnContext(ctx, "entry name below match threshold", "entry", m.Query, "best", m.Name, "score", m.Score)
	}
	s.logger.InfoContext(ctx, "slate players resolved",
		"entries", result.Entries,
		"players", len(result.Players),
		"rejected", len(result.Rejected),
	)

	if input.WriteCSV {
		stamp := now.Format(ExportTimestampLayout)
		averages, err := s.slates.Averages(ctx, result.Players, []string{prior, current})
		if err != nil {
			return result, fmt.Errorf("select slate averages: %w", err)
		}
		path, err := s.sink.Write(ctx, exportName(slate.AveragesBase, stamp), averages)
		if err != nil {
			return result, fmt.Errorf("write slate averages: %w", err)
		}
		result.Files = append(result.Files, path)

		trailing, err := s.slates.TrailingAverages(ctx, result.Players, current)
		if err != nil {
			return result, fmt.Errorf("select slate trailing averages: %w", err)
		}
		path, err = s.sink.Write(ctx, exportName(slate.TrailingAveragesBase, stamp), trailing)
		if err != nil {
			return result, fmt.Errorf("write slate trailing averages: %w", err)
		}
		result.Files = append(result.Files, path)
	}

	if input.WriteView {
		if err := s.slates.CreateView(ctx, slate.Selection{
			Players:       result.Players,
			PriorSeason:   prior,
			CurrentSeason: current,
			MinPriorGP:    input.MinPriorGP,
		}); err != nil {
			return result, fmt.Errorf("create %s: %w", slate.ViewName, err)
		}
		result.View = slate.ViewName
	}
	return result, nil
}

func readEntries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: entries file %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open entries file: %w", err)
	}
	defer f.Close()

	names, err := slate.ParseEntries(f)
	if err != nil {
		return nil, fmt.Errorf("parse entries file: %w", err)
	}
	return names, nil
}
