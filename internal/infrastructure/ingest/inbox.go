package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/JonnyRank/bigdataball-data/internal/domain/gamelog"
)

// Inbox is the folder-backed gamelog.Inbox.
type Inbox struct {
	normalizer *Normalizer
}

var _ gamelog.Inbox = (*Inbox)(nil)

func NewInbox(catalog Catalog) *Inbox {
	return &Inbox{normalizer: NewNormalizer(catalog)}
}

// Pending lists spreadsheet files directly in dir sorted by name. Office
// lock files and hidden files are ignored. A missing dir has nothing pending.
func (i *Inbox) Pending(ctx context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "~$") || strings.HasPrefix(name, ".") || !Supported(name) {
			continue
		}
		out = append(out, filepath.Join(dir, name))
	}
	sort.Strings(out)
	return out, ctx.Err()
}

func (i *Inbox) Read(ctx context.Context, path string, c gamelog.Category) ([]gamelog.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sheet, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	records, err := i.normalizer.Normalize(sheet, c)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return records, nil
}

// Archive moves path into archiveDir, creating it when needed.
func (i *Inbox) Archive(ctx context.Context, path, archiveDir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return fmt.Errorf("create archive dir %s: %w", archiveDir, err)
	}
	dst := filepath.Join(archiveDir, filepath.Base(path))
	if err := os.Rename(path, dst); err != nil {
		return fmt.Errorf("archive %s: %w", filepath.Base(path), err)
	}
	return nil
}
