package csvexport

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/valyala/bytebufferpool"

	"github.com/JonnyRank/bigdataball-data/internal/domain/summary"
)

// Writer stores extracts as CSV files in one directory. Header names are
// upper-cased to match the spreadsheet columns downstream workbooks read.
type Writer struct {
	dir string
}

var _ summary.Sink = (*Writer)(nil)

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

func (w *Writer) Dir() string {
	return w.dir
}

// Write renders e to "<dir>/<name>.csv" and returns the path. The file is
// written under a temporary name and renamed into place.
func (w *Writer) Write(ctx context.Context, name string, e summary.Extract) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid export name %q", name)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	out := csv.NewWriter(buf)
	header := make([]string, len(e.Columns))
	for i, col := range e.Columns {
		header[i] = strings.ToUpper(col)
	}
	if err := out.Write(header); err != nil {
		return "", fmt.Errorf("encode %s header: %w", name, err)
	}
	if err := out.WriteAll(e.Rows); err != nil {
		return "", fmt.Errorf("encode %s rows: %w", name, err)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	target := filepath.Join(w.dir, name+".csv")
	tmp, err := os.CreateTemp(w.dir, "."+name+"-*")
	if err != nil {
		return "", fmt.Errorf("create temp export: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(buf.B); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write %s: %w", target, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", target, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return "", fmt.Errorf("move %s into place: %w", target, err)
	}
	return target, nil
}
