package slate

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// entriesScanRows bounds how far down an entries export the player table header may sit.
const entriesScanRows = 50

var ErrEntriesHeaderNotFound = errors.New("entries header not found")

// ParseEntries reads a DraftKings entries export and returns the unique
// values of its Name column in order of first appearance. The player table
// header is the first line mentioning both "Position" and "Name + ID".
func ParseEntries(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	nameCol := -1
	for i := 0; i < entriesScanRows && nameCol < 0; i++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read entries: %w", err)
		}
		line := strings.Join(record, ",")
		if !strings.Contains(line, "Position") || !strings.Contains(line, "Name + ID") {
			continue
		}
		for col, cell := range record {
			if strings.TrimSpace(cell) == "Name" {
				nameCol = col
				break
			}
		}
		if nameCol < 0 {
			return nil, fmt.Errorf("%w: no Name column on line %d", ErrEntriesHeaderNotFound, i+1)
		}
	}
	if nameCol < 0 {
		return nil, fmt.Errorf("%w in the first %d lines", ErrEntriesHeaderNotFound, entriesScanRows)
	}

	var names []string
	seen := make(map[string]struct{})
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read entries: %w", err)
		}
		if nameCol >= len(record) {
			continue
		}
		name := strings.TrimSpace(record[nameCol])
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}
