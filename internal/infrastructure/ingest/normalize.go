package ingest

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"

	"github.com/JonnyRank/bigdataball-data/internal/domain/gamelog"
)

// headerScanRows bounds how far down a sheet the header row may sit.
const headerScanRows = 50

// maxExcelSerial is 9999-12-31 in the 1900 date system.
const maxExcelSerial = 2958465

var (
	ErrHeaderNotFound = errors.New("header row not found")
	ErrMissingColumn  = errors.New("missing required column")
	ErrMalformedDate  = errors.New("malformed date")
	ErrMalformedValue = errors.New("malformed value")
)

var requiredFields = []string{gamelog.FieldPlayerID, gamelog.FieldPlayer, gamelog.FieldDate}

var dateLayouts = []string{
	gamelog.DateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"2006/01/02",
	"Jan 2, 2006",
}

// NormalizeHeader turns a raw header cell into its key form: every run of
// characters other than letters and digits becomes one underscore, edge
// underscores are trimmed and the result is upper-cased. "STARTER (Y/N)"
// becomes "STARTER_Y_N".
func NormalizeHeader(raw string) string {
	var b strings.Builder
	pending := false
	for _, r := range raw {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		pending = true
	}
	return b.String()
}

// NormalizeHeaders normalizes a header row and suffixes repeated names with
// _1, _2 in order of appearance.
func NormalizeHeaders(cells []string) []string {
	out := make([]string, len(cells))
	seen := make(map[string]int, len(cells))
	for i, cell := range cells {
		name := NormalizeHeader(cell)
		if name == "" {
			continue
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		} else {
			seen[name] = 0
		}
		out[i] = name
	}
	return out
}

// Normalizer converts raw sheets into validated game records.
type Normalizer struct {
	catalog  Catalog
	validate *validator.Validate
}

func NewNormalizer(catalog Catalog) *Normalizer {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Normalizer{
		catalog:  catalog,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// header is a located header row with canonical field positions.
type header struct {
	row    int
	fields map[string]int
}

func (n *Normalizer) locateHeader(rows [][]string, profile Profile) (header, error) {
	limit := len(rows)
	if limit > headerScanRows {
		limit = headerScanRows
	}
	for i := 0; i < limit; i++ {
		fields := make(map[string]int)
		for col, name := range NormalizeHeaders(rows[i]) {
			if name == "" {
				continue
			}
			field, keep := profile.canonical(name)
			if !keep {
				continue
			}
			if _, exists := fields[field]; !exists {
				fields[field] = col
			}
		}
		if containsAll(fields, profile.Signature) {
			return header{row: i, fields: fields}, nil
		}
	}
	return header{}, fmt.Errorf("%w: no row with %s in the first %d rows", ErrHeaderNotFound, strings.Join(profile.Signature, ", "), limit)
}

func containsAll(fields map[string]int, names []string) bool {
	if len(names) == 0 {
		return false
	}
	for _, n := range names {
		if _, ok := fields[n]; !ok {
			return false
		}
	}
	return true
}

// Normalize parses sheet rows into records of category c. Blank rows are
// skipped; any malformed required value fails the whole sheet.
func (n *Normalizer) Normalize(sheet Sheet, c gamelog.Category) ([]gamelog.Record, error) {
	profile, err := n.catalog.Profile(c)
	if err != nil {
		return nil, err
	}
	layout, ok := gamelog.LayoutOf(c)
	if !ok {
		return nil, fmt.Errorf("no storage layout for category %q", c)
	}

	h, err := n.locateHeader(sheet.Rows, profile)
	if err != nil {
		return nil, err
	}
	for _, field := range requiredFields {
		if _, ok := h.fields[field]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, field)
		}
	}

	start := h.row + 1 + profile.skip()
	records := make([]gamelog.Record, 0, max(len(sheet.Rows)-start, 0))
	for i := start; i < len(sheet.Rows); i++ {
		row := sheet.Rows[i]
		if blank(row) {
			continue
		}
		rec, err := n.record(row, h, layout, sheet.Date1904)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (n *Normalizer) record(row []string, h header, layout gamelog.Layout, date1904 bool) (gamelog.Record, error) {
	cell := func(field string) string {
		col, ok := h.fields[field]
		if !ok || col >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[col])
	}

	id, err := parseID(cell(gamelog.FieldPlayerID))
	if err != nil {
		return gamelog.Record{}, err
	}
	date, err := parseDate(cell(gamelog.FieldDate), date1904)
	if err != nil {
		return gamelog.Record{}, err
	}

	rec := gamelog.Record{
		PlayerID: id,
		Player:   cell(gamelog.FieldPlayer),
		Date:     date,
		Text:     make(map[string]string),
		Numbers:  make(map[string]float64),
	}
	for _, col := range layout.Columns {
		raw := cell(col.Field)
		if raw == "" {
			continue
		}
		switch col.Kind {
		case gamelog.KindNumber:
			v, present, err := parseNumber(raw)
			if err != nil {
				return gamelog.Record{}, fmt.Errorf("%s: %w", col.Field, err)
			}
			if present {
				rec.Numbers[col.Field] = v
			}
		default:
			rec.Text[col.Field] = raw
		}
	}

	if err := n.validate.Struct(rec); err != nil {
		return gamelog.Record{}, fmt.Errorf("%w: %v", ErrMalformedValue, err)
	}
	return rec, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseID(raw string) (int64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: empty %s", ErrMalformedValue, gamelog.FieldPlayerID)
	}
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %s %q", ErrMalformedValue, gamelog.FieldPlayerID, raw)
	}
	return int64(f), nil
}

// parseDate accepts Excel serial dates and common text layouts and returns
// the stored calendar-date form.
func parseDate(raw string, date1904 bool) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: empty %s", ErrMalformedDate, gamelog.FieldDate)
	}
	if len(raw) == 8 {
		if t, err := time.Parse("20060102", raw); err == nil {
			return t.Format(gamelog.DateLayout), nil
		}
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, date1904)
		if err != nil || serial <= 0 || serial > maxExcelSerial {
			return "", fmt.Errorf("%w: %q", ErrMalformedDate, raw)
		}
		return t.Format(gamelog.DateLayout), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(gamelog.DateLayout), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrMalformedDate, raw)
}

// parseNumber returns present=false for cells that mean "no value".
func parseNumber(raw string) (float64, bool, error) {
	switch raw {
	case "", "-", "--", "N/A", "NA", "#N/A":
		return 0, false, nil
	}
	clean := strings.ReplaceAll(raw, ",", "")
	clean = strings.TrimSuffix(clean, "%")
	v, err := strconv.ParseFloat(strings.TrimSpace(clean), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("%w: %q", ErrMalformedValue, raw)
	}
	return v, true, nil
}
