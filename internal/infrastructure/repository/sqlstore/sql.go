package sqlstore

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// insertChunkRows bounds rows per multi-row INSERT so statements stay under
// the bind-parameter limits of both drivers.
const insertChunkRows = 400

func nullableString(v string) sql.NullString {
	if strings.TrimSpace(v) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

func nullStringToString(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}

func chunks[T any](items []T, size int) [][]T {
	var out [][]T
	for size < len(items) {
		items, out = items[size:], append(out, items[:size:size])
	}
	if len(items) > 0 {
		out = append(out, items)
	}
	return out
}

// cellText renders a scanned driver value for tabular export.
func cellText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(t)
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}

// dateText normalizes a stored game date, which drivers may return as
// text or as a timestamp.
func dateText(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format("2006-01-02")
	default:
		s := cellText(v)
		if len(s) > 10 {
			return s[:10]
		}
		return s
	}
}
