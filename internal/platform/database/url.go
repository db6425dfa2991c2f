package database

import (
	"net/url"
	"path/filepath"
	"strings"
)

// normalizeDSN fills in driver defaults without overriding explicit values.
// Plain SQLite paths become file: URIs with a busy timeout and WAL journaling.
func normalizeDSN(driver, raw string) string {
	raw = strings.TrimSpace(raw)
	switch driver {
	case DriverSQLite:
		if raw == ":memory:" || strings.Contains(raw, "mode=memory") {
			return raw
		}
		dsn := raw
		if !strings.HasPrefix(dsn, "file:") {
			dsn = "file:" + filepath.ToSlash(dsn)
		}
		path, rawQuery, _ := strings.Cut(dsn, "?")
		query, err := url.ParseQuery(rawQuery)
		if err != nil {
			return raw
		}
		setDefault(query, "_busy_timeout", "5000")
		setDefault(query, "_journal_mode", "WAL")
		return path + "?" + query.Encode()
	case DriverPostgres:
		parsed, err := url.Parse(raw)
		if err != nil || parsed == nil || parsed.Scheme == "" {
			return raw
		}
		query := parsed.Query()
		setDefault(query, "application_name", "bigdataball-data")
		parsed.RawQuery = query.Encode()
		return parsed.String()
	default:
		return raw
	}
}

func setDefault(query url.Values, key, value string) {
	if query.Get(key) == "" {
		query.Set(key, value)
	}
}

// dbName extracts a short database name for trace attributes.
func dbName(driver, raw string) string {
	trimmed := strings.TrimSpace(raw)
	if driver == DriverSQLite {
		path, _, _ := strings.Cut(strings.TrimPrefix(trimmed, "file:"), "?")
		if path == "" || path == ":memory:" {
			return "memory"
		}
		base := filepath.Base(path)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}

	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if !strings.HasPrefix(token, "dbname=") {
			continue
		}
		name := strings.Trim(strings.TrimPrefix(token, "dbname="), `"'`)
		if name != "" {
			return name
		}
	}

	return ""
}
