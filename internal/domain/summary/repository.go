package summary

import "context"

// Extract is a tabular read of a relation with cells rendered as text.
type Extract struct {
	Columns []string
	Rows    [][]string
}

// Repository describes summary persistence needs from use cases.
type Repository interface {
	// MissingTables returns those of tables that do not exist in the store.
	MissingTables(ctx context.Context, tables ...string) ([]string, error)
	// TeamMappings returns raw team name to abbreviation.
	TeamMappings(ctx context.Context) (map[string]string, error)
	// Replace swaps the whole summary table for rows in one transaction.
	Replace(ctx context.Context, rows []Row) error
	// CreateView drops and recreates v as a season-type filter of the summary table.
	CreateView(ctx context.Context, v View) error
	ReadView(ctx context.Context, name string) (Extract, error)
}

// Sink persists an extract outside the store and returns where it went.
type Sink interface {
	Write(ctx context.Context, name string, e Extract) (string, error)
}
