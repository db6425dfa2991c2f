package gamelog

import "context"

// Repository describes raw log persistence needs from use cases.
type Repository interface {
	// LoadKeys returns every dedup key stored for c; a missing table yields none.
	LoadKeys(ctx context.Context, c Category) ([]string, error)
	// AppendBatch inserts the batch's new players and records in one transaction.
	AppendBatch(ctx context.Context, b Batch) error
	List(ctx context.Context, c Category) ([]Record, error)
}

// Inbox lists, reads and archives the raw spreadsheet drops of one category.
type Inbox interface {
	// Pending returns the files waiting in dir in processing order.
	Pending(ctx context.Context, dir string) ([]string, error)
	Read(ctx context.Context, path string, c Category) ([]Record, error)
	Archive(ctx context.Context, path, archiveDir string) error
}
