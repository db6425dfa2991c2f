package player

import "context"

// Repository describes registry persistence needs from use cases.
type Repository interface {
	ListIDs(ctx context.Context) ([]int64, error)
	List(ctx context.Context) ([]Player, error)
	// Rename changes the canonical name of every entry named from; it returns the affected row count.
	Rename(ctx context.Context, from, to string) (int64, error)
}
