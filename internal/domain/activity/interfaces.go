package activity

import "context"

// Repository stores a meeting's activity log. Append writes all entries or
// none and fills in their IDs.
type Repository interface {
	Append(ctx context.Context, entries []ActivityEntry) error
	List(ctx context.Context, opts ListActivityOptions) ([]ActivityEntry, error)
}
