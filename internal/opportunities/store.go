package opportunities

import "context"

// Store is the backing persistence layer for opportunity listings. The
// aggregator relies on it for read consistency and a stable total order
// over (Seq, ID); it holds no locks of its own.
type Store interface {
	// FetchBatch returns up to batchSize raw candidates after the cursor
	// position, the cursor past the last returned candidate, and whether
	// the listing is exhausted. An empty cursor starts from the beginning.
	FetchBatch(ctx context.Context, category Category, f Filters, cursor string, batchSize int) (candidates []Summary, nextCursor string, exhausted bool, err error)

	// ResolveEntity reports whether the entity a candidate references
	// still exists and is well formed. A false result is not an error.
	ResolveEntity(ctx context.Context, category Category, id string) (bool, error)

	// GetPinned returns the opportunity pinned for the (user, language,
	// topic) scope in the filters, or nil when none is pinned.
	GetPinned(ctx context.Context, category Category, f Filters) (*Summary, error)

	// ResolveTopic maps a topic name to its id. A false result means no
	// topic carries that name.
	ResolveTopic(ctx context.Context, name string) (string, bool, error)
}
