package activity

import (
	"context"
	"time"
)

type Repository interface {
	// Append writes one record. The caller (the audit worker) supplies its own
	// context; the write must not borrow any request-scoped resource.
	Append(ctx context.Context, r *Record) error
	Search(ctx context.Context, f Filter) (*Page, error)
	Statistics(ctx context.Context, from, to time.Time) (*Stats, error)
}
