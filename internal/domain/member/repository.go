package member

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id uint64) (*Member, error)
	GetByEmail(ctx context.Context, email string) (*Member, error)
	List(ctx context.Context, includeInactive bool) ([]Member, error)
	Save(ctx context.Context, m *Member) error
	// Deactivate is the soft-delete path: IsActive=false, InactiveDate=when.
	Deactivate(ctx context.Context, id uint64, when time.Time) error
}
