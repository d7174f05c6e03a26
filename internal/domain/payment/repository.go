package payment

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id uint64) (*Payment, error)
	List(ctx context.Context, f Filter) ([]Payment, int64, error)
	Save(ctx context.Context, p *Payment) error
	Delete(ctx context.Context, id uint64) error

	// HasWeeklyDue reports whether the member already has a weekly row for the
	// week starting at periodStart. Used by the weekly dues generator.
	HasWeeklyDue(ctx context.Context, memberID uint64, periodStart time.Time) (bool, error)
}
