package membermock

import (
	"context"
	"time"

	domain "sangam-backend/internal/domain/member"
)

// Repo is a function-backed mock that satisfies member.Repository.
type Repo struct {
	CreateFn     func(ctx context.Context, m *domain.Member) error
	GetByIDFn    func(ctx context.Context, id uint64) (*domain.Member, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.Member, error)
	ListFn       func(ctx context.Context, includeInactive bool) ([]domain.Member, error)
	SaveFn       func(ctx context.Context, m *domain.Member) error
	DeactivateFn func(ctx context.Context, id uint64, when time.Time) error
}

func (m *Repo) Create(ctx context.Context, mm *domain.Member) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, mm)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Member, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context, includeInactive bool) ([]domain.Member, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, includeInactive)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, mm *domain.Member) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, mm)
	}
	return nil
}

func (m *Repo) Deactivate(ctx context.Context, id uint64, when time.Time) error {
	if m.DeactivateFn != nil {
		return m.DeactivateFn(ctx, id, when)
	}
	return nil
}
