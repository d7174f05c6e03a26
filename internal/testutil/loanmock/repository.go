package loanmock

import (
	"context"
	"time"

	domain "sangam-backend/internal/domain/loan"
)

// Repo is a function-backed mock that satisfies loan.Repository.
// Only the methods a test needs must be set; the rest return zero values.
type Repo struct {
	CreateFn            func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn       func(ctx context.Context, loanID string) (*domain.Loan, error)
	ListFn              func(ctx context.Context) ([]domain.Loan, error)
	ListOpenDueBeforeFn func(ctx context.Context, horizon time.Time, offset, limit int) ([]domain.Loan, int64, error)
	SaveFn              func(ctx context.Context, l *domain.Loan) error
	DeleteFn            func(ctx context.Context, loanID string) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context) ([]domain.Loan, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Repo) ListOpenDueBefore(ctx context.Context, horizon time.Time, offset, limit int) ([]domain.Loan, int64, error) {
	if m.ListOpenDueBeforeFn != nil {
		return m.ListOpenDueBeforeFn(ctx, horizon, offset, limit)
	}
	return nil, 0, nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, loanID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, loanID)
	}
	return nil
}

// Types satisfies loan.TypeRepository with a fixed table.
type Types struct {
	Table []domain.LoanType
}

func (t *Types) GetByID(ctx context.Context, id uint64) (*domain.LoanType, error) {
	for i := range t.Table {
		if t.Table[i].ID == id {
			return &t.Table[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (t *Types) List(ctx context.Context) ([]domain.LoanType, error) { return t.Table, nil }

func (t *Types) Seed(ctx context.Context, types []domain.LoanType) error {
	if len(t.Table) == 0 {
		t.Table = types
	}
	return nil
}

// Requests is a function-backed mock for loan.RequestRepository.
type Requests struct {
	CreateFn                  func(ctx context.Context, r *domain.LoanRequest) error
	GetByRequestIDFn          func(ctx context.Context, requestID string) (*domain.LoanRequest, error)
	GetByRequestIDForUpdateFn func(ctx context.Context, requestID string) (*domain.LoanRequest, error)
	ListPendingFn             func(ctx context.Context) ([]domain.LoanRequest, error)
	SaveFn                    func(ctx context.Context, r *domain.LoanRequest) error
}

func (m *Requests) Create(ctx context.Context, r *domain.LoanRequest) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Requests) GetByRequestID(ctx context.Context, requestID string) (*domain.LoanRequest, error) {
	if m.GetByRequestIDFn != nil {
		return m.GetByRequestIDFn(ctx, requestID)
	}
	return nil, domain.ErrRequestNotFound
}

func (m *Requests) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*domain.LoanRequest, error) {
	if m.GetByRequestIDForUpdateFn != nil {
		return m.GetByRequestIDForUpdateFn(ctx, requestID)
	}
	return nil, domain.ErrRequestNotFound
}

func (m *Requests) ListPending(ctx context.Context) ([]domain.LoanRequest, error) {
	if m.ListPendingFn != nil {
		return m.ListPendingFn(ctx)
	}
	return nil, nil
}

func (m *Requests) Save(ctx context.Context, r *domain.LoanRequest) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}
