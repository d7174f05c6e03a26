package loan

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	List(ctx context.Context) ([]Loan, error)
	// ListOpenDueBefore returns open loans with due_date <= horizon, oldest due
	// first, paginated. Feeds the loans-due dashboard.
	ListOpenDueBefore(ctx context.Context, horizon time.Time, offset, limit int) ([]Loan, int64, error)
	Save(ctx context.Context, l *Loan) error
	// Delete is a hard delete. Historical payment and audit rows keep the
	// public loan_id string only, so they survive the row's removal.
	Delete(ctx context.Context, loanID string) error
}

type RequestRepository interface {
	Create(ctx context.Context, r *LoanRequest) error
	GetByRequestID(ctx context.Context, requestID string) (*LoanRequest, error)
	// GetByRequestIDForUpdate locks the row for the enclosing transaction.
	GetByRequestIDForUpdate(ctx context.Context, requestID string) (*LoanRequest, error)
	ListPending(ctx context.Context) ([]LoanRequest, error)
	Save(ctx context.Context, r *LoanRequest) error
}

type TypeRepository interface {
	GetByID(ctx context.Context, id uint64) (*LoanType, error)
	List(ctx context.Context) ([]LoanType, error)
	// Seed inserts the given types if the table is empty.
	Seed(ctx context.Context, types []LoanType) error
}
