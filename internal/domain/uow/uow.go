package uow

import (
	"context"

	"sangam-backend/internal/domain/loan"
)

type Repos struct {
	Loans        loan.Repository
	LoanRequests loan.RequestRepository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan request first, then pass it in
	WithinRequestTx(ctx context.Context, requestID string, fn func(r Repos, req *loan.LoanRequest) error) error
}
