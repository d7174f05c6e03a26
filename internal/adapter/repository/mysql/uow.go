package mysql

import (
	"context"

	"gorm.io/gorm"

	"sangam-backend/internal/domain/loan"
	"sangam-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Loans:        &LoanRepository{db: tx},
			LoanRequests: &LoanRequestRepository{db: tx},
		}
		return fn(r)
	})
}

func (u *GormUoW) WithinRequestTx(ctx context.Context, requestID string, fn func(r uow.Repos, req *loan.LoanRequest) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Loans:        &LoanRepository{db: tx},
			LoanRequests: &LoanRequestRepository{db: tx},
		}
		// lock the request row up-front to prevent double processing
		req, err := r.LoanRequests.GetByRequestIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		return fn(r, req)
	})
}
