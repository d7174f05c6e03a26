package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	loanDomain "sangam-backend/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *LoanRepository) List(ctx context.Context) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	return out, r.db.WithContext(ctx).Order("issue_date DESC, id DESC").Find(&out).Error
}

func (r *LoanRepository) ListOpenDueBefore(ctx context.Context, horizon time.Time, offset, limit int) ([]loanDomain.Loan, int64, error) {
	q := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("status = ? AND closed_date IS NULL AND due_date <= ?", loanDomain.StatusActive, horizon)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []loanDomain.Loan
	err := q.Order("due_date ASC, id ASC").Offset(offset).Limit(limit).Find(&out).Error
	return out, total, err
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) Delete(ctx context.Context, loanID string) error {
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).Delete(&loanDomain.Loan{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return loanDomain.ErrNotFound
	}
	return nil
}

type LoanTypeRepository struct{ db *gorm.DB }

func NewLoanTypeRepository(db *gorm.DB) *LoanTypeRepository { return &LoanTypeRepository{db: db} }

func (r *LoanTypeRepository) GetByID(ctx context.Context, id uint64) (*loanDomain.LoanType, error) {
	var out loanDomain.LoanType
	res := r.db.WithContext(ctx).First(&out, id)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *LoanTypeRepository) List(ctx context.Context) ([]loanDomain.LoanType, error) {
	var out []loanDomain.LoanType
	return out, r.db.WithContext(ctx).Order("id ASC").Find(&out).Error
}

func (r *LoanTypeRepository) Seed(ctx context.Context, types []loanDomain.LoanType) error {
	var n int64
	if err := r.db.WithContext(ctx).Model(&loanDomain.LoanType{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 || len(types) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&types).Error
}

type LoanRequestRepository struct{ db *gorm.DB }

func NewLoanRequestRepository(db *gorm.DB) *LoanRequestRepository {
	return &LoanRequestRepository{db: db}
}

func (r *LoanRequestRepository) Create(ctx context.Context, req *loanDomain.LoanRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *LoanRequestRepository) GetByRequestID(ctx context.Context, requestID string) (*loanDomain.LoanRequest, error) {
	var out loanDomain.LoanRequest
	res := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrRequestNotFound
	}
	return &out, res.Error
}

// GetByRequestIDForUpdate takes a row lock; only meaningful inside a
// transaction started by the unit of work.
func (r *LoanRequestRepository) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*loanDomain.LoanRequest, error) {
	var out loanDomain.LoanRequest
	res := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("request_id = ?", requestID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrRequestNotFound
	}
	return &out, res.Error
}

func (r *LoanRequestRepository) ListPending(ctx context.Context) ([]loanDomain.LoanRequest, error) {
	var out []loanDomain.LoanRequest
	return out, r.db.WithContext(ctx).
		Where("status = ?", loanDomain.RequestPending).
		Order("requested_at ASC, id ASC").Find(&out).Error
}

func (r *LoanRequestRepository) Save(ctx context.Context, req *loanDomain.LoanRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}
