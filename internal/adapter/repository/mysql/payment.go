package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	paymentDomain "sangam-backend/internal/domain/payment"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uint64) (*paymentDomain.Payment, error) {
	var out paymentDomain.Payment
	res := r.db.WithContext(ctx).First(&out, id)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, paymentDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *PaymentRepository) List(ctx context.Context, f paymentDomain.Filter) ([]paymentDomain.Payment, int64, error) {
	q := r.db.WithContext(ctx).Model(&paymentDomain.Payment{})
	if f.MemberID != nil {
		q = q.Where("member_id = ?", *f.MemberID)
	}
	if f.Kind != "" {
		q = q.Where("kind = ?", f.Kind)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, size := f.Page, f.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 50
	}
	var out []paymentDomain.Payment
	err := q.Order("created_at DESC, id DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&out).Error
	return out, total, err
}

func (r *PaymentRepository) Save(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PaymentRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&paymentDomain.Payment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return paymentDomain.ErrNotFound
	}
	return nil
}

func (r *PaymentRepository) HasWeeklyDue(ctx context.Context, memberID uint64, periodStart time.Time) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&paymentDomain.Payment{}).
		Where("member_id = ? AND kind = ? AND period_start = ?", memberID, paymentDomain.KindWeekly, periodStart).
		Count(&n).Error
	return n > 0, err
}
