package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	memberDomain "sangam-backend/internal/domain/member"
)

type MemberRepository struct{ db *gorm.DB }

func NewMemberRepository(db *gorm.DB) *MemberRepository { return &MemberRepository{db: db} }

func (r *MemberRepository) Create(ctx context.Context, m *memberDomain.Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MemberRepository) GetByID(ctx context.Context, id uint64) (*memberDomain.Member, error) {
	var out memberDomain.Member
	res := r.db.WithContext(ctx).First(&out, id)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, memberDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *MemberRepository) GetByEmail(ctx context.Context, email string) (*memberDomain.Member, error) {
	var out memberDomain.Member
	res := r.db.WithContext(ctx).Where("email = ?", email).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, memberDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *MemberRepository) List(ctx context.Context, includeInactive bool) ([]memberDomain.Member, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	var out []memberDomain.Member
	return out, q.Find(&out).Error
}

func (r *MemberRepository) Save(ctx context.Context, m *memberDomain.Member) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *MemberRepository) Deactivate(ctx context.Context, id uint64, when time.Time) error {
	res := r.db.WithContext(ctx).Model(&memberDomain.Member{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]any{"is_active": false, "inactive_date": when})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return memberDomain.ErrNotFound
	}
	return nil
}
