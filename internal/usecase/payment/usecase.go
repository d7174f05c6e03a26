package payment

import (
	"context"
	"errors"
	"time"

	"sangam-backend/internal/domain/payment"
)

type Usecase struct{ repo payment.Repository }

func NewUsecase(r payment.Repository) *Usecase { return &Usecase{repo: r} }

type PaymentInput struct {
	MemberID  uint64     `json:"member_id" validate:"required"`
	Kind      string     `json:"kind" validate:"required,oneof=weekly main"`
	Amount    float64    `json:"amount" validate:"required,gt=0"`
	PaidAt    *time.Time `json:"paid_at"`
	MeetingID *uint64    `json:"meeting_id"`
	Note      string     `json:"note"`
}

type ListInput struct {
	MemberID *uint64
	Kind     string
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

type PageDTO struct {
	Payments []payment.Payment `json:"payments"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

func (u *Usecase) Create(ctx context.Context, in PaymentInput) (*payment.Payment, error) {
	if !payment.ValidKind(in.Kind) {
		return nil, errors.New("invalid payment kind")
	}
	paidAt := in.PaidAt
	if paidAt == nil {
		now := time.Now().UTC()
		paidAt = &now
	}
	p := &payment.Payment{
		MemberID:  in.MemberID,
		Kind:      payment.Kind(in.Kind),
		Amount:    in.Amount,
		Status:    payment.StatusPaid,
		PaidAt:    paidAt,
		MeetingID: in.MeetingID,
		Note:      in.Note,
	}
	if err := u.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*payment.Payment, error) {
	return u.repo.GetByID(ctx, id)
}

func (u *Usecase) List(ctx context.Context, in ListInput) (*PageDTO, error) {
	f := payment.Filter{
		MemberID: in.MemberID,
		Kind:     payment.Kind(in.Kind),
		From:     in.From,
		To:       in.To,
		Page:     in.Page,
		PageSize: in.PageSize,
	}
	items, total, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	page, size := in.Page, in.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 50
	}
	return &PageDTO{Payments: items, Total: total, Page: page, PageSize: size}, nil
}

func (u *Usecase) Update(ctx context.Context, id uint64, in PaymentInput) (*payment.Payment, error) {
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !payment.ValidKind(in.Kind) {
		return nil, errors.New("invalid payment kind")
	}
	p.MemberID = in.MemberID
	p.Kind = payment.Kind(in.Kind)
	p.Amount = in.Amount
	if in.PaidAt != nil {
		p.PaidAt = in.PaidAt
		p.Status = payment.StatusPaid
	}
	p.MeetingID = in.MeetingID
	p.Note = in.Note
	if err := u.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// MarkPaid settles a generated weekly due.
func (u *Usecase) MarkPaid(ctx context.Context, id uint64, when time.Time) (*payment.Payment, error) {
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	w := when.UTC()
	p.Status = payment.StatusPaid
	p.PaidAt = &w
	if err := u.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *Usecase) Delete(ctx context.Context, id uint64) error {
	return u.repo.Delete(ctx, id)
}
