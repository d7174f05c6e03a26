package payment

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("payment not found")

type Kind string

const (
	KindWeekly Kind = "weekly"
	KindMain   Kind = "main"
)

func ValidKind(k string) bool { return Kind(k) == KindWeekly || Kind(k) == KindMain }

type Status string

const (
	StatusDue  Status = "due"
	StatusPaid Status = "paid"
)

type Payment struct {
	ID       uint64  `gorm:"primaryKey;column:id" json:"id"`
	MemberID uint64  `gorm:"column:member_id;index:idx_payments_member" json:"member_id"`
	Kind     Kind    `gorm:"size:16;column:kind;index" json:"kind"`
	Amount   float64 `gorm:"type:decimal(12,2);column:amount" json:"amount"`
	Status   Status  `gorm:"size:16;column:status;default:'paid'" json:"status"`
	// PeriodStart marks the Monday of the week a weekly due belongs to.
	PeriodStart *time.Time `gorm:"column:period_start;index" json:"period_start,omitempty"`
	PaidAt      *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`
	MeetingID   *uint64    `gorm:"column:meeting_id" json:"meeting_id,omitempty"`
	Note        string     `gorm:"size:256;column:note" json:"note"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }

type Filter struct {
	MemberID *uint64
	Kind     Kind
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}
