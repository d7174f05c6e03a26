package loan

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("loan not found")
	ErrRequestNotFound  = errors.New("loan request not found")
	ErrAlreadyClosed    = errors.New("loan already closed")
	ErrAlreadyProcessed = errors.New("loan request already processed")
	ErrUnknownAction    = errors.New("unknown loan request action")
)

type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

// LoanType is static reference data: a named category carrying a fixed monthly
// interest rate (percent per 30-day period). Read-only after seeding.
type LoanType struct {
	ID                 uint64  `gorm:"primaryKey;column:id" json:"id"`
	Name               string  `gorm:"size:64;uniqueIndex:ux_loan_types_name;column:name" json:"name"`
	MonthlyRatePercent float64 `gorm:"type:decimal(6,3);column:monthly_rate_percent" json:"monthly_rate_percent"`
}

func (LoanType) TableName() string { return "loan_types" }

type Loan struct {
	ID               uint64     `gorm:"primaryKey;column:id" json:"-"`
	LoanID           string     `gorm:"size:32;uniqueIndex:ux_loans_loan_id;column:loan_id" json:"loan_id"`
	MemberID         uint64     `gorm:"column:member_id;index:idx_loans_member" json:"member_id"`
	LoanTypeID       uint64     `gorm:"column:loan_type_id;index" json:"loan_type_id"`
	Amount           float64    `gorm:"type:decimal(14,2);column:amount" json:"amount"`
	IssueDate        time.Time  `gorm:"column:issue_date" json:"issue_date"`
	DueDate          time.Time  `gorm:"column:due_date;index" json:"due_date"`
	ClosedDate       *time.Time `gorm:"column:closed_date" json:"closed_date,omitempty"`
	InterestReceived float64    `gorm:"type:decimal(14,2);column:interest_received" json:"interest_received"`
	Status           Status     `gorm:"size:16;column:status;default:'active'" json:"status"`
	ChequeNumber     string     `gorm:"size:32;column:cheque_number" json:"cheque_number,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

func (l *Loan) IsClosed() bool { return l.Status == StatusClosed || l.ClosedDate != nil }

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// LoanRequest is a member-submitted proposal. It transitions exactly once
// (pending -> accepted|rejected) and is retained untouched afterwards;
// acceptance spawns a Loan in the same transaction.
type LoanRequest struct {
	ID           uint64        `gorm:"primaryKey;column:id" json:"-"`
	RequestID    string        `gorm:"size:32;uniqueIndex:ux_loan_requests_request_id;column:request_id" json:"request_id"`
	MemberID     uint64        `gorm:"column:member_id;index:idx_loan_requests_member" json:"member_id"`
	LoanTypeID   uint64        `gorm:"column:loan_type_id" json:"loan_type_id"`
	Amount       float64       `gorm:"type:decimal(14,2);column:amount" json:"amount"`
	DueDate      time.Time     `gorm:"column:due_date" json:"due_date"`
	Status       RequestStatus `gorm:"size:16;column:status;default:'pending';index" json:"status"`
	Description  string        `gorm:"size:512;column:description" json:"description,omitempty"`
	ChequeNumber string        `gorm:"size:32;column:cheque_number" json:"cheque_number,omitempty"`
	RequestedAt  time.Time     `gorm:"column:requested_at" json:"requested_at"`
	ProcessedAt  *time.Time    `gorm:"column:processed_at" json:"processed_at,omitempty"`
	ProcessedBy  *uint64       `gorm:"column:processed_by" json:"processed_by,omitempty"`
	CreatedAt    time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LoanRequest) TableName() string { return "loan_requests" }
