package loan

import "time"

type CreateLoanInput struct {
	MemberID     uint64    `json:"member_id"`
	LoanTypeID   uint64    `json:"loan_type_id"`
	Amount       float64   `json:"amount"`
	IssueDate    time.Time `json:"issue_date"`
	DueDate      time.Time `json:"due_date"`
	ChequeNumber string    `json:"cheque_number"`
}

// LoanView is a loan as returned by the API: the stored record plus the
// derived interest/due fields, computed at request time and never persisted.
type LoanView struct {
	LoanID           string     `json:"loan_id"`
	MemberID         uint64     `json:"member_id"`
	LoanTypeID       uint64     `json:"loan_type_id"`
	Amount           float64    `json:"amount"`
	MonthlyRate      float64    `json:"monthly_rate_percent"`
	IssueDate        time.Time  `json:"issue_date"`
	DueDate          time.Time  `json:"due_date"`
	ClosedDate       *time.Time `json:"closed_date,omitempty"`
	InterestReceived float64    `json:"interest_received"`
	Status           string     `json:"status"`
	ChequeNumber     string     `json:"cheque_number,omitempty"`

	InterestAmount float64 `json:"interest_amount"`
	DueState       string  `json:"due_state"`
	IsOverdue      bool    `json:"is_overdue"`
	DaysOverdue    int     `json:"days_overdue,omitempty"`
	DaysUntilDue   int     `json:"days_until_due,omitempty"`
}

type DuePage struct {
	Loans      []LoanView `json:"loans"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}
