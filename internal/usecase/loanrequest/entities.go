package loanrequest

import "time"

type SubmitInput struct {
	LoanTypeID uint64    `json:"loan_type_id"`
	Amount     float64   `json:"amount"`
	DueDate    time.Time `json:"due_date"`
}

type ActionInput struct {
	Action       string `json:"action" validate:"required,oneof=Accepted Rejected"`
	Description  string `json:"description"`
	ChequeNumber string `json:"cheque_number"`
}

type RequestDTO struct {
	RequestID    string     `json:"request_id"`
	MemberID     uint64     `json:"member_id"`
	LoanTypeID   uint64     `json:"loan_type_id"`
	Amount       float64    `json:"amount"`
	DueDate      time.Time  `json:"due_date"`
	Status       string     `json:"status"`
	Description  string     `json:"description,omitempty"`
	ChequeNumber string     `json:"cheque_number,omitempty"`
	RequestedAt  time.Time  `json:"requested_at"`
	ProcessedAt  *time.Time `json:"processed_at,omitempty"`
	ProcessedBy  *uint64    `json:"processed_by,omitempty"`
}

type DecisionDTO struct {
	Request RequestDTO `json:"request"`
	// LoanID is set only when the request was accepted.
	LoanID string `json:"loan_id,omitempty"`
}
