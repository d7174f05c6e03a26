package loan

import (
	"context"
	"errors"
	"time"

	"sangam-backend/internal/domain/loan"
	"sangam-backend/internal/interest"
	"sangam-backend/pkg/id"
)

type Usecase struct {
	repo  loan.Repository
	types loan.TypeRepository
}

func NewUsecase(r loan.Repository, t loan.TypeRepository) *Usecase {
	return &Usecase{repo: r, types: t}
}

func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanView, error) {
	if in.MemberID == 0 || in.Amount <= 0 {
		return nil, errors.New("invalid input")
	}
	lt, err := u.types.GetByID(ctx, in.LoanTypeID)
	if err != nil {
		return nil, err
	}
	issue := in.IssueDate
	if issue.IsZero() {
		issue = time.Now().UTC()
	}
	if !in.DueDate.After(issue) {
		return nil, errors.New("due date must be after issue date")
	}

	l := &loan.Loan{
		LoanID:       id.NewID32(),
		MemberID:     in.MemberID,
		LoanTypeID:   lt.ID,
		Amount:       in.Amount,
		IssueDate:    issue,
		DueDate:      in.DueDate,
		Status:       loan.StatusActive,
		ChequeNumber: in.ChequeNumber,
	}
	if err := u.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	v := u.view(l, lt, time.Now().UTC())
	return &v, nil
}

// List returns every loan enriched with accrued interest and due state.
// Accrual is measured to the closed date for closed loans and to the
// contractual due date for open ones; only the dashboard measures to today.
func (u *Usecase) List(ctx context.Context, now time.Time) ([]LoanView, error) {
	loans, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	rates, err := u.rateTable(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]LoanView, 0, len(loans))
	for i := range loans {
		out = append(out, u.viewWithRate(&loans[i], rates[loans[i].LoanTypeID], now))
	}
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, loanID string, now time.Time) (*LoanView, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	lt, err := u.types.GetByID(ctx, l.LoanTypeID)
	if err != nil {
		return nil, err
	}
	v := u.view(l, lt, now)
	return &v, nil
}

// ReceiveInterest records interest collected on an open loan.
func (u *Usecase) ReceiveInterest(ctx context.Context, loanID string, amount float64) (*LoanView, error) {
	if amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if l.IsClosed() {
		return nil, loan.ErrAlreadyClosed
	}
	l.InterestReceived += amount
	if err := u.repo.Save(ctx, l); err != nil {
		return nil, err
	}
	return u.Get(ctx, loanID, time.Now().UTC())
}

// Close sets the closed date and flips the status. Interest stops accruing at
// the closed date from here on.
func (u *Usecase) Close(ctx context.Context, loanID string, when time.Time) (*LoanView, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if l.IsClosed() {
		return nil, loan.ErrAlreadyClosed
	}
	w := when.UTC()
	l.ClosedDate = &w
	l.Status = loan.StatusClosed
	if err := u.repo.Save(ctx, l); err != nil {
		return nil, err
	}
	return u.Get(ctx, loanID, time.Now().UTC())
}

// Delete is a hard delete, matching the historical behaviour of the system.
func (u *Usecase) Delete(ctx context.Context, loanID string) error {
	return u.repo.Delete(ctx, loanID)
}

// LoansDue is the dashboard view: open loans already due or due within a week,
// with interest accrued to today.
func (u *Usecase) LoansDue(ctx context.Context, today time.Time, page, pageSize int) (*DuePage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}
	horizon := today.AddDate(0, 0, 7)
	loans, total, err := u.repo.ListOpenDueBefore(ctx, horizon, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	rates, err := u.rateTable(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]LoanView, 0, len(loans))
	for i := range loans {
		l := &loans[i]
		v := u.viewWithRate(l, rates[l.LoanTypeID], today)
		// dashboard semantics: accrue to today, not to the due date
		v.InterestAmount = interest.Compute(rates[l.LoanTypeID], l.Amount, l.IssueDate, today)
		views = append(views, v)
	}
	return &DuePage{
		Loans:      views,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}, nil
}

// Types exposes the loan category reference data.
func (u *Usecase) Types(ctx context.Context) ([]loan.LoanType, error) {
	return u.types.List(ctx)
}

func (u *Usecase) rateTable(ctx context.Context) (map[uint64]float64, error) {
	types, err := u.types.List(ctx)
	if err != nil {
		return nil, err
	}
	rates := make(map[uint64]float64, len(types))
	for _, t := range types {
		rates[t.ID] = t.MonthlyRatePercent
	}
	return rates, nil
}

func (u *Usecase) view(l *loan.Loan, lt *loan.LoanType, today time.Time) LoanView {
	return u.viewWithRate(l, lt.MonthlyRatePercent, today)
}

func (u *Usecase) viewWithRate(l *loan.Loan, rate float64, today time.Time) LoanView {
	// as-of: closed date wins, otherwise the contractual due date
	asOf := l.DueDate
	closed := l.ClosedDate
	if l.IsClosed() {
		if closed == nil {
			c := today
			closed = &c
		}
		asOf = *closed
	}

	state := interest.Classify(l.DueDate, closed, today)
	v := LoanView{
		LoanID:           l.LoanID,
		MemberID:         l.MemberID,
		LoanTypeID:       l.LoanTypeID,
		Amount:           l.Amount,
		MonthlyRate:      rate,
		IssueDate:        l.IssueDate,
		DueDate:          l.DueDate,
		ClosedDate:       l.ClosedDate,
		InterestReceived: l.InterestReceived,
		Status:           string(l.Status),
		ChequeNumber:     l.ChequeNumber,
		InterestAmount:   interest.Compute(rate, l.Amount, l.IssueDate, asOf),
		DueState:         string(state),
		IsOverdue:        state == interest.StateOverdue,
	}
	switch state {
	case interest.StateOverdue:
		v.DaysOverdue = interest.DaysOverdue(l.DueDate, today)
	case interest.StateDueThisWeek, interest.StateNotYetDue:
		v.DaysUntilDue = interest.DaysUntilDue(l.DueDate, today)
	}
	return v
}
