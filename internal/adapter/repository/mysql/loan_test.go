package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	loanDomain "sangam-backend/internal/domain/loan"
	"sangam-backend/pkg/id"
)

func makeLoan(loanID string, memberID uint64, due time.Time) *loanDomain.Loan {
	return &loanDomain.Loan{
		LoanID:     loanID,
		MemberID:   memberID,
		LoanTypeID: 1,
		Amount:     5000,
		IssueDate:  time.Now().UTC().AddDate(0, -1, 0),
		DueDate:    due,
		Status:     loanDomain.StatusActive,
	}
}

func TestLoanCreateAndGetByLoanID(t *testing.T) {
	db := openTestDB(t, &loanDomain.Loan{})
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loanID := id.NewID32()
	l := makeLoan(loanID, 3, time.Now().UTC().AddDate(0, 2, 0))
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.LoanID != loanID || got.MemberID != 3 || got.Amount != 5000 {
		t.Errorf("unexpected loan: %+v", got)
	}
}

func TestLoanGetByLoanID_NotFound(t *testing.T) {
	db := openTestDB(t, &loanDomain.Loan{})
	repo := NewLoanRepository(db)

	_, err := repo.GetByLoanID(context.Background(), "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")
	if !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestLoanListOpenDueBefore(t *testing.T) {
	db := openTestDB(t, &loanDomain.Loan{})
	repo := NewLoanRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	closedAt := now.AddDate(0, 0, -3)

	soon := makeLoan(id.NewID32(), 1, now.AddDate(0, 0, 2))
	later := makeLoan(id.NewID32(), 2, now.AddDate(0, 0, 6))
	farOff := makeLoan(id.NewID32(), 3, now.AddDate(0, 3, 0))
	closed := makeLoan(id.NewID32(), 4, now.AddDate(0, 0, 1))
	closed.Status = loanDomain.StatusClosed
	closed.ClosedDate = &closedAt

	for _, l := range []*loanDomain.Loan{later, farOff, closed, soon} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, total, err := repo.ListOpenDueBefore(ctx, now.AddDate(0, 0, 7), 0, 10)
	if err != nil {
		t.Fatalf("ListOpenDueBefore: %v", err)
	}
	if total != 2 || len(got) != 2 {
		t.Fatalf("got %d loans (total=%d), want 2", len(got), total)
	}
	// oldest due first, closed and far-off loans excluded
	if got[0].LoanID != soon.LoanID || got[1].LoanID != later.LoanID {
		t.Errorf("wrong order: %s, %s", got[0].LoanID, got[1].LoanID)
	}
}

func TestLoanListOpenDueBefore_Pagination(t *testing.T) {
	db := openTestDB(t, &loanDomain.Loan{})
	repo := NewLoanRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		if err := repo.Create(ctx, makeLoan(id.NewID32(), uint64(i+1), now.AddDate(0, 0, i))); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, total, err := repo.ListOpenDueBefore(ctx, now.AddDate(0, 1, 0), 2, 2)
	if err != nil {
		t.Fatalf("ListOpenDueBefore: %v", err)
	}
	if total != 5 {
		t.Fatalf("total = %d, want 5", total)
	}
	if len(got) != 2 || got[0].MemberID != 3 || got[1].MemberID != 4 {
		t.Errorf("wrong page: %+v", got)
	}
}

func TestLoanDelete(t *testing.T) {
	db := openTestDB(t, &loanDomain.Loan{})
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loanID := id.NewID32()
	if err := repo.Create(ctx, makeLoan(loanID, 1, time.Now().UTC().AddDate(0, 1, 0))); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, loanID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByLoanID(ctx, loanID); !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("loan still present after delete: %v", err)
	}
	if err := repo.Delete(ctx, loanID); !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("second delete: want ErrNotFound, got %v", err)
	}
}

func TestLoanTypeSeedOnlyWhenEmpty(t *testing.T) {
	db := openTestDB(t, &loanDomain.LoanType{})
	repo := NewLoanTypeRepository(db)
	ctx := context.Background()

	first := []loanDomain.LoanType{
		{Name: "personal", MonthlyRatePercent: 1.16},
		{Name: "emergency", MonthlyRatePercent: 0.58},
	}
	if err := repo.Seed(ctx, first); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	// a second seed with different data must be a no-op
	if err := repo.Seed(ctx, []loanDomain.LoanType{{Name: "other", MonthlyRatePercent: 9}}); err != nil {
		t.Fatalf("Seed again: %v", err)
	}

	types, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(types) != 2 || types[0].Name != "personal" {
		t.Errorf("unexpected types: %+v", types)
	}

	got, err := repo.GetByID(ctx, types[1].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.MonthlyRatePercent != 0.58 {
		t.Errorf("rate = %v, want 0.58", got.MonthlyRatePercent)
	}
}

func TestLoanRequestListPendingOrder(t *testing.T) {
	db := openTestDB(t, &loanDomain.LoanRequest{})
	repo := NewLoanRequestRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	newer := &loanDomain.LoanRequest{
		RequestID: id.NewID32(), MemberID: 1, LoanTypeID: 1, Amount: 100,
		DueDate: base.AddDate(0, 1, 0), Status: loanDomain.RequestPending, RequestedAt: base.Add(30 * time.Minute),
	}
	older := &loanDomain.LoanRequest{
		RequestID: id.NewID32(), MemberID: 2, LoanTypeID: 1, Amount: 200,
		DueDate: base.AddDate(0, 1, 0), Status: loanDomain.RequestPending, RequestedAt: base,
	}
	done := &loanDomain.LoanRequest{
		RequestID: id.NewID32(), MemberID: 3, LoanTypeID: 1, Amount: 300,
		DueDate: base.AddDate(0, 1, 0), Status: loanDomain.RequestAccepted, RequestedAt: base,
	}
	for _, r := range []*loanDomain.LoanRequest{newer, older, done} {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	pending, err := repo.ListPending(ctx)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("got %d pending, want 2", len(pending))
	}
	if pending[0].RequestID != older.RequestID || pending[1].RequestID != newer.RequestID {
		t.Errorf("wrong order: %+v", pending)
	}
}

func TestLoanRequestGetByRequestID_NotFound(t *testing.T) {
	db := openTestDB(t, &loanDomain.LoanRequest{})
	repo := NewLoanRequestRepository(db)

	_, err := repo.GetByRequestID(context.Background(), "ffffffffffffffffffffffffffffffff")
	if !errors.Is(err, loanDomain.ErrRequestNotFound) {
		t.Fatalf("want ErrRequestNotFound, got %v", err)
	}
}
