package loanrequest

import (
	"context"
	"fmt"
	"log"
	"time"

	"sangam-backend/internal/auth"
	"sangam-backend/internal/domain/loan"
	"sangam-backend/internal/domain/member"
	"sangam-backend/internal/domain/uow"
	"sangam-backend/internal/mail"
	"sangam-backend/pkg/id"
)

type Usecase struct {
	requests loan.RequestRepository
	types    loan.TypeRepository
	members  member.Repository
	uow      uow.UnitOfWork
	mailer   mail.Sender
}

func NewUsecase(requests loan.RequestRepository, types loan.TypeRepository, members member.Repository, tx uow.UnitOfWork, mailer mail.Sender) *Usecase {
	return &Usecase{requests: requests, types: types, members: members, uow: tx, mailer: mailer}
}

// Submit files a new pending request on behalf of the authenticated member.
func (u *Usecase) Submit(ctx context.Context, ident auth.Identity, in SubmitInput) (*RequestDTO, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if _, err := u.types.GetByID(ctx, in.LoanTypeID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if !in.DueDate.After(now) {
		return nil, fmt.Errorf("due date must be in the future")
	}
	req := &loan.LoanRequest{
		RequestID:   id.NewID32(),
		MemberID:    ident.UserID,
		LoanTypeID:  in.LoanTypeID,
		Amount:      in.Amount,
		DueDate:     in.DueDate,
		Status:      loan.RequestPending,
		RequestedAt: now,
	}
	if err := u.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	return toDTO(req), nil
}

func (u *Usecase) ListPending(ctx context.Context) ([]RequestDTO, error) {
	reqs, err := u.requests.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]RequestDTO, 0, len(reqs))
	for i := range reqs {
		out = append(out, *toDTO(&reqs[i]))
	}
	return out, nil
}

// Act applies the pending -> accepted|rejected transition inside one
// transaction. Acceptance spawns the Loan in the same transaction; the
// decision email afterwards is best-effort and never fails the call.
func (u *Usecase) Act(ctx context.Context, ident auth.Identity, requestID string, in ActionInput) (*DecisionDTO, error) {
	var action loan.RequestStatus
	switch in.Action {
	case "Accepted":
		action = loan.RequestAccepted
	case "Rejected":
		action = loan.RequestRejected
	default:
		return nil, loan.ErrUnknownAction
	}

	var out DecisionDTO
	now := time.Now().UTC()

	err := u.uow.WithinRequestTx(ctx, requestID, func(r uow.Repos, req *loan.LoanRequest) error {
		if req.Status != loan.RequestPending {
			return loan.ErrAlreadyProcessed
		}

		req.Status = action
		req.Description = in.Description
		req.ProcessedAt = &now
		req.ProcessedBy = &ident.UserID

		if action == loan.RequestAccepted {
			l := &loan.Loan{
				LoanID:       id.NewID32(),
				MemberID:     req.MemberID,
				LoanTypeID:   req.LoanTypeID,
				Amount:       req.Amount,
				IssueDate:    now,
				DueDate:      req.DueDate,
				Status:       loan.StatusActive,
				ChequeNumber: in.ChequeNumber,
			}
			if err := r.Loans.Create(ctx, l); err != nil {
				return err
			}
			req.ChequeNumber = in.ChequeNumber
			out.LoanID = l.LoanID
		}

		if err := r.LoanRequests.Save(ctx, req); err != nil {
			return err
		}
		out.Request = *toDTO(req)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.notify(ctx, &out, string(action))
	return &out, nil
}

// notify sends the decision email in the background. Failures are logged only.
func (u *Usecase) notify(ctx context.Context, d *DecisionDTO, action string) {
	if u.mailer == nil || !u.mailer.Enabled() {
		return
	}
	m, err := u.members.GetByID(ctx, d.Request.MemberID)
	if err != nil || m.Email == "" {
		log.Printf("loanrequest: skip decision mail for request %s: no recipient", d.Request.RequestID)
		return
	}
	to := m.Email
	subject := fmt.Sprintf("Your loan request was %s", action)
	body := fmt.Sprintf("Hello %s,\n\nYour loan request for %.2f has been %s.\n", m.Name, d.Request.Amount, action)
	if d.LoanID != "" {
		body += fmt.Sprintf("Loan reference: %s\n", d.LoanID)
	}
	go func() {
		if err := u.mailer.Send(to, subject, body); err != nil {
			log.Printf("loanrequest: decision mail to %s failed: %v", to, err)
		}
	}()
}

func toDTO(r *loan.LoanRequest) *RequestDTO {
	return &RequestDTO{
		RequestID:    r.RequestID,
		MemberID:     r.MemberID,
		LoanTypeID:   r.LoanTypeID,
		Amount:       r.Amount,
		DueDate:      r.DueDate,
		Status:       string(r.Status),
		Description:  r.Description,
		ChequeNumber: r.ChequeNumber,
		RequestedAt:  r.RequestedAt,
		ProcessedAt:  r.ProcessedAt,
		ProcessedBy:  r.ProcessedBy,
	}
}
