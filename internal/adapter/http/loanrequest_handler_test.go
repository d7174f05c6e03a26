package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	mw "sangam-backend/internal/adapter/middleware"
	"sangam-backend/internal/auth"
	loanDomain "sangam-backend/internal/domain/loan"
	memberDomain "sangam-backend/internal/domain/member"
	"sangam-backend/internal/domain/uow"
	"sangam-backend/internal/testutil/loanmock"
	"sangam-backend/internal/testutil/membermock"
	"sangam-backend/internal/testutil/uowmock"
	uc "sangam-backend/internal/usecase/loanrequest"
)

// -------- helpers --------

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func requestUsecase(req *loanDomain.LoanRequest, loans *loanmock.Repo) *uc.Usecase {
	requests := &loanmock.Requests{
		GetByRequestIDForUpdateFn: func(ctx context.Context, requestID string) (*loanDomain.LoanRequest, error) {
			if req != nil && requestID == req.RequestID {
				return req, nil
			}
			return nil, loanDomain.ErrRequestNotFound
		},
	}
	types := &loanmock.Types{Table: []loanDomain.LoanType{{ID: 1, Name: "personal", MonthlyRatePercent: 1.16}}}
	members := &membermock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*memberDomain.Member, error) {
			return &memberDomain.Member{ID: id, Name: "Ravi"}, nil
		},
	}
	tx := &uowmock.UoW{Repos: uow.Repos{Loans: loans, LoanRequests: requests}}
	return uc.NewUsecase(requests, types, members, tx, nil)
}

func actContext(e *echo.Echo, requestID string, body any, ident *auth.Identity) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(stdhttp.MethodPost, "/api/dashboard/loan-requests/"+requestID+"/action", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/dashboard/loan-requests/:request_id/action")
	c.SetParamNames("request_id")
	c.SetParamValues(requestID)
	if ident != nil {
		mw.SetIdentity(c, *ident)
	}
	return c, rec
}

func pendingReq() *loanDomain.LoanRequest {
	return &loanDomain.LoanRequest{
		RequestID:   "abababababababababababababababab",
		MemberID:    5,
		LoanTypeID:  1,
		Amount:      3000,
		DueDate:     time.Now().UTC().AddDate(0, 3, 0),
		Status:      loanDomain.RequestPending,
		RequestedAt: time.Now().UTC(),
	}
}

// -------- tests --------

func TestAct_AcceptSuccess(t *testing.T) {
	e := newEchoWithValidator()
	stored := pendingReq()
	h := NewLoanRequestHandler(requestUsecase(stored, &loanmock.Repo{}))

	ident := auth.Identity{UserID: 2, Name: "Asha", Role: "secretary"}
	c, rec := actContext(e, stored.RequestID, map[string]any{
		"action":        "Accepted",
		"cheque_number": "CHQ-12",
	}, &ident)

	if err := h.Act(c); err != nil {
		t.Fatalf("Act error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var got uc.DecisionDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Request.Status != "accepted" || got.LoanID == "" {
		t.Fatalf("unexpected decision: %+v", got)
	}
}

func TestAct_AlreadyProcessedConflict(t *testing.T) {
	e := newEchoWithValidator()
	stored := pendingReq()
	stored.Status = loanDomain.RequestRejected
	h := NewLoanRequestHandler(requestUsecase(stored, &loanmock.Repo{}))

	ident := auth.Identity{UserID: 2, Role: "secretary"}
	c, rec := actContext(e, stored.RequestID, map[string]any{"action": "Accepted"}, &ident)

	if err := h.Act(c); err != nil {
		t.Fatalf("Act error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestAct_UnknownRequest404(t *testing.T) {
	e := newEchoWithValidator()
	h := NewLoanRequestHandler(requestUsecase(nil, &loanmock.Repo{}))

	ident := auth.Identity{UserID: 2, Role: "secretary"}
	c, rec := actContext(e, "ffffffffffffffffffffffffffffffff", map[string]any{"action": "Rejected"}, &ident)

	if err := h.Act(c); err != nil {
		t.Fatalf("Act error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestAct_InvalidActionValidation(t *testing.T) {
	e := newEchoWithValidator()
	stored := pendingReq()
	h := NewLoanRequestHandler(requestUsecase(stored, &loanmock.Repo{}))

	ident := auth.Identity{UserID: 2, Role: "secretary"}
	c, rec := actContext(e, stored.RequestID, map[string]any{"action": "Maybe"}, &ident)

	if err := h.Act(c); err != nil {
		t.Fatalf("Act error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var got ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Error != "validation failed" || len(got.Details) == 0 {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestAct_RequiresAuthentication(t *testing.T) {
	e := newEchoWithValidator()
	h := NewLoanRequestHandler(requestUsecase(pendingReq(), &loanmock.Repo{}))

	c, rec := actContext(e, "abababababababababababababababab", map[string]any{"action": "Accepted"}, nil)

	if err := h.Act(c); err != nil {
		t.Fatalf("Act error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestSubmit_CreatesPendingRequest(t *testing.T) {
	e := newEchoWithValidator()
	h := NewLoanRequestHandler(requestUsecase(nil, &loanmock.Repo{}))

	body := map[string]any{
		"loan_type_id": 1,
		"amount":       3000,
		"due_date":     time.Now().UTC().AddDate(0, 3, 0).Format(time.RFC3339),
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/api/loan-requests", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	mw.SetIdentity(c, auth.Identity{UserID: 5, Name: "Ravi", Role: "member"})

	if err := h.Submit(c); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var got uc.RequestDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.MemberID != 5 || got.Status != "pending" {
		t.Fatalf("unexpected dto: %+v", got)
	}
}
