package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	mw "sangam-backend/internal/adapter/middleware"
	loanDomain "sangam-backend/internal/domain/loan"
	"sangam-backend/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

func (h *LoanHandler) Create(c echo.Context) error {
	var req loan.CreateLoanInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	v, err := h.uc.Create(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, loanDomain.ErrNotFound) {
			return badRequest(c, "unknown loan type")
		}
		return badRequest(c, err.Error())
	}
	mw.SetAudit(c, "loan.created", "loan", v.LoanID,
		map[string]any{"member_id": v.MemberID, "amount": v.Amount})
	return c.JSON(http.StatusCreated, v)
}

func (h *LoanHandler) Get(c echo.Context) error {
	v, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"), time.Now().UTC())
	if err != nil {
		return notFound(c, "loan not found")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *LoanHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "list failed"})
	}
	return c.JSON(http.StatusOK, out)
}

type receiveInterestReq struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func (h *LoanHandler) ReceiveInterest(c echo.Context) error {
	loanID := c.Param("loan_id")
	var req receiveInterestReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	v, err := h.uc.ReceiveInterest(c.Request().Context(), loanID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, loanDomain.ErrNotFound):
			return notFound(c, "loan not found")
		case errors.Is(err, loanDomain.ErrAlreadyClosed):
			return badRequest(c, "loan is closed")
		}
		return badRequest(c, err.Error())
	}
	mw.SetAudit(c, "loan.interest_received", "loan", loanID, req)
	return c.JSON(http.StatusOK, v)
}

func (h *LoanHandler) Close(c echo.Context) error {
	loanID := c.Param("loan_id")
	v, err := h.uc.Close(c.Request().Context(), loanID, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, loanDomain.ErrNotFound):
			return notFound(c, "loan not found")
		case errors.Is(err, loanDomain.ErrAlreadyClosed):
			return badRequest(c, "loan already closed")
		}
		return badRequest(c, err.Error())
	}
	mw.SetAudit(c, "loan.closed", "loan", loanID, nil)
	return c.JSON(http.StatusOK, v)
}

func (h *LoanHandler) Delete(c echo.Context) error {
	loanID := c.Param("loan_id")
	if err := h.uc.Delete(c.Request().Context(), loanID); err != nil {
		if errors.Is(err, loanDomain.ErrNotFound) {
			return notFound(c, "loan not found")
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "delete failed"})
	}
	mw.SetAudit(c, "loan.deleted", "loan", loanID, nil)
	return c.NoContent(http.StatusNoContent)
}

func (h *LoanHandler) ListTypes(c echo.Context) error {
	out, err := h.uc.Types(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "list failed"})
	}
	return c.JSON(http.StatusOK, out)
}

// LoansDue backs the dashboard: open loans due now or within a week, interest
// accrued to today.
func (h *LoanHandler) LoansDue(c echo.Context) error {
	out, err := h.uc.LoansDue(c.Request().Context(), time.Now().UTC(),
		queryInt(c, "page", 1), queryInt(c, "page_size", 20))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "query failed"})
	}
	return c.JSON(http.StatusOK, out)
}
