package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	mw "sangam-backend/internal/adapter/middleware"
	loanDomain "sangam-backend/internal/domain/loan"
	"sangam-backend/internal/usecase/loanrequest"
)

type LoanRequestHandler struct{ uc *loanrequest.Usecase }

func NewLoanRequestHandler(uc *loanrequest.Usecase) *LoanRequestHandler {
	return &LoanRequestHandler{uc: uc}
}

func (h *LoanRequestHandler) Submit(c echo.Context) error {
	ident, ok := mw.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
	}
	var req loanrequest.SubmitInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	dto, err := h.uc.Submit(c.Request().Context(), ident, req)
	if err != nil {
		if errors.Is(err, loanDomain.ErrNotFound) {
			return badRequest(c, "unknown loan type")
		}
		return badRequest(c, err.Error())
	}
	mw.SetAudit(c, "loan_request.submitted", "loan_request", dto.RequestID,
		map[string]any{"amount": dto.Amount, "loan_type_id": dto.LoanTypeID})
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanRequestHandler) ListPending(c echo.Context) error {
	out, err := h.uc.ListPending(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "list failed"})
	}
	return c.JSON(http.StatusOK, out)
}

// Act applies the secretary's accept/reject decision.
func (h *LoanRequestHandler) Act(c echo.Context) error {
	ident, ok := mw.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
	}
	requestID := c.Param("request_id")
	var req loanrequest.ActionInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	dto, err := h.uc.Act(c.Request().Context(), ident, requestID, req)
	if err != nil {
		switch {
		case errors.Is(err, loanDomain.ErrRequestNotFound):
			return notFound(c, "loan request not found")
		case errors.Is(err, loanDomain.ErrAlreadyProcessed):
			return c.JSON(http.StatusConflict, ErrorResponse{Error: "request already processed"})
		case errors.Is(err, loanDomain.ErrUnknownAction):
			return badRequest(c, "action must be Accepted or Rejected")
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "decision failed"})
	}
	mw.SetAudit(c, "loan_request."+req.Action, "loan_request", requestID,
		map[string]any{"description": req.Description, "loan_id": dto.LoanID})
	return c.JSON(http.StatusOK, dto)
}
