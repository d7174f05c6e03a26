package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	mw "sangam-backend/internal/adapter/middleware"
	paymentDomain "sangam-backend/internal/domain/payment"
	"sangam-backend/internal/usecase/payment"
)

type PaymentHandler struct{ uc *payment.Usecase }

func NewPaymentHandler(uc *payment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

func (h *PaymentHandler) Create(c echo.Context) error {
	var req payment.PaymentInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	p, err := h.uc.Create(c.Request().Context(), req)
	if err != nil {
		return badRequest(c, err.Error())
	}
	mw.SetAudit(c, "payment.created", "payment", strconv.FormatUint(p.ID, 10),
		map[string]any{"member_id": p.MemberID, "kind": p.Kind, "amount": p.Amount})
	return c.JSON(http.StatusCreated, p)
}

func (h *PaymentHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "invalid payment id")
	}
	p, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return notFound(c, "payment not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PaymentHandler) List(c echo.Context) error {
	in := payment.ListInput{
		Kind:     c.QueryParam("kind"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 50),
	}
	if v := c.QueryParam("member_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return badRequest(c, "invalid member_id")
		}
		in.MemberID = &id
	}
	var err error
	if in.From, err = queryDate(c, "from"); err != nil {
		return badRequest(c, "invalid from date")
	}
	if in.To, err = queryDate(c, "to"); err != nil {
		return badRequest(c, "invalid to date")
	}
	out, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "list failed"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PaymentHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "invalid payment id")
	}
	var req payment.PaymentInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	p, err := h.uc.Update(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, paymentDomain.ErrNotFound) {
			return notFound(c, "payment not found")
		}
		return badRequest(c, err.Error())
	}
	mw.SetAudit(c, "payment.updated", "payment", strconv.FormatUint(id, 10), req)
	return c.JSON(http.StatusOK, p)
}

func (h *PaymentHandler) MarkPaid(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "invalid payment id")
	}
	p, err := h.uc.MarkPaid(c.Request().Context(), id, time.Now().UTC())
	if err != nil {
		if errors.Is(err, paymentDomain.ErrNotFound) {
			return notFound(c, "payment not found")
		}
		return badRequest(c, err.Error())
	}
	mw.SetAudit(c, "payment.marked_paid", "payment", strconv.FormatUint(id, 10), nil)
	return c.JSON(http.StatusOK, p)
}

func (h *PaymentHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "invalid payment id")
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, paymentDomain.ErrNotFound) {
			return notFound(c, "payment not found")
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "delete failed"})
	}
	mw.SetAudit(c, "payment.deleted", "payment", strconv.FormatUint(id, 10), nil)
	return c.NoContent(http.StatusNoContent)
}
