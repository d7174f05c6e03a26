package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	mw "sangam-backend/internal/adapter/middleware"
	memberDomain "sangam-backend/internal/domain/member"
	"sangam-backend/internal/usecase/member"
)

type MemberHandler struct{ uc *member.Usecase }

func NewMemberHandler(uc *member.Usecase) *MemberHandler { return &MemberHandler{uc: uc} }

func (h *MemberHandler) Create(c echo.Context) error {
	var req member.CreateMemberInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	m, err := h.uc.Create(c.Request().Context(), req)
	if err != nil {
		return badRequest(c, err.Error())
	}
	mw.SetAudit(c, "member.created", "member", strconv.FormatUint(m.ID, 10), map[string]any{"email": m.Email, "role": m.Role})
	return c.JSON(http.StatusCreated, m)
}

func (h *MemberHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "invalid member id")
	}
	m, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return notFound(c, "member not found")
	}
	return c.JSON(http.StatusOK, m)
}

func (h *MemberHandler) List(c echo.Context) error {
	includeInactive := c.QueryParam("include_inactive") == "true"
	out, err := h.uc.List(c.Request().Context(), includeInactive)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "list failed"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MemberHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "invalid member id")
	}
	var req member.UpdateMemberInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	m, err := h.uc.Update(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, memberDomain.ErrNotFound) {
			return notFound(c, "member not found")
		}
		return badRequest(c, err.Error())
	}
	mw.SetAudit(c, "member.updated", "member", strconv.FormatUint(m.ID, 10), req)
	return c.JSON(http.StatusOK, m)
}

// Delete deactivates; member rows survive for history.
func (h *MemberHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "invalid member id")
	}
	if err := h.uc.Deactivate(c.Request().Context(), id); err != nil {
		if errors.Is(err, memberDomain.ErrNotFound) {
			return notFound(c, "member not found")
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "deactivate failed"})
	}
	mw.SetAudit(c, "member.deactivated", "member", strconv.FormatUint(id, 10), nil)
	return c.NoContent(http.StatusNoContent)
}
