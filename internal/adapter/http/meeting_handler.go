package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	mw "sangam-backend/internal/adapter/middleware"
	meetingDomain "sangam-backend/internal/domain/meeting"
	"sangam-backend/internal/usecase/meeting"
)

type MeetingHandler struct{ uc *meeting.Usecase }

func NewMeetingHandler(uc *meeting.Usecase) *MeetingHandler { return &MeetingHandler{uc: uc} }

func (h *MeetingHandler) Create(c echo.Context) error {
	var req meeting.MeetingInput
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
	mw.SetAudit(c, "meeting.created", "meeting", strconv.FormatUint(m.ID, 10), req)
	return c.JSON(http.StatusCreated, m)
}

func (h *MeetingHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "invalid meeting id")
	}
	m, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return notFound(c, "meeting not found")
	}
	return c.JSON(http.StatusOK, m)
}

func (h *MeetingHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "list failed"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MeetingHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "invalid meeting id")
	}
	var req meeting.MeetingInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	m, err := h.uc.Update(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, meetingDomain.ErrNotFound) {
			return notFound(c, "meeting not found")
		}
		return badRequest(c, err.Error())
	}
	mw.SetAudit(c, "meeting.updated", "meeting", strconv.FormatUint(id, 10), req)
	return c.JSON(http.StatusOK, m)
}

func (h *MeetingHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "invalid meeting id")
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, meetingDomain.ErrNotFound) {
			return notFound(c, "meeting not found")
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "delete failed"})
	}
	mw.SetAudit(c, "meeting.deleted", "meeting", strconv.FormatUint(id, 10), nil)
	return c.NoContent(http.StatusNoContent)
}

// SetAttendance replaces the whole sheet for one meeting.
func (h *MeetingHandler) SetAttendance(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "invalid meeting id")
	}
	var rows []meeting.AttendanceRow
	if err := c.Bind(&rows); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := h.uc.SetAttendance(c.Request().Context(), id, rows); err != nil {
		if errors.Is(err, meetingDomain.ErrNotFound) {
			return notFound(c, "meeting not found")
		}
		return badRequest(c, err.Error())
	}
	mw.SetAudit(c, "meeting.attendance_replaced", "meeting", strconv.FormatUint(id, 10),
		map[string]any{"rows": len(rows)})
	return c.NoContent(http.StatusNoContent)
}

func (h *MeetingHandler) Attendance(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "invalid meeting id")
	}
	out, err := h.uc.Attendance(c.Request().Context(), id)
	if err != nil {
		return notFound(c, "meeting not found")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MeetingHandler) Summary(c echo.Context) error {
	from, err := queryDate(c, "from")
	if err != nil || from == nil {
		return badRequest(c, "missing or invalid from date")
	}
	to, err := queryDate(c, "to")
	if err != nil || to == nil {
		return badRequest(c, "missing or invalid to date")
	}
	out, err := h.uc.Summary(c.Request().Context(), *from, *to)
	if err != nil {
		return badRequest(c, err.Error())
	}
	return c.JSON(http.StatusOK, out)
}
