package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sangam-backend/internal/usecase/activity"
)

type ActivityHandler struct{ uc *activity.Usecase }

func NewActivityHandler(uc *activity.Usecase) *ActivityHandler { return &ActivityHandler{uc: uc} }

func (h *ActivityHandler) Filter(c echo.Context) error {
	var req activity.FilterInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	out, err := h.uc.Filter(c.Request().Context(), req)
	if err != nil {
		return badRequest(c, err.Error())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ActivityHandler) Statistics(c echo.Context) error {
	out, err := h.uc.Statistics(c.Request().Context(),
		c.QueryParam("startDate"), c.QueryParam("endDate"))
	if err != nil {
		return badRequest(c, err.Error())
	}
	return c.JSON(http.StatusOK, out)
}
