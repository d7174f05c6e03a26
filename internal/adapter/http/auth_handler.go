package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"sangam-backend/internal/usecase/authn"
)

type AuthHandler struct{ uc *authn.Usecase }

func NewAuthHandler(uc *authn.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

func (h *AuthHandler) Login(c echo.Context) error {
	var req authn.LoginInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	res, err := h.uc.Login(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, authn.ErrBadCredentials) {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid email or password"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "login failed"})
	}
	return c.JSON(http.StatusOK, res)
}
