package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler serves the unauthenticated service endpoints.
type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

// Health is the liveness probe. It reports nothing about MySQL or Redis;
// a degraded dependency surfaces on the API routes, not here.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "sangam-backend",
		"time":    time.Now().UTC().Format(time.RFC3339Nano),
	})
}
