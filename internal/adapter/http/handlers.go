package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct{ app string }

func NewHandler(app string) *Handler { return &Handler{app: app} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"app":    h.app,
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}
