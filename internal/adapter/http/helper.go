package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"sikopifasta-backend/internal/adapter/middleware"
	"sikopifasta-backend/internal/domain/user"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = time.RFC3339
)

// parseOpt parses an already-validated optional timestamp. Dates are midnight UTC.
func parseOpt(layout, s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

// mustCaller writes 401 and reports false when Auth did not run.
func mustCaller(c echo.Context) (user.Caller, bool, error) {
	cl, ok := middleware.CallerOf(c)
	if !ok {
		return user.Caller{}, false, c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not authenticated", Code: "unauthenticated"})
	}
	return cl, true, nil
}
