package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"sikopifasta-backend/internal/domain/apperr"
	"sikopifasta-backend/internal/infrastructure/logging"
)

func statusOf(kind error) int {
	switch kind {
	case apperr.ErrValidation:
		return http.StatusUnprocessableEntity
	case apperr.ErrNotFound:
		return http.StatusNotFound
	case apperr.ErrConflict, apperr.ErrState:
		return http.StatusConflict
	case apperr.ErrForbidden:
		return http.StatusForbidden
	case apperr.ErrTransport:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps a use case error onto the JSON error body.
func respondError(c echo.Context, err error) error {
	kind := apperr.KindOf(err)
	if kind == nil {
		logging.Logger.WithError(err).WithField("path", c.Path()).Error("unclassified error")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: "internal"})
	}
	if errors.Is(err, apperr.ErrTransport) {
		logging.Logger.WithError(err).WithField("path", c.Path()).Error("store unavailable")
	}
	body := ErrorResponse{Error: err.Error(), Code: kind.Error()}
	if kind == apperr.ErrValidation {
		body.Details = []FieldError{{Field: "_", Message: err.Error()}}
	}
	return c.JSON(statusOf(kind), body)
}

func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body", Code: "bad_request"})
}

func invalid(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Code:    apperr.ErrValidation.Error(),
		Details: ToFieldErrors(err),
	})
}

// bindValid binds the JSON body into req and validates it. It writes the
// error response itself and reports false when the handler should stop.
func bindValid(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, badBody(c)
	}
	if err := c.Validate(req); err != nil {
		return false, invalid(c, err)
	}
	return true, nil
}

var errNotYours = apperr.New(apperr.ErrForbidden, "loan belongs to another user")
