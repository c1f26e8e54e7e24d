package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"sikopifasta-backend/internal/adapter/identity"
	"sikopifasta-backend/internal/domain/apperr"
	"sikopifasta-backend/internal/domain/user"
	"sikopifasta-backend/internal/infrastructure/logging"
)

const callerKey = "caller"

// Authenticator resolves a bearer token to a caller.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (user.Caller, error)
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func fail(c echo.Context, status int, code, msg string) error {
	return c.JSON(status, errorBody{Error: msg, Code: code})
}

// CallerOf returns the authenticated caller set by Auth.
func CallerOf(c echo.Context) (user.Caller, bool) {
	caller, ok := c.Get(callerKey).(user.Caller)
	return caller, ok
}

// SetCaller attaches caller to the request context.
func SetCaller(c echo.Context, caller user.Caller) { c.Set(callerKey, caller) }

// Auth requires "Authorization: Bearer <token>".
func Auth(authn Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, ok := strings.Cut(strings.TrimSpace(h), " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				return fail(c, http.StatusUnauthorized, "unauthenticated", "missing bearer token")
			}

			caller, err := authn.Authenticate(c.Request().Context(), strings.TrimSpace(token))
			switch {
			case err == nil:
			case errors.Is(err, identity.ErrUnauthenticated):
				logging.Logger.WithError(err).Debug("auth: token rejected")
				return fail(c, http.StatusUnauthorized, "unauthenticated", "invalid or expired token")
			case errors.Is(err, apperr.ErrForbidden):
				return fail(c, http.StatusForbidden, "forbidden", err.Error())
			default:
				logging.Logger.WithError(err).Error("auth: profile lookup failed")
				return fail(c, http.StatusServiceUnavailable, "store_unavailable", "identity lookup unavailable")
			}

			SetCaller(c, caller)
			return next(c)
		}
	}
}

// RequireAdmin must run after Auth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, ok := CallerOf(c)
			if !ok || !caller.IsAdmin() {
				return fail(c, http.StatusForbidden, "forbidden", "admin role required")
			}
			return next(c)
		}
	}
}
