package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/staffdesk/employee-system/internal/api/handler"
	"github.com/staffdesk/employee-system/internal/core/domain"
)

// errorEnvelope is the canonical error body for all 4xx/5xx responses:
// {"success": false, "message": "...", "errors": [...]}.
type errorEnvelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps known domain
// errors to deterministic status codes, renders the error envelope, and logs
// unexpected errors without leaking detail to the client. When production is
// false the underlying message of an unexpected error is included.
func NewHTTPErrorHandler(log zerolog.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c, production)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, production bool) (int, errorEnvelope) {
	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorEnvelope{Message: "Validation Error", Errors: ve.Fields}
	}

	// Echo's own errors (bind failures, 404 from router, middleware 401/403).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorEnvelope{Message: fmt.Sprintf("%v", he.Message)}
	}

	// Known domain errors.
	switch {
	case errors.Is(err, domain.ErrUsernameTaken), errors.Is(err, domain.ErrEmailTaken):
		return http.StatusBadRequest, errorEnvelope{Message: err.Error()}
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return http.StatusNotFound, errorEnvelope{Message: "Employee not found"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorEnvelope{Message: "User not found"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorEnvelope{Message: "Invalid credentials"}
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, errorEnvelope{Message: "Token expired"}
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, errorEnvelope{Message: "Invalid token"}
	case errors.Is(err, domain.ErrTooManyLogins):
		return http.StatusTooManyRequests, errorEnvelope{Message: "Too many login attempts, try again later"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	body := errorEnvelope{Message: "Internal Server Error"}
	if !production {
		body.Errors = []string{err.Error()}
	}
	return http.StatusInternalServerError, body
}
