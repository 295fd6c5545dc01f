package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bloombuddy/plant-care-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Kind is
// a stable machine-readable code so clients branch on it instead of
// matching message text.
type errorResponse struct {
	Message           string `json:"message"`
	Kind              string `json:"kind,omitempty"`
	Field             string `json:"field,omitempty"`
	Action            string `json:"action,omitempty"`
	AttemptsRemaining *int   `json:"attemptsRemaining,omitempty"`
	RetryAfter        int    `json:"retryAfter,omitempty"`
	Expired           bool   `json:"expired,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error kinds to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the structured JSON envelope above.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Domain errors carry their own classification and client guidance.
	var de *domain.Error
	if errors.As(err, &de) {
		body := errorResponse{
			Message:    de.Message,
			Kind:       string(de.Kind),
			Field:      de.Field,
			Action:     de.Action,
			RetryAfter: de.RetryAfter,
			Expired:    de.SessionExpired,
		}
		if de.HasAttempts {
			remaining := de.AttemptsRemaining
			body.AttemptsRemaining = &remaining
		}
		return kindStatus(de.Kind), body
	}

	// Plain sentinels from the CRUD collaborators.
	switch {
	case errors.Is(err, domain.ErrGardenNotFound):
		return http.StatusNotFound, errorResponse{Message: "Garden not found", Kind: string(domain.KindNotFound)}
	case errors.Is(err, domain.ErrPlantNotFound):
		return http.StatusNotFound, errorResponse{Message: "Plant not found", Kind: string(domain.KindNotFound)}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Message: "Access forbidden"}
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Message: fmt.Sprintf("%v", he.Message)}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Message: "Something went wrong. Please try again later."}
}

func kindStatus(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindExpired:
		return http.StatusGone
	case domain.KindAttemptsExhausted, domain.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
