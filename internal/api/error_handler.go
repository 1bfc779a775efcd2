package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/donatehub/platform-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors. Two ambiguities are deliberate anti-enumeration
	// measures: unknown-email and wrong-password share one message, and
	// missing and not-owned campaigns share one status.
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, "email already registered"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrVerificationRequired):
		return http.StatusForbidden, "email verification required"
	case errors.Is(err, domain.ErrAlreadyVerified):
		return http.StatusBadRequest, "email already verified"
	case errors.Is(err, domain.ErrCodeMissing):
		return http.StatusBadRequest, "no pending verification code"
	case errors.Is(err, domain.ErrCodeExpired):
		return http.StatusBadRequest, "verification code expired"
	case errors.Is(err, domain.ErrCodeMismatch):
		return http.StatusBadRequest, "verification code mismatch"
	case errors.Is(err, domain.ErrOTPThrottled):
		return http.StatusTooManyRequests, "verification code requested too recently"
	case errors.Is(err, domain.ErrNotificationFailed):
		return http.StatusBadGateway, "failed to send notification email"
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, "token expired"
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, "token invalid"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrCampaignNotOwned):
		return http.StatusNotFound, "campaign not found or unauthorized"
	case errors.Is(err, domain.ErrCampaignNotFound):
		return http.StatusNotFound, "campaign not found"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
