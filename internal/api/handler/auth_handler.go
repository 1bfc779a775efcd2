package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donatehub/platform-api/internal/api/metrics"
	"github.com/donatehub/platform-api/internal/core/domain"
	"github.com/donatehub/platform-api/internal/core/ports"
)

// AuthHandler exposes the signup/verification/login flows over HTTP.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup creates an unverified account and dispatches a verification code.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}

	metrics.SignupsTotal.WithLabelValues(req.Role).Inc()
	metrics.OTPIssuedTotal.WithLabelValues("verify").Inc()

	return c.JSON(http.StatusCreated, authResponse{
		Message:             "signup successful, check your email for the verification code",
		User:                user,
		PendingVerification: true,
	})
}

// VerifyEmail consumes a pending verification code.
//
// @Summary      Verify email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyEmailRequest  true  "Email and code"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	var req verifyEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.authService.VerifyEmail(c.Request().Context(), req.Email, req.Code)
	if err != nil {
		if isCodeRejection(err) {
			metrics.AuthFailuresTotal.WithLabelValues("code_rejected").Inc()
		}
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Message: "email verified, you can now log in",
		User:    user,
	})
}

// ResendVerification reissues the email verification code.
//
// @Summary      Resend verification code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resendVerificationRequest  true  "Email"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/resend-verification [post]
func (h *AuthHandler) ResendVerification(c echo.Context) error {
	var req resendVerificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.authService.ResendVerification(c.Request().Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrOTPThrottled) {
			metrics.AuthFailuresTotal.WithLabelValues("throttled").Inc()
		}
		return err
	}

	metrics.OTPIssuedTotal.WithLabelValues("verify").Inc()
	return c.JSON(http.StatusOK, authResponse{Message: "verification code sent"})
}

// Login checks the password. Admins receive a token directly; verified
// donor/ngo users get a login code by email and must call /auth/verify-otp.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  authResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.AuthFailuresTotal.WithLabelValues("invalid_credentials").Inc()
		case errors.Is(err, domain.ErrVerificationRequired):
			metrics.AuthFailuresTotal.WithLabelValues("verification_required").Inc()
			// Echo the address back so the client can offer a resend.
			return c.JSON(http.StatusForbidden, authResponse{
				Message:             "email verification required",
				Email:               req.Email,
				PendingVerification: true,
			})
		case errors.Is(err, domain.ErrOTPThrottled):
			metrics.AuthFailuresTotal.WithLabelValues("throttled").Inc()
		}
		return err
	}

	if result.OTPRequired {
		metrics.OTPIssuedTotal.WithLabelValues("login").Inc()
		return c.JSON(http.StatusOK, authResponse{
			Message:     "login code sent, check your email",
			User:        result.User,
			OTPRequired: true,
		})
	}

	return c.JSON(http.StatusOK, authResponse{
		Message: "login successful",
		Token:   result.Token,
		User:    result.User,
	})
}

// VerifyOTP consumes a pending login code and issues the session token.
//
// @Summary      Verify login code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyOTPRequest  true  "Email and code"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req verifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, user, err := h.authService.VerifyLoginOTP(c.Request().Context(), req.Email, req.Code)
	if err != nil {
		if isCodeRejection(err) {
			metrics.AuthFailuresTotal.WithLabelValues("code_rejected").Inc()
		}
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Message: "login successful",
		Token:   token,
		User:    user,
	})
}

// ChangePassword rotates the caller's password.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/change-password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.authService.ChangePassword(c.Request().Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Message: "password updated"})
}

func isCodeRejection(err error) bool {
	return errors.Is(err, domain.ErrCodeMissing) ||
		errors.Is(err, domain.ErrCodeExpired) ||
		errors.Is(err, domain.ErrCodeMismatch)
}
