package handler

import "github.com/donatehub/platform-api/internal/core/ports"

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required,oneof=donor ngo"`
}

type verifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code"  validate:"required,len=6,numeric"`
}

type resendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type verifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code"  validate:"required,len=6,numeric"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6"`
}

// authResponse is the envelope for all auth endpoints. Token is present
// only once the state machine reaches Authenticated; the pending flags tell
// the client which step comes next.
type authResponse struct {
	Message             string             `json:"message"`
	Token               string             `json:"token,omitempty"`
	User                *ports.UserProfile `json:"user,omitempty"`
	OTPRequired         bool               `json:"otp_required,omitempty"`
	PendingVerification bool               `json:"pending_verification,omitempty"`
	// Email is echoed back on verification-required failures so the client
	// can offer a resend without re-asking for the address.
	Email string `json:"email,omitempty"`
}
