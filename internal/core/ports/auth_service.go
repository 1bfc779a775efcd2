package ports

import (
	"context"

	"github.com/donatehub/platform-api/internal/core/domain"
)

// UserProfile is the public projection of a user returned by auth
// operations. It never carries the password hash or pending codes.
type UserProfile struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
	IsVerified bool        `json:"is_verified"`
}

// SignupInput carries the fields of a signup request.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// LoginResult is returned by Login. Exactly one of Token or OTPRequired is
// meaningful: admins receive a token directly, verified donor/ngo users get
// OTPRequired=true and a code by email.
type LoginResult struct {
	Token       string
	User        *UserProfile
	OTPRequired bool
}

// AuthService drives the signup-verification and login-OTP state machine
// and issues session tokens.
type AuthService interface {
	// Signup creates an unverified user and dispatches a verification code.
	// No session token is issued.
	Signup(ctx context.Context, in SignupInput) (*UserProfile, error)
	ResendVerification(ctx context.Context, email string) error
	// VerifyEmail consumes a pending verification code. The user must still
	// log in afterwards: no token is issued here.
	VerifyEmail(ctx context.Context, email, code string) (*UserProfile, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// VerifyLoginOTP consumes a pending login code and issues the session
	// token.
	VerifyLoginOTP(ctx context.Context, email, code string) (string, *UserProfile, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}
