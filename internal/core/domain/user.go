package domain

import (
	"errors"
	"time"
)

// Role is the authorization level assigned to a user at signup.
// Roles are immutable after creation.
type Role string

const (
	RoleDonor Role = "donor"
	RoleNGO   Role = "ngo"
	RoleAdmin Role = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	return r == RoleDonor || r == RoleNGO || r == RoleAdmin
}

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrVerificationRequired = errors.New("email verification required")
	ErrAlreadyVerified      = errors.New("email already verified")
	ErrCodeMissing          = errors.New("no pending verification code")
	ErrCodeExpired          = errors.New("verification code expired")
	ErrCodeMismatch         = errors.New("verification code mismatch")
	ErrNotificationFailed   = errors.New("notification delivery failed")
	ErrOTPThrottled         = errors.New("verification code requested too recently")
	ErrTokenExpired         = errors.New("token expired")
	ErrTokenInvalid         = errors.New("token invalid")
)

// User models an account in the donation platform. OTP and OTPExpires are
// either both set (a code is pending) or both nil.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	IsVerified   bool       `json:"is_verified"`
	OTP          *string    `json:"-"`
	OTPExpires   *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Verified reports whether the user may log in without completing email
// verification. Admin accounts are always treated as verified.
func (u *User) Verified() bool {
	return u.Role == RoleAdmin || u.IsVerified
}

// SetCode stores a pending one-time code with its expiry.
func (u *User) SetCode(code string, expires time.Time) {
	u.OTP = &code
	u.OTPExpires = &expires
}

// ClearCode removes any pending one-time code.
func (u *User) ClearCode() {
	u.OTP = nil
	u.OTPExpires = nil
}

// CheckCode validates a submitted code against the pending one. An expired
// code is reported but not cleared here; callers persist that side effect.
func (u *User) CheckCode(code string, now time.Time) error {
	if u.OTP == nil || u.OTPExpires == nil {
		return ErrCodeMissing
	}
	if now.After(*u.OTPExpires) {
		return ErrCodeExpired
	}
	if *u.OTP != code {
		return ErrCodeMismatch
	}
	return nil
}
