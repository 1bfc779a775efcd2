package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/donatehub/platform-api/internal/core/domain"
	"github.com/donatehub/platform-api/internal/core/ports"
)

const (
	signupCodeTTL   = 10 * time.Minute
	loginCodeTTL    = 5 * time.Minute
	defaultTokenTTL = 15 * time.Minute
)

// IssueLimiter abstracts the code issuance throttle (Redis). A nil limiter
// disables throttling.
type IssueLimiter interface {
	// Allow reports whether a code may be issued to email for the given
	// purpose ("verify" or "login") and records the issuance.
	Allow(ctx context.Context, email, purpose string) (bool, error)
}

// AuthService implements the signup-verification and login-OTP flows.
type AuthService struct {
	users     ports.UserRepository
	mail      ports.Mailer
	limiter   IssueLimiter
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, mail ports.Mailer, limiter IssueLimiter, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		users:     users,
		mail:      mail,
		limiter:   limiter,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Signup creates an unverified user and emails a 6-digit verification code.
// If the email cannot be delivered the user record is rolled back so the
// address stays free for a retry.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*ports.UserProfile, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" || !domain.ValidRole(in.Role) {
		return nil, &domain.ValidationError{Fields: []string{"name", "email", "password", "role"}}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	code := generateCode()
	user.SetCode(code, now.Add(signupCodeTTL))

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.sendCode(ctx, created, "Your DonateHub verification code", code); err != nil {
		// Compensate: an unverified account with no deliverable code would
		// permanently squat the email address.
		if delErr := s.users.Delete(ctx, created.ID); delErr != nil {
			s.log.Error().Err(delErr).Str("user_id", created.ID).Msg("signup rollback failed")
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrNotificationFailed, err)
	}

	s.log.Info().Str("email", email).Str("role", string(in.Role)).Msg("user signed up, verification pending")
	return profileOf(created), nil
}

// ResendVerification reissues the email verification code.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if user.Verified() {
		return domain.ErrAlreadyVerified
	}
	if err := s.checkLimiter(ctx, user.Email, "verify"); err != nil {
		return err
	}

	code := generateCode()
	user.SetCode(code, time.Now().UTC().Add(signupCodeTTL))
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}
	if err := s.sendCode(ctx, user, "Your DonateHub verification code", code); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNotificationFailed, err)
	}
	return nil
}

// VerifyEmail consumes a pending verification code and marks the user
// verified. The user must still log in; no token is issued here.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) (*ports.UserProfile, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user.Verified() {
		return nil, domain.ErrAlreadyVerified
	}
	if err := s.consumeCode(ctx, user, code); err != nil {
		return nil, err
	}

	user.IsVerified = true
	user.ClearCode()
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("email", user.Email).Msg("email verified")
	return profileOf(user), nil
}

// Login checks the password and either issues a token directly (admin) or
// dispatches a login OTP (verified donor/ngo). Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if user.Role == domain.RoleAdmin {
		token, err := s.generateToken(user)
		if err != nil {
			return nil, err
		}
		return &ports.LoginResult{Token: token, User: profileOf(user)}, nil
	}

	if !user.Verified() {
		return nil, domain.ErrVerificationRequired
	}

	if err := s.checkLimiter(ctx, user.Email, "login"); err != nil {
		return nil, err
	}

	code := generateCode()
	user.SetCode(code, time.Now().UTC().Add(loginCodeTTL))
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	if err := s.sendCode(ctx, user, "Your DonateHub login code", code); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNotificationFailed, err)
	}

	return &ports.LoginResult{User: profileOf(user), OTPRequired: true}, nil
}

// VerifyLoginOTP consumes a pending login code and issues a session token.
func (s *AuthService) VerifyLoginOTP(ctx context.Context, email, code string) (string, *ports.UserProfile, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", nil, err
	}
	// An unverified account's pending code is a signup verification
	// code, never a login OTP.
	if !user.Verified() {
		return "", nil, domain.ErrVerificationRequired
	}
	if err := s.consumeCode(ctx, user, code); err != nil {
		return "", nil, err
	}

	user.ClearCode()
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Save(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	s.log.Info().Str("email", user.Email).Msg("login completed")
	return token, profileOf(user), nil
}

// ChangePassword rotates the password after re-checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrInvalidCredentials
	}
	if newPassword == "" {
		return &domain.ValidationError{Fields: []string{"new_password"}}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()
	return s.users.Save(ctx, user)
}

// consumeCode validates a submitted code. Expiry clears the stored code so
// a later retry with the correct digits reports ErrCodeMissing; a mismatch
// leaves the code pending.
func (s *AuthService) consumeCode(ctx context.Context, user *domain.User, code string) error {
	err := user.CheckCode(code, time.Now().UTC())
	if errors.Is(err, domain.ErrCodeExpired) {
		user.ClearCode()
		user.UpdatedAt = time.Now().UTC()
		if saveErr := s.users.Save(ctx, user); saveErr != nil {
			s.log.Warn().Err(saveErr).Str("email", user.Email).Msg("failed to clear expired code")
		}
	}
	return err
}

// checkLimiter consults the issuance throttle. Throttle backend failures
// are logged and ignored so auth keeps working without Redis.
func (s *AuthService) checkLimiter(ctx context.Context, email, purpose string) error {
	if s.limiter == nil {
		return nil
	}
	ok, err := s.limiter.Allow(ctx, email, purpose)
	if err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("otp throttle check failed, allowing")
		return nil
	}
	if !ok {
		return domain.ErrOTPThrottled
	}
	return nil
}

func (s *AuthService) sendCode(ctx context.Context, user *domain.User, subject, code string) error {
	body := fmt.Sprintf("Hi %s,\n\nYour one-time code is %s. It expires shortly; do not share it with anyone.\n\n— DonateHub", user.Name, code)
	return s.mail.Send(ctx, user.Email, subject, body)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func profileOf(u *domain.User) *ports.UserProfile {
	return &ports.UserProfile{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		IsVerified: u.Verified(),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateCode returns a random 6-digit numeric code.
func generateCode() string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%06d", time.Now().UnixNano()%1000000)
	}
	return fmt.Sprintf("%06d", binary.BigEndian.Uint32(b[:])%1000000)
}
