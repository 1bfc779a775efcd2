package ports

import (
	"context"

	"github.com/donatehub/platform-api/internal/core/domain"
)

// UserRepository persists user identity and transient one-time-code state.
// It never touches campaign or donation data.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create inserts a new user and returns it with its assigned ID.
	// Returns domain.ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Save persists mutations to an existing user (verification flag,
	// pending code, password hash).
	Save(ctx context.Context, user *domain.User) error
	// Delete removes a user. Only used to roll back a signup whose
	// verification email could not be delivered.
	Delete(ctx context.Context, id string) error
}
