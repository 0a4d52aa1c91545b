package ports

import (
	"context"

	"github.com/sweetshop/sweetshop-api/internal/core/domain"
)

// AuthRepository defines the interface for user account persistence.
type AuthRepository interface {
	// FindByEmail looks up a user by exact email match.
	// Returns domain.ErrUserNotFound when no account exists.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create inserts a new user. Returns domain.ErrDuplicateEmail when the
	// email is already taken (backed by a unique index).
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
