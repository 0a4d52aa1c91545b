package ports

import (
	"context"

	"github.com/sweetshop/sweetshop-api/internal/core/domain"
)

// Profile is the minimal user view returned by Register. It never carries
// the password hash.
type Profile struct {
	ID    string
	Email string
	Name  string
}

// LoginResult is returned by a successful Login.
type LoginResult struct {
	Token string
	Role  domain.Role
	Email string
	Name  string
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*Profile, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// TokenService mints and verifies the signed bearer tokens used on every
// protected request. Both operations are stateless; the signing secret is
// process-wide configuration loaded once at startup.
type TokenService interface {
	Issue(userID string, role domain.Role) (string, error)
	// Verify fails uniformly with domain.ErrInvalidToken on a bad signature,
	// malformed structure, or expiry. It never partially trusts a token.
	Verify(token string) (domain.Identity, error)
}
