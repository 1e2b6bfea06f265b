package ports

import (
	"context"
	"time"

	"github.com/chirper/chirp-api/internal/core/domain"
)

// AuthService implements registration, login, and token revocation.
type AuthService interface {
	Register(ctx context.Context, username, password, email string) (*domain.User, error)
	// Login verifies credentials and returns a signed token plus the user.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Revoke invalidates the token identified by jti until its expiry.
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
}
