package ports

import (
	"context"

	"github.com/swiftex/tracking-service/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	SignIn(ctx context.Context, email, password string) (string, *domain.User, error)
	SignOut(ctx context.Context, identity domain.Identity) error
	Session(ctx context.Context, identity domain.Identity) (*domain.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	// Authenticate resolves a bearer token into the caller's identity.
	Authenticate(ctx context.Context, token string) (*domain.Identity, error)
}
