package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-session-auth/internal/domain/entity"
)

// ErrNotFound is returned by mutating operations that matched no row.
var ErrNotFound = errors.New("user not found")

// UserRepository defines the interface for user-related database operations.
//
// Lookups return (nil, nil) when no row matches; errors are reserved for
// infrastructure failures. The Twitter reconciliation flow composes
// GetByTwitterID and GetByEmail as two explicit queries so the precedence
// between them stays visible in the application layer.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByTwitterID(ctx context.Context, twitterID string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	SetConfirmed(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, hash string) error
	SetForgotPasswordLocked(ctx context.Context, id string, locked bool) error
}
