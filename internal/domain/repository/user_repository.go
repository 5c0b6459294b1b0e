package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/creamio/backoffice-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateUsername is returned when the username unique constraint is hit.
	ErrDuplicateUsername = errors.New("username already in use")
	// ErrDuplicateEmail is returned when the email unique constraint is hit.
	ErrDuplicateEmail = errors.New("email already in use")
)

// UserRepository defines persistence for back-office user records.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindAll(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TokenRepository defines persistence for API bearer tokens.
type TokenRepository interface {
	Create(ctx context.Context, t *entity.APIToken) error
	FindByHash(ctx context.Context, hash string) (*entity.APIToken, error)
}
