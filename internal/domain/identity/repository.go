package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/judn/backend/internal/domain/shared"
)

// UserFilter narrows user queries
type UserFilter struct {
	shared.Filter
	Role   *Role
	Active *bool
	Search string // matches name and email
}

// Repository is the persistence interface for users
type Repository interface {
	// FindByID finds a user by id
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by their unique email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAll returns users matching the filter
	FindAll(ctx context.Context, filter UserFilter) ([]*User, error)

	// Count returns the number of users matching the filter
	Count(ctx context.Context, filter UserFilter) (int64, error)

	// ExistsByEmail reports whether a user with the email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save persists the user. A stale version returns
	// shared.ErrConcurrencyConflict.
	Save(ctx context.Context, user *User) error

	// Delete removes the user
	Delete(ctx context.Context, id uuid.UUID) error
}
