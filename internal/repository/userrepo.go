// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/task-keeper/internal/model"
)

// UserRepository provides CRUD access for user accounts and session state.
type UserRepository interface {
	// Create inserts a new user. Returns errs.ErrAlreadyExists on a
	// username or email uniqueness violation.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByEmail loads a user by (lower-cased) email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// GetByRefreshHash loads the user whose stored refresh digest matches.
	GetByRefreshHash(ctx context.Context, hash string) (*model.User, error)
	// SetRefreshHash overwrites the user's refresh digest (nil clears it).
	SetRefreshHash(ctx context.Context, id uuid.UUID, hash *string) error
	// ClearRefreshHash nulls the digest on any user record matching it.
	// A no-op when nothing matches; logout stays idempotent.
	ClearRefreshHash(ctx context.Context, hash string) error
}
