package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/and161185/task-keeper/internal/errs"
	"github.com/and161185/task-keeper/internal/model"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = `id, username, email, password_hash, refresh_token_hash, created_at, updated_at`

// Create inserts a new user row.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (id, username, email, password_hash)
VALUES ($1, $2, $3, $4)`
	_, err := r.db.Pool.Exec(ctx, q, u.ID, u.Username, u.Email, u.PasswordHash)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// GetByID selects a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return r.scanUser(r.db.Pool.QueryRow(ctx, q, id))
}

// GetByEmail selects a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return r.scanUser(r.db.Pool.QueryRow(ctx, q, email))
}

// GetByRefreshHash selects the user holding the given refresh digest.
func (r *UserRepo) GetByRefreshHash(ctx context.Context, hash string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE refresh_token_hash=$1`
	return r.scanUser(r.db.Pool.QueryRow(ctx, q, hash))
}

// SetRefreshHash overwrites the refresh digest for the user (nil clears it).
func (r *UserRepo) SetRefreshHash(ctx context.Context, id uuid.UUID, hash *string) error {
	const q = `UPDATE users SET refresh_token_hash=$2, updated_at=now() WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id, hash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// ClearRefreshHash nulls the digest on any record matching it.
func (r *UserRepo) ClearRefreshHash(ctx context.Context, hash string) error {
	const q = `UPDATE users SET refresh_token_hash=NULL, updated_at=now() WHERE refresh_token_hash=$1`
	_, err := r.db.Pool.Exec(ctx, q, hash)
	return err
}

func (r *UserRepo) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.RefreshTokenHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return &u, nil
}
