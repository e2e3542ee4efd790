package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/and161185/task-keeper/internal/errs"
	"github.com/and161185/task-keeper/internal/model"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

func userRows(u *model.User) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "refresh_token_hash", "created_at", "updated_at"}).
		AddRow(u.ID, u.Username, u.Email, u.PasswordHash, u.RefreshTokenHash, time.Now(), time.Now())
}

func TestUserRepo_Create_OK_and_UniqueViolation(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	u := &model.User{
		ID:           uuid.Must(uuid.NewV4()),
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: []byte("h"),
	}

	// OK
	mock.ExpectExec(`INSERT INTO users \(id, username, email, password_hash\) VALUES \(\$1, \$2, \$3, \$4\)`).
		WithArgs(u.ID, u.Username, u.Email, u.PasswordHash).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Create(ctx, u))

	// Unique violation maps to already-exists
	mock.ExpectExec(`INSERT INTO users \(id, username, email, password_hash\) VALUES \(\$1, \$2, \$3, \$4\)`).
		WithArgs(u.ID, u.Username, u.Email, u.PasswordHash).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	err := r.Create(ctx, u)
	require.ErrorIs(t, err, errs.ErrAlreadyExists)
}

func TestUserRepo_GetByID(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	u := &model.User{ID: uuid.Must(uuid.NewV4()), Username: "alice", Email: "a@x.com", PasswordHash: []byte("h")}

	mock.ExpectQuery(`SELECT id, username, email, password_hash, refresh_token_hash, created_at, updated_at FROM users WHERE id=\$1`).
		WithArgs(u.ID).
		WillReturnRows(userRows(u))
	got, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	mock.ExpectQuery(`SELECT id, username, email, password_hash, refresh_token_hash, created_at, updated_at FROM users WHERE id=\$1`).
		WithArgs(u.ID).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByID(ctx, u.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	u := &model.User{ID: uuid.Must(uuid.NewV4()), Username: "alice", Email: "a@x.com", PasswordHash: []byte("h")}

	mock.ExpectQuery(`SELECT id, username, email, password_hash, refresh_token_hash, created_at, updated_at FROM users WHERE email=\$1`).
		WithArgs(u.Email).
		WillReturnRows(userRows(u))
	got, err := r.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.Email, got.Email)
}

func TestUserRepo_GetByRefreshHash(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	hash := "digest"
	u := &model.User{ID: uuid.Must(uuid.NewV4()), Username: "alice", Email: "a@x.com", PasswordHash: []byte("h"), RefreshTokenHash: &hash}

	mock.ExpectQuery(`SELECT id, username, email, password_hash, refresh_token_hash, created_at, updated_at FROM users WHERE refresh_token_hash=\$1`).
		WithArgs(hash).
		WillReturnRows(userRows(u))
	got, err := r.GetByRefreshHash(ctx, hash)
	require.NoError(t, err)
	require.NotNil(t, got.RefreshTokenHash)
	require.Equal(t, hash, *got.RefreshTokenHash)

	mock.ExpectQuery(`SELECT id, username, email, password_hash, refresh_token_hash, created_at, updated_at FROM users WHERE refresh_token_hash=\$1`).
		WithArgs("stale").
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByRefreshHash(ctx, "stale")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUserRepo_SetRefreshHash(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())
	hash := "digest"

	mock.ExpectExec(`UPDATE users SET refresh_token_hash=\$2, updated_at=now\(\) WHERE id=\$1`).
		WithArgs(id, &hash).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, r.SetRefreshHash(ctx, id, &hash))

	// missing user
	mock.ExpectExec(`UPDATE users SET refresh_token_hash=\$2, updated_at=now\(\) WHERE id=\$1`).
		WithArgs(id, (*string)(nil)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	require.ErrorIs(t, r.SetRefreshHash(ctx, id, nil), errs.ErrNotFound)
}

func TestUserRepo_ClearRefreshHash_NoMatchIsNoop(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE users SET refresh_token_hash=NULL, updated_at=now\(\) WHERE refresh_token_hash=\$1`).
		WithArgs("stale").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	require.NoError(t, r.ClearRefreshHash(ctx, "stale"))
}
