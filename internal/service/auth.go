// Package service contains application services for authentication and tasks.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofrs/uuid/v5"

	pkgcrypto "github.com/and161185/task-keeper/internal/crypto"
	"github.com/and161185/task-keeper/internal/errs"
	"github.com/and161185/task-keeper/internal/limiter"
	"github.com/and161185/task-keeper/internal/model"
	"github.com/and161185/task-keeper/internal/repository"
	"github.com/and161185/task-keeper/internal/token"
)

// Session is the outcome of a successful login: the access token plus the raw
// refresh token destined for the cookie.
type Session struct {
	AccessToken  string
	RefreshToken string
}

// AuthService defines the account/session operations.
type AuthService interface {
	// Register creates a new user with a bcrypt password hash. It does not
	// log the user in.
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	// Login verifies credentials, rotates the refresh slot and issues tokens.
	Login(ctx context.Context, email, password, ip string) (Session, *model.User, error)
	// Refresh exchanges a raw refresh token for a new access token. The
	// stored digest is left untouched.
	Refresh(ctx context.Context, rawRefresh string) (string, error)
	// Logout clears the session matching the raw refresh token. Idempotent.
	Logout(ctx context.Context, rawRefresh string) error
	// Me loads the user behind an authenticated identity.
	Me(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type AuthServiceImpl struct {
	users  repository.UserRepository
	tokens *token.Manager
	lim    limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, tokens *token.Manager, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, tokens: tokens, lim: lim}
}

// Register creates a new user record. Uniqueness violations surface as
// errs.ErrAlreadyExists; schema validation happens at the route boundary.
func (s *AuthServiceImpl) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	if username == "" || email == "" || password == "" {
		return nil, (&errs.ValidationError{}).Add("body", "empty username/email/password")
	}
	uid, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	hash, err := pkgcrypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &model.User{ID: uid, Username: username, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login authenticates with rate limiting by (email, ip). On success the new
// refresh digest replaces any previous one: a second login from anywhere
// invalidates the first session.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password, ip string) (Session, *model.User, error) {
	email = normalizeEmail(email)
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return Session{}, nil, err
	}
	if !allowed {
		return Session{}, nil, errs.ErrRateLimited
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil || !pkgcrypto.VerifyPassword(password, u.PasswordHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return Session{}, nil, errs.ErrRateLimited
		}
		// no such user and wrong password look identical to the caller
		return Session{}, nil, errs.ErrUnauthorized
	}

	_ = s.lim.Success(ctx, email, ipHash)

	access, _, err := s.tokens.SignAccess(u.ID)
	if err != nil {
		return Session{}, nil, err
	}
	refresh, err := token.NewRefresh()
	if err != nil {
		return Session{}, nil, err
	}
	digest := token.HashRefresh(refresh)
	// The digest must be persisted before any token leaves this function.
	if err := s.users.SetRefreshHash(ctx, u.ID, &digest); err != nil {
		return Session{}, nil, err
	}
	u.RefreshTokenHash = &digest
	return Session{AccessToken: access, RefreshToken: refresh}, u, nil
}

// Refresh mints a new access token for the holder of a live refresh token.
func (s *AuthServiceImpl) Refresh(ctx context.Context, rawRefresh string) (string, error) {
	if rawRefresh == "" {
		return "", errs.ErrUnauthorized
	}
	u, err := s.users.GetByRefreshHash(ctx, token.HashRefresh(rawRefresh))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", errs.ErrUnauthorized
		}
		return "", err
	}
	access, _, err := s.tokens.SignAccess(u.ID)
	return access, err
}

// Logout clears the stored digest matching the raw token. Missing or stale
// tokens are a no-op so repeated logouts always succeed.
func (s *AuthServiceImpl) Logout(ctx context.Context, rawRefresh string) error {
	if rawRefresh == "" {
		return nil
	}
	return s.users.ClearRefreshHash(ctx, token.HashRefresh(rawRefresh))
}

// Me loads the account behind an already-verified identity.
func (s *AuthServiceImpl) Me(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
