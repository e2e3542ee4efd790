// Package token implements access-token signing/verification and opaque
// refresh-token generation. It holds no persistent state: the refresh digest
// is stored by the caller, and equality of digests is the whole refresh check.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/and161185/task-keeper/internal/errs"
)

// RefreshCookieName is the cookie carrying the raw refresh token.
const RefreshCookieName = "refresh_token"

// CookiePath scopes the refresh cookie to the auth routes only.
const CookiePath = "/api/users"

const (
	typClaim        = "access"
	refreshBytes    = 48
	refreshMaxAge   = 30 * 24 * time.Hour
	verifyLeeway    = 30 * time.Second
	defaultAccessTL = 15 * time.Minute
)

type accessClaims struct {
	Typ string `json:"typ"`
	jwt.RegisteredClaims
}

// Manager signs and verifies access tokens and builds the refresh cookie
// policy. Construct once at startup and inject.
type Manager struct {
	signKey   []byte
	accessTTL time.Duration
	prod      bool
}

// NewManager constructs a Manager. An empty signing key is a configuration
// error and must abort startup.
func NewManager(signKey []byte, accessTTL time.Duration, prod bool) (*Manager, error) {
	if len(signKey) == 0 {
		return nil, errors.New("token: empty signing key")
	}
	if accessTTL <= 0 {
		accessTTL = defaultAccessTL
	}
	return &Manager{signKey: signKey, accessTTL: accessTTL, prod: prod}, nil
}

// SignAccess creates a signed HS256 JWT with subject=userID and typ="access".
func (m *Manager) SignAccess(userID uuid.UUID) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.accessTTL)
	claims := accessClaims{
		Typ: typClaim,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(m.signKey)
	return signed, exp, err
}

// VerifyAccess checks signature, expiry, type tag and subject. Every failure
// collapses to errs.ErrUnauthorized so callers cannot distinguish why.
func (m *Manager) VerifyAccess(token string) (uuid.UUID, error) {
	var claims accessClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.signKey, nil
	}, jwt.WithLeeway(verifyLeeway))
	if err != nil || !parsed.Valid {
		return uuid.Nil, errs.ErrUnauthorized
	}
	if claims.Typ != typClaim || claims.Subject == "" {
		return uuid.Nil, errs.ErrUnauthorized
	}
	id, err := uuid.FromString(claims.Subject)
	if err != nil {
		return uuid.Nil, errs.ErrUnauthorized
	}
	return id, nil
}

// NewRefresh generates a high-entropy opaque refresh token, URL-safe encoded.
// It is a bare secret, never a structured token.
func NewRefresh() (string, error) {
	b := make([]byte, refreshBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashRefresh returns the deterministic digest persisted and looked up for a
// raw refresh token. Unsalted on purpose: the token itself is high-entropy.
func HashRefresh(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// RefreshCookie builds the refresh cookie for the given raw token.
func (m *Manager) RefreshCookie(raw string) *http.Cookie {
	return &http.Cookie{
		Name:     RefreshCookieName,
		Value:    raw,
		Path:     CookiePath,
		MaxAge:   int(refreshMaxAge / time.Second),
		HttpOnly: true,
		Secure:   m.prod,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredRefreshCookie returns a cookie that clears the refresh token.
func (m *Manager) ExpiredRefreshCookie() *http.Cookie {
	return &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     CookiePath,
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.prod,
		SameSite: http.SameSiteLaxMode,
	}
}
