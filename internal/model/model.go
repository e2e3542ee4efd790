// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// User represents an account stored on the server. Hash fields never leave
// the process; serialization goes through PublicUser.
type User struct {
	ID               uuid.UUID // PK
	Username         string    // unique, trimmed
	Email            string    // unique, trimmed, lower-cased
	PasswordHash     []byte    // bcrypt(password), cost 12
	RefreshTokenHash *string   // digest of the single live refresh token, nil when logged out
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PublicUser is the outward projection of a User. It has no hash fields at
// all, so no serialization path can leak them.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public returns the redacted projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Task is a single to-do record owned by exactly one user.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"-"` // ownership filter, not serialized
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TaskPatch is a partial update; nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Completed   *bool
}

// TaskFilter narrows and pages a task listing.
type TaskFilter struct {
	Completed *bool
	Skip      int
	Limit     int
}
