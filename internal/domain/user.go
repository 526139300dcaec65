// internal/domain/user.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user of the application.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	DisplayName  string    `db:"display_name" json:"displayName"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// NewUser creates a new User instance with a fresh id.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// SessionDuration is how long a login session stays valid.
const SessionDuration = 7 * 24 * time.Hour

// Session is a server-side login session identified by an opaque token held
// in an HTTP-only cookie.
type Session struct {
	Token     string    `db:"token" json:"-"`
	UserID    string    `db:"user_id" json:"userId"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewSession creates a session for the given user with a fresh token.
func NewSession(userID string) *Session {
	now := time.Now().UTC()
	return &Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(SessionDuration),
		CreatedAt: now,
	}
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
