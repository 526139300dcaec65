// internal/repository/user_repo.go
package repository

import (
	"context"

	"github.com/preilly17/VacationSync-sub009/internal/domain"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// CreateUser adds a new user to the database using the provided DBExecutor.
	CreateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// GetUserByID retrieves a user by their ID using the provided DBExecutor.
	GetUserByID(ctx context.Context, q DBExecutor, id string) (*domain.User, error)
	// GetUserByEmail retrieves a user by their email using the provided DBExecutor.
	GetUserByEmail(ctx context.Context, q DBExecutor, email string) (*domain.User, error)
}

// SessionRepository defines the interface for login-session data operations.
type SessionRepository interface {
	// CreateSession stores a new session using the provided DBExecutor.
	CreateSession(ctx context.Context, q DBExecutor, session *domain.Session) error
	// GetSessionByToken retrieves a session by its token.
	GetSessionByToken(ctx context.Context, q DBExecutor, token string) (*domain.Session, error)
	// DeleteSession removes a session by its token.
	DeleteSession(ctx context.Context, q DBExecutor, token string) error
}
