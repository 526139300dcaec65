// internal/repository/postgres/user_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/preilly17/VacationSync-sub009/internal/domain"
	"github.com/preilly17/VacationSync-sub009/internal/repository"
	"github.com/preilly17/VacationSync-sub009/internal/util"
)

// UserRepository implements repository.UserRepository for PostgreSQL.
type UserRepository struct{}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &UserRepository{}
}

// CreateUser inserts a new user into the database using the provided DBExecutor.
func (r *UserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	query := `INSERT INTO users (id, email, display_name, password_hash, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := q.ExecContext(ctx, query, user.ID, user.Email, user.DisplayName, user.PasswordHash,
		user.CreatedAt, user.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by their ID using the provided DBExecutor.
func (r *UserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.User, error) {
	var user domain.User
	query := `SELECT id, email, display_name, password_hash, created_at, updated_at FROM users WHERE id = $1`
	err := q.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by their email using the provided DBExecutor.
func (r *UserRepository) GetUserByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT id, email, display_name, password_hash, created_at, updated_at FROM users WHERE email = $1`
	err := q.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// SessionRepository implements repository.SessionRepository for PostgreSQL.
type SessionRepository struct{}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db *sqlx.DB) repository.SessionRepository {
	return &SessionRepository{}
}

// CreateSession stores a new session using the provided DBExecutor.
func (r *SessionRepository) CreateSession(ctx context.Context, q repository.DBExecutor, session *domain.Session) error {
	query := `INSERT INTO sessions (token, user_id, expires_at, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := q.ExecContext(ctx, query, session.Token, session.UserID, session.ExpiresAt, session.CreatedAt); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSessionByToken retrieves a session by its token using the provided DBExecutor.
func (r *SessionRepository) GetSessionByToken(ctx context.Context, q repository.DBExecutor, token string) (*domain.Session, error) {
	var session domain.Session
	query := `SELECT token, user_id, expires_at, created_at FROM sessions WHERE token = $1`
	err := q.GetContext(ctx, &session, query, token)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session by token: %w", err)
	}
	return &session, nil
}

// DeleteSession removes a session by its token using the provided DBExecutor.
func (r *SessionRepository) DeleteSession(ctx context.Context, q repository.DBExecutor, token string) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
