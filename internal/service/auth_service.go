// internal/service/auth_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/preilly17/VacationSync-sub009/internal/domain"
	"github.com/preilly17/VacationSync-sub009/internal/repository"
	"github.com/preilly17/VacationSync-sub009/internal/util"
)

// AuthService defines the interface for registration and session management.
type AuthService interface {
	Register(ctx context.Context, email, displayName, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, *domain.Session, error)
	Logout(ctx context.Context, token string) error
	ResolveSession(ctx context.Context, token string) (*domain.User, error)
}

type authService struct {
	dbExecutor  repository.DBExecutor
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	clock       func() time.Time
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(dbExecutor repository.DBExecutor, userRepo repository.UserRepository, sessionRepo repository.SessionRepository) AuthService {
	return &authService{
		dbExecutor:  dbExecutor,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		clock:       func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a user with a bcrypt-hashed password.
func (s *authService) Register(ctx context.Context, email, displayName, password string) (*domain.User, error) {
	if email == "" || displayName == "" || len(password) < 8 {
		return nil, util.ErrInvalidInput
	}

	if _, err := s.userRepo.GetUserByEmail(ctx, s.dbExecutor, email); err == nil {
		return nil, util.ErrDuplicateEntry
	} else if !util.IsError(err, util.ErrNotFound) {
		return nil, fmt.Errorf("register: failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: failed to hash password: %w", err)
	}

	user := domain.NewUser(email, displayName, string(hash))
	if err := s.userRepo.CreateUser(ctx, s.dbExecutor, user); err != nil {
		return nil, fmt.Errorf("register: failed to create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and opens a new session.
func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, *domain.Session, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, s.dbExecutor, email)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, nil, util.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("login: failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, util.ErrInvalidCredentials
	}

	session := domain.NewSession(user.ID)
	if err := s.sessionRepo.CreateSession(ctx, s.dbExecutor, session); err != nil {
		return nil, nil, fmt.Errorf("login: failed to create session: %w", err)
	}
	return user, session, nil
}

// Logout deletes the session for the given token.
func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.sessionRepo.DeleteSession(ctx, s.dbExecutor, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// ResolveSession returns the user behind a valid, unexpired session token.
func (s *authService) ResolveSession(ctx context.Context, token string) (*domain.User, error) {
	session, err := s.sessionRepo.GetSessionByToken(ctx, s.dbExecutor, token)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrInvalidSession
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	if session.Expired(s.clock()) {
		return nil, util.ErrInvalidSession
	}

	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, session.UserID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrInvalidSession
		}
		return nil, fmt.Errorf("resolve session: failed to get user: %w", err)
	}
	return user, nil
}
