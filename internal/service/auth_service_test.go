// internal/service/auth_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/preilly17/VacationSync-sub009/internal/domain"
	"github.com/preilly17/VacationSync-sub009/internal/repository"
	"github.com/preilly17/VacationSync-sub009/internal/util"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	args := m.Called(ctx, q, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.User, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.User, error) {
	args := m.Called(ctx, q, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockSessionRepository is a mock implementation of repository.SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) CreateSession(ctx context.Context, q repository.DBExecutor, session *domain.Session) error {
	args := m.Called(ctx, q, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetSessionByToken(ctx context.Context, q repository.DBExecutor, token string) (*domain.Session, error) {
	args := m.Called(ctx, q, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) DeleteSession(ctx context.Context, q repository.DBExecutor, token string) error {
	args := m.Called(ctx, q, token)
	return args.Error(0)
}

func newAuthFixture() (*MockUserRepository, *MockSessionRepository, AuthService) {
	users := new(MockUserRepository)
	sessions := new(MockSessionRepository)
	svc := NewAuthService(nil, users, sessions)
	return users, sessions, svc
}

func TestRegisterSuccess(t *testing.T) {
	users, _, svc := newAuthFixture()

	users.On("GetUserByEmail", mock.Anything, nil, "alice@example.com").Return(nil, util.ErrNotFound)
	users.On("CreateUser", mock.Anything, nil, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := svc.Register(context.Background(), "alice@example.com", "Alice", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)

	// The stored hash verifies against the original password.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse")))
	users.AssertExpectations(t)
}

func TestRegisterValidation(t *testing.T) {
	_, _, svc := newAuthFixture()

	_, err := svc.Register(context.Background(), "", "Alice", "correct horse")
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	_, err = svc.Register(context.Background(), "alice@example.com", "Alice", "short")
	assert.ErrorIs(t, err, util.ErrInvalidInput)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users, _, svc := newAuthFixture()

	existing := domain.NewUser("alice@example.com", "Alice", "hash")
	users.On("GetUserByEmail", mock.Anything, nil, "alice@example.com").Return(existing, nil)

	_, err := svc.Register(context.Background(), "alice@example.com", "Alice", "correct horse")
	assert.ErrorIs(t, err, util.ErrDuplicateEntry)
}

func TestLoginSuccess(t *testing.T) {
	users, sessions, svc := newAuthFixture()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	existing := domain.NewUser("alice@example.com", "Alice", string(hash))

	users.On("GetUserByEmail", mock.Anything, nil, "alice@example.com").Return(existing, nil)
	sessions.On("CreateSession", mock.Anything, nil, mock.AnythingOfType("*domain.Session")).Return(nil)

	user, session, err := svc.Login(context.Background(), "alice@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)
	assert.Equal(t, existing.ID, session.UserID)
	assert.NotEmpty(t, session.Token)
	sessions.AssertExpectations(t)
}

func TestLoginWrongPassword(t *testing.T) {
	users, _, svc := newAuthFixture()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	existing := domain.NewUser("alice@example.com", "Alice", string(hash))
	users.On("GetUserByEmail", mock.Anything, nil, "alice@example.com").Return(existing, nil)

	_, _, err = svc.Login(context.Background(), "alice@example.com", "wrong horse")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	users, _, svc := newAuthFixture()

	users.On("GetUserByEmail", mock.Anything, nil, "ghost@example.com").Return(nil, util.ErrNotFound)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever password")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestResolveSession(t *testing.T) {
	users, sessions, svc := newAuthFixture()

	existing := domain.NewUser("alice@example.com", "Alice", "hash")
	session := domain.NewSession(existing.ID)

	sessions.On("GetSessionByToken", mock.Anything, nil, session.Token).Return(session, nil)
	users.On("GetUserByID", mock.Anything, nil, existing.ID).Return(existing, nil)

	user, err := svc.ResolveSession(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)
}

func TestResolveSessionExpired(t *testing.T) {
	_, sessions, svc := newAuthFixture()

	session := domain.NewSession("user-1")
	sessions.On("GetSessionByToken", mock.Anything, nil, session.Token).Return(session, nil)

	// Move the service clock past the session expiry.
	svc.(*authService).clock = func() time.Time {
		return time.Now().UTC().Add(domain.SessionDuration + time.Hour)
	}

	_, err := svc.ResolveSession(context.Background(), session.Token)
	assert.ErrorIs(t, err, util.ErrInvalidSession)
}

func TestResolveSessionUnknownToken(t *testing.T) {
	_, sessions, svc := newAuthFixture()

	sessions.On("GetSessionByToken", mock.Anything, nil, "missing").Return(nil, util.ErrNotFound)

	_, err := svc.ResolveSession(context.Background(), "missing")
	assert.ErrorIs(t, err, util.ErrInvalidSession)
}

func TestLogout(t *testing.T) {
	_, sessions, svc := newAuthFixture()

	sessions.On("DeleteSession", mock.Anything, nil, "tok").Return(nil)
	require.NoError(t, svc.Logout(context.Background(), "tok"))
	sessions.AssertExpectations(t)
}
