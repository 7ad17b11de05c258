package service

import (
	"context"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blogicum-backend/internal/domains/user"
	"blogicum-backend/pkg/cache"
	"blogicum-backend/pkg/jwt"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

func newTestService(repo user.Repository) *userService {
	svc := NewUserService(repo, jwt.NewManager("test-secret", time.Hour), cache.NewMemoryCache()).(*userService)
	svc.bcryptCost = bcrypt.MinCost
	return svc
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegister(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *user.User) bool {
		return u.Username == "leo" && u.Role == user.RoleUser && u.PasswordHash != "password123"
	})).Return(nil)

	dto, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: "leo", Email: "leo@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "leo", dto.Username)
	repo.AssertExpectations(t)
}

func TestRegister_ValidationFailsBeforePersisting(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: "bad name!", Email: "nope", Password: "short",
	})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "username")
	assert.Contains(t, verrs, "email")
	assert.Contains(t, verrs, "password")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo)
	repo.On("Create", mock.Anything, mock.Anything).Return(user.ErrUsernameTaken)

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: "leo", Email: "leo@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, user.ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo)
	u := &user.User{ID: uuid.New(), Username: "leo", PasswordHash: hashed(t, "password123"), Role: user.RoleUser, IsActive: true}

	repo.On("FindByUsername", mock.Anything, "leo").Return(u, nil)
	repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, user.ErrUserNotFound)

	resp, err := svc.Login(context.Background(), user.LoginRequest{Username: "leo", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)

	_, err = svc.Login(context.Background(), user.LoginRequest{Username: "leo", Password: "wrong-password"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), user.LoginRequest{Username: "ghost", Password: "password123"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo)
	repo.On("FindByUsername", mock.Anything, "leo").Return(&user.User{
		ID: uuid.New(), Username: "leo", PasswordHash: hashed(t, "password123"), IsActive: false,
	}, nil)

	_, err := svc.Login(context.Background(), user.LoginRequest{Username: "leo", Password: "password123"})
	assert.ErrorIs(t, err, user.ErrUserInactive)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc := newTestService(new(mockRepo))
	ctx := context.Background()

	revoked, err := svc.IsTokenRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, svc.Logout(ctx, "jti-1", time.Minute))

	revoked, err = svc.IsTokenRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestChangePassword(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(&user.User{ID: id, PasswordHash: hashed(t, "password123")}, nil)
	repo.On("UpdatePassword", mock.Anything, id, mock.AnythingOfType("string")).Return(nil)

	err := svc.ChangePassword(context.Background(), id, user.ChangePasswordRequest{CurrentPassword: "nope-nope", NewPassword: "another-pass"})
	assert.ErrorIs(t, err, user.ErrWrongPassword)

	err = svc.ChangePassword(context.Background(), id, user.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "password123"})
	assert.ErrorIs(t, err, user.ErrSamePassword)

	err = svc.ChangePassword(context.Background(), id, user.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "another-pass"})
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "UpdatePassword", 1)
}

func TestUpdateProfile(t *testing.T) {
	repo := new(mockRepo)
	svc := newTestService(repo)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(&user.User{ID: id, Username: "leo", Email: "leo@example.com"}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *user.User) bool { return u.Username == "leo2" })).Return(nil)

	dto, err := svc.UpdateProfile(context.Background(), id, user.UpdateProfileRequest{
		Username: "leo2", Email: "leo@example.com", FirstName: "Leo",
	})
	require.NoError(t, err)
	assert.Equal(t, "leo2", dto.Username)
	assert.Equal(t, "Leo", dto.FirstName)
}
