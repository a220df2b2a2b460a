package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/judn/backend/internal/domain/identity"
	"github.com/judn/backend/internal/domain/shared"
	"github.com/judn/backend/internal/infrastructure/auth"
	"github.com/judn/backend/internal/infrastructure/config"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]*identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context, filter identity.UserFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestAuthService(repo *MockUserRepository) (*AuthService, *auth.JWTService, auth.TokenBlacklist) {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-characters",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		Issuer:                 "judn-backend",
		MaxRefreshCount:        10,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	resetTokens := auth.NewInMemoryResetTokenStore()
	return NewAuthService(repo, jwtService, blacklist, resetTokens, zap.NewNop()), jwtService, blacklist
}

func newActiveUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("Rafsan Ahmed", "rafsan@judn.store", "correct-horse-1", identity.RoleOrderManager)
	require.NoError(t, err)
	user.ClearDomainEvents()
	return user
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _, _ := newTestAuthService(repo)
	user := newActiveUser(t)

	repo.On("FindByEmail", mock.Anything, "rafsan@judn.store").Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "rafsan@judn.store",
		Password: "correct-horse-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "order_manager", resp.User.Role)
	assert.NotNil(t, user.LastLoginAt)
	assert.Zero(t, user.FailedAttempts)
	repo.AssertExpectations(t)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _, _ := newTestAuthService(repo)

	repo.On("FindByEmail", mock.Anything, "nobody@judn.store").Return(nil, shared.ErrNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@judn.store",
		Password: "whatever123",
	})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestAuthService_Login_WrongPasswordCountsTowardLockout(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _, _ := newTestAuthService(repo)
	user := newActiveUser(t)

	repo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
	assert.Equal(t, 1, user.FailedAttempts)
}

func TestAuthService_Login_LocksOnFifthFailure(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _, _ := newTestAuthService(repo)
	user := newActiveUser(t)

	repo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	req := LoginRequest{Email: user.Email, Password: "wrong-password"}
	for i := 0; i < 4; i++ {
		_, err := svc.Login(context.Background(), req)
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	}

	_, err := svc.Login(context.Background(), req)
	assert.ErrorIs(t, err, shared.ErrAccountLocked)
	assert.True(t, user.IsLocked())

	// even the right password is rejected while locked
	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "correct-horse-1",
	})
	assert.ErrorIs(t, err, shared.ErrAccountLocked)
}

func TestAuthService_Login_DeactivatedAccount(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _, _ := newTestAuthService(repo)
	user := newActiveUser(t)
	user.Deactivate()

	repo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "correct-horse-1",
	})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestAuthService_Refresh_RotatesAndRevokesOldToken(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _, _ := newTestAuthService(repo)
	user := newActiveUser(t)

	repo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "correct-horse-1",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// the used refresh token cannot be replayed
	_, err = svc.Refresh(context.Background(), RefreshRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestAuthService_Logout_RevokesAccessToken(t *testing.T) {
	repo := new(MockUserRepository)
	svc, jwtService, blacklist := newTestAuthService(repo)
	user := newActiveUser(t)

	pair, err := jwtService.GenerateTokenPair(user)
	require.NoError(t, err)
	claims, err := jwtService.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), claims))

	revoked, err := blacklist.IsRevoked(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestAuthService_ChangePassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _, blacklist := newTestAuthService(repo)
	user := newActiveUser(t)

	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	err := svc.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		OldPassword: "correct-horse-1",
		NewPassword: "new-password-99",
	})
	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("new-password-99"))

	// outstanding sessions are cut off
	revoked, err := blacklist.IsRevokedForUser(context.Background(), user.ID.String(), time.Now().Add(-time.Second))
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestAuthService_PasswordResetFlow(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _, blacklist := newTestAuthService(repo)
	user := newActiveUser(t)

	repo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	token, err := svc.ForgotPassword(context.Background(), ForgotPasswordRequest{Email: user.Email})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	err = svc.ResetPassword(context.Background(), ResetPasswordRequest{
		Token:       token,
		NewPassword: "brand-new-pass-7",
	})
	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("brand-new-pass-7"))

	// tokens are single use
	err = svc.ResetPassword(context.Background(), ResetPasswordRequest{
		Token:       token,
		NewPassword: "another-pass-8",
	})
	assert.Error(t, err)

	revoked, err := blacklist.IsRevokedForUser(context.Background(), user.ID.String(), time.Now().Add(-time.Second))
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestAuthService_ForgotPassword_UnknownEmailDoesNotLeak(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _, _ := newTestAuthService(repo)

	repo.On("FindByEmail", mock.Anything, "ghost@judn.store").Return(nil, shared.ErrNotFound)

	token, err := svc.ForgotPassword(context.Background(), ForgotPasswordRequest{Email: "ghost@judn.store"})
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _, _ := newTestAuthService(repo)
	user := newActiveUser(t)

	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	err := svc.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		OldPassword: "not-the-password",
		NewPassword: "new-password-99",
	})
	assert.Error(t, err)
	assert.True(t, user.VerifyPassword("correct-horse-1"))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
