package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
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

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-auth-service-tests",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		Issuer:                 "storefront-test",
	})
}

func newTestAuthService(userRepo *MockUserRepository, t *testing.T) *AuthService {
	return NewAuthService(userRepo, newTestJWTService(), auth.NewInMemoryTokenBlacklist(), zaptest.NewLogger(t))
}

func newActiveUser(t *testing.T, email, password string) *identity.User {
	user, err := identity.NewUser("Jamie Doe", email, password)
	require.NoError(t, err)
	return user
}

func TestAuthService_Register(t *testing.T) {
	t.Run("creates an account and returns tokens", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestAuthService(userRepo, t)

		userRepo.On("ExistsByEmail", mock.Anything, "jamie@example.com").Return(false, nil)
		userRepo.On("Create", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

		resp, err := service.Register(context.Background(), RegisterRequest{
			Name:     "Jamie Doe",
			Email:    "Jamie@Example.com",
			Password: "secret123",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, "jamie@example.com", resp.User.Email)
		assert.Equal(t, "customer", resp.User.Role)
		userRepo.AssertExpectations(t)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestAuthService(userRepo, t)

		userRepo.On("ExistsByEmail", mock.Anything, "jamie@example.com").Return(true, nil)

		_, err := service.Register(context.Background(), RegisterRequest{
			Name:     "Jamie Doe",
			Email:    "jamie@example.com",
			Password: "secret123",
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMAIL_EXISTS", domainErr.Code)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("weak password never reaches the repository", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestAuthService(userRepo, t)

		userRepo.On("ExistsByEmail", mock.Anything, "jamie@example.com").Return(false, nil)

		_, err := service.Register(context.Background(), RegisterRequest{
			Name:     "Jamie Doe",
			Email:    "jamie@example.com",
			Password: "short",
		})
		require.Error(t, err)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Run("valid credentials return tokens and record the login", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestAuthService(userRepo, t)

		user := newActiveUser(t, "jamie@example.com", "secret123")
		userRepo.On("FindByEmail", mock.Anything, "jamie@example.com").Return(user, nil)
		userRepo.On("Update", mock.Anything, user).Return(nil)

		resp, err := service.Login(context.Background(), LoginRequest{
			Email:    "jamie@example.com",
			Password: "secret123",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.NotNil(t, user.LastLoginAt)
		userRepo.AssertExpectations(t)
	})

	t.Run("unknown email and wrong password produce the same error", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestAuthService(userRepo, t)

		user := newActiveUser(t, "jamie@example.com", "secret123")
		userRepo.On("FindByEmail", mock.Anything, "jamie@example.com").Return(user, nil)
		userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, shared.ErrNotFound)

		_, wrongPassword := service.Login(context.Background(), LoginRequest{
			Email:    "jamie@example.com",
			Password: "wrongpass1",
		})
		_, unknownEmail := service.Login(context.Background(), LoginRequest{
			Email:    "nobody@example.com",
			Password: "secret123",
		})

		require.Error(t, wrongPassword)
		require.Error(t, unknownEmail)
		assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestAuthService(userRepo, t)

		user := newActiveUser(t, "jamie@example.com", "secret123")
		require.NoError(t, user.Deactivate())
		userRepo.On("FindByEmail", mock.Anything, "jamie@example.com").Return(user, nil)

		_, err := service.Login(context.Background(), LoginRequest{
			Email:    "jamie@example.com",
			Password: "secret123",
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	t.Run("valid refresh token yields a new pair", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestAuthService(userRepo, t)

		user := newActiveUser(t, "jamie@example.com", "secret123")
		userRepo.On("ExistsByEmail", mock.Anything, "jamie@example.com").Return(false, nil)
		userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		userRepo.On("FindByID", mock.Anything, mock.Anything).Return(user, nil)

		registered, err := service.Register(context.Background(), RegisterRequest{
			Name:     "Jamie Doe",
			Email:    "jamie@example.com",
			Password: "secret123",
		})
		require.NoError(t, err)

		refreshed, err := service.Refresh(context.Background(), RefreshRequest{
			RefreshToken: registered.RefreshToken,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestAuthService(userRepo, t)

		_, err := service.Refresh(context.Background(), RefreshRequest{RefreshToken: "not-a-jwt"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
	})

	t.Run("access token cannot be used as a refresh token", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestAuthService(userRepo, t)

		userRepo.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
		userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		registered, err := service.Register(context.Background(), RegisterRequest{
			Name:     "Jamie Doe",
			Email:    "jamie@example.com",
			Password: "secret123",
		})
		require.NoError(t, err)

		_, err = service.Refresh(context.Background(), RefreshRequest{
			RefreshToken: registered.AccessToken,
		})
		require.Error(t, err)
	})

	t.Run("revoked refresh token is rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		jwtService := newTestJWTService()
		blacklist := auth.NewInMemoryTokenBlacklist()
		service := NewAuthService(userRepo, jwtService, blacklist, zaptest.NewLogger(t))

		user := newActiveUser(t, "jamie@example.com", "secret123")
		pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID: user.ID,
			Email:  user.Email,
			Role:   string(user.Role),
		})
		require.NoError(t, err)

		claims, err := jwtService.ValidateRefreshToken(pair.RefreshToken)
		require.NoError(t, err)
		require.NoError(t, blacklist.Revoke(context.Background(), claims.ID, time.Hour))

		_, err = service.Refresh(context.Background(), RefreshRequest{RefreshToken: pair.RefreshToken})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_REVOKED", domainErr.Code)
	})
}

func TestAuthService_Logout(t *testing.T) {
	userRepo := new(MockUserRepository)
	jwtService := newTestJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	service := NewAuthService(userRepo, jwtService, blacklist, zaptest.NewLogger(t))

	user := newActiveUser(t, "jamie@example.com", "secret123")
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	require.NoError(t, err)

	accessClaims, err := jwtService.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), accessClaims, pair.RefreshToken))

	revoked, err := blacklist.IsRevoked(context.Background(), accessClaims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = service.Refresh(context.Background(), RefreshRequest{RefreshToken: pair.RefreshToken})
	require.Error(t, err)
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Run("changes the password with the old one verified", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestAuthService(userRepo, t)

		user := newActiveUser(t, "jamie@example.com", "secret123")
		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		userRepo.On("Update", mock.Anything, user).Return(nil)

		err := service.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
			OldPassword: "secret123",
			NewPassword: "evenmoresecret4",
		})
		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("evenmoresecret4"))
	})

	t.Run("wrong old password is rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestAuthService(userRepo, t)

		user := newActiveUser(t, "jamie@example.com", "secret123")
		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		err := service.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
			OldPassword: "wrongpass1",
			NewPassword: "evenmoresecret4",
		})
		require.Error(t, err)
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
