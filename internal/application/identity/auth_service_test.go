package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/identity"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/auth"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testPassword = "secret123"

func newTestJWT() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-that-is-long-enough",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "fresh-choice-test",
		MaxRefreshCount:        5,
	})
}

func newTestAuthService(repo *MockUserRepository, allowRegistration bool) (*AuthService, *auth.InMemoryTokenBlacklist) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := NewAuthService(repo, newTestJWT(), blacklist, AuthServiceConfig{AllowRegistration: allowRegistration}, zap.NewNop())
	return svc, blacklist
}

func existingUser(t *testing.T, id int64, username string, role identity.Role) *identity.User {
	t.Helper()
	u, err := identity.NewUser(username, testPassword, role)
	require.NoError(t, err)
	u.ID = id
	return u
}

func TestAuthService_Register_FirstUserIsAdmin(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _ := newTestAuthService(repo, false)
	ctx := context.Background()

	repo.On("Count", ctx).Return(int64(0), nil)
	repo.On("ExistsByUsername", ctx, "Owner").Return(false, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*identity.User")).
		Run(func(args mock.Arguments) { args.Get(1).(*identity.User).ID = 1 }).
		Return(nil)

	resp, err := svc.Register(ctx, RegisterInput{Username: "Owner", Password: testPassword}, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "owner", resp.Username)
	assert.Equal(t, "admin", resp.Role)
	repo.AssertExpectations(t)
}

func TestAuthService_Register_LaterUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("open registration yields staff and ignores requested role", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo, true)
		repo.On("Count", ctx).Return(int64(3), nil)
		repo.On("ExistsByUsername", ctx, "clerk").Return(false, nil)
		repo.On("ExistsByEmail", ctx, "clerk@example.com").Return(false, nil)
		repo.On("Create", ctx, mock.Anything).Return(nil)

		resp, err := svc.Register(ctx, RegisterInput{Username: "clerk", Password: testPassword, Email: "Clerk@Example.com", Role: "admin"}, nil)

		require.NoError(t, err)
		assert.Equal(t, "staff", resp.Role)
		require.NotNil(t, resp.Email)
		assert.Equal(t, "clerk@example.com", *resp.Email)
	})

	t.Run("closed registration rejects anonymous callers", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo, false)
		repo.On("Count", ctx).Return(int64(1), nil)

		_, err := svc.Register(ctx, RegisterInput{Username: "clerk", Password: testPassword}, &Actor{UserID: 2, Role: "staff"})

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "FORBIDDEN", de.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("admin can register an admin while closed", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo, false)
		repo.On("Count", ctx).Return(int64(1), nil)
		repo.On("ExistsByUsername", ctx, "second").Return(false, nil)
		repo.On("Create", ctx, mock.Anything).Return(nil)

		resp, err := svc.Register(ctx, RegisterInput{Username: "second", Password: testPassword, Role: "admin"}, &Actor{UserID: 1, Role: "admin"})

		require.NoError(t, err)
		assert.Equal(t, "admin", resp.Role)
	})

	t.Run("duplicate username", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo, true)
		repo.On("Count", ctx).Return(int64(1), nil)
		repo.On("ExistsByUsername", ctx, "owner").Return(true, nil)

		_, err := svc.Register(ctx, RegisterInput{Username: "owner", Password: testPassword}, nil)

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("weak password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo, true)
		repo.On("Count", ctx).Return(int64(0), nil)
		repo.On("ExistsByUsername", ctx, "owner").Return(false, nil)

		_, err := svc.Register(ctx, RegisterInput{Username: "owner", Password: "onlyletters"}, nil)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_PASSWORD", de.Code)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success stamps last login", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo, false)
		user := existingUser(t, 7, "manager", identity.RoleAdmin)
		repo.On("FindByUsername", ctx, "Manager").Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)

		result, err := svc.Login(ctx, LoginInput{Username: "Manager", Password: testPassword})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, int64(7), result.User.ID)
		assert.NotNil(t, result.User.LastLoginAt)

		claims, err := svc.jwtService.ValidateAccessToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo, false)
		repo.On("FindByUsername", ctx, "manager").Return(existingUser(t, 7, "manager", identity.RoleStaff), nil)

		_, err := svc.Login(ctx, LoginInput{Username: "manager", Password: "wrong-pass1"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo, false)
		repo.On("FindByUsername", ctx, "ghost").Return(nil, shared.ErrNotFound)

		_, err := svc.Login(ctx, LoginInput{Username: "ghost", Password: testPassword})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("repository failure is not masked", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo, false)
		dbErr := errors.New("connection refused")
		repo.On("FindByUsername", ctx, "manager").Return(nil, dbErr)

		_, err := svc.Login(ctx, LoginInput{Username: "manager", Password: testPassword})

		assert.ErrorIs(t, err, dbErr)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc, blacklist := newTestAuthService(repo, false)
	user := existingUser(t, 9, "clerk", identity.RoleStaff)

	repo.On("FindByUsername", ctx, "clerk").Return(user, nil)
	repo.On("Update", ctx, user).Return(nil)
	login, err := svc.Login(ctx, LoginInput{Username: "clerk", Password: testPassword})
	require.NoError(t, err)

	// promoted after login: the refreshed access token carries the new role
	user.Role = identity.RoleAdmin
	repo.On("FindByID", ctx, int64(9)).Return(user, nil)

	refreshed, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	claims, err := svc.jwtService.ValidateAccessToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)

	_, err = svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: "garbage"})
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "UNAUTHORIZED", de.Code)

	require.NoError(t, blacklist.AddUserTokensToBlacklist(ctx, 9, time.Hour))
	_, err = svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: refreshed.RefreshToken})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc, blacklist := newTestAuthService(new(MockUserRepository), false)

	require.NoError(t, svc.Logout(ctx, LogoutInput{UserID: 1, TokenJTI: "jti-1", ExpiresAt: time.Now().Add(time.Minute)}))
	require.NoError(t, svc.Logout(ctx, LogoutInput{UserID: 1, TokenJTI: "jti-old", ExpiresAt: time.Now().Add(-time.Minute)}))

	revoked, err := blacklist.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = blacklist.IsBlacklisted(ctx, "jti-old")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("success revokes earlier tokens", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, blacklist := newTestAuthService(repo, false)
		user := existingUser(t, 3, "clerk", identity.RoleStaff)
		repo.On("FindByID", ctx, int64(3)).Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)

		err := svc.ChangePassword(ctx, 3, ChangePasswordInput{OldPassword: testPassword, NewPassword: "newsecret456"})

		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("newsecret456"))
		revoked, err := blacklist.IsUserTokenInvalidated(ctx, 3, time.Now().Add(-time.Minute))
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("wrong old password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo, false)
		repo.On("FindByID", ctx, int64(3)).Return(existingUser(t, 3, "clerk", identity.RoleStaff), nil)

		err := svc.ChangePassword(ctx, 3, ChangePasswordInput{OldPassword: "nope12345", NewPassword: "newsecret456"})

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_PASSWORD", de.Code)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc, _ := newTestAuthService(repo, false)
	repo.On("FindByID", ctx, int64(4)).Return(existingUser(t, 4, "clerk", identity.RoleStaff), nil)
	repo.On("FindByID", ctx, int64(5)).Return(nil, shared.ErrNotFound)

	me, err := svc.GetCurrentUser(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "clerk", me.Username)

	_, err = svc.GetCurrentUser(ctx, 5)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
