package identity

import (
	"context"
	"testing"
	"time"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/identity"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := NewUserService(repo, nil, time.Hour, nil)

	alice := identity.User{Username: "alice", Role: identity.RoleAdmin}
	alice.ID = 1
	bob := identity.User{Username: "bob", Role: identity.RoleStaff}
	bob.ID = 2
	repo.On("FindAll", ctx).Return([]identity.User{alice, bob}, nil)

	users, err := svc.List(ctx)

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "staff", users[1].Role)
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	admin := &Actor{UserID: 1, Role: "admin"}

	t.Run("deletes and revokes tokens", func(t *testing.T) {
		repo := new(MockUserRepository)
		blacklist := auth.NewInMemoryTokenBlacklist()
		svc := NewUserService(repo, blacklist, time.Hour, nil)
		repo.On("Delete", ctx, int64(2)).Return(nil)

		require.NoError(t, svc.Delete(ctx, admin, 2))

		revoked, err := blacklist.IsUserTokenInvalidated(ctx, 2, time.Now().Add(-time.Second))
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("self delete is rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, nil, time.Hour, nil)

		err := svc.Delete(ctx, admin, 1)

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, nil, time.Hour, nil)
		repo.On("Delete", ctx, int64(99)).Return(shared.ErrNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, admin, 99), shared.ErrNotFound)
	})
}
