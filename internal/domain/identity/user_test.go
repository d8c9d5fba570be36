package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	bcryptCost = bcrypt.MinCost
}

func TestNewUser(t *testing.T) {
	t.Run("hashes password and normalizes username", func(t *testing.T) {
		user, err := NewUser("  Alice_01 ", "s3cretpass", RoleStaff)
		require.NoError(t, err)
		assert.Equal(t, "alice_01", user.Username)
		assert.NotEqual(t, "s3cretpass", user.PasswordHash)
		assert.True(t, user.VerifyPassword("s3cretpass"))
		assert.False(t, user.VerifyPassword("wrong"))
		assert.False(t, user.IsAdmin())
	})

	tests := []struct {
		name, username, password string
		role                     Role
		msg                      string
	}{
		{"short username", "ab", "s3cretpass", RoleStaff, "at least 3"},
		{"bad characters", "a b c", "s3cretpass", RoleStaff, "can only contain"},
		{"short password", "alice", "s3c", RoleStaff, "at least 8"},
		{"password without digit", "alice", "secretpass", RoleStaff, "one letter and one number"},
		{"unknown role", "alice", "s3cretpass", Role("owner"), "admin or staff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := NewUser(tt.username, tt.password, tt.role)
			assert.Nil(t, user)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestUser_ChangePassword(t *testing.T) {
	user, err := NewUser("bob", "firstpass1", RoleAdmin)
	require.NoError(t, err)

	assert.Error(t, user.ChangePassword("nope", "secondpass2"))
	require.NoError(t, user.ChangePassword("firstpass1", "secondpass2"))
	assert.True(t, user.VerifyPassword("secondpass2"))
}

func TestUser_SetEmail(t *testing.T) {
	user, _ := NewUser("bob", "firstpass1", RoleStaff)

	require.NoError(t, user.SetEmail(" Bob@Example.com "))
	require.NotNil(t, user.Email)
	assert.Equal(t, "bob@example.com", *user.Email)

	assert.Error(t, user.SetEmail("not-an-email"))

	require.NoError(t, user.SetEmail(""))
	assert.Nil(t, user.Email)
}

func TestUser_RecordLogin(t *testing.T) {
	user, _ := NewUser("bob", "firstpass1", RoleStaff)
	assert.Nil(t, user.LastLoginAt)
	user.RecordLogin()
	assert.NotNil(t, user.LastLoginAt)
}
