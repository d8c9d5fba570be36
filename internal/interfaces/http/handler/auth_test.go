package handler_test

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	appidentity "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/identity"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_RegisterClosedAfterFirstUser(t *testing.T) {
	s := newTestServer(t)

	w := s.postJSON("/api/v1/auth/register", "", map[string]string{"username": "walkin", "password": "walkin-password"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, dto.ErrCodeForbidden, decodeError(t, w).Code)

	// staff cannot open registration for others either
	w = s.postJSON("/api/v1/auth/register", s.staffToken, map[string]string{"username": "walkin", "password": "walkin-password"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.postJSON("/api/v1/auth/register", s.adminToken, map[string]string{"username": "ab", "password": "short"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrCodeValidation, resp.Code)

	fields := map[string]bool{}
	for _, d := range resp.Details {
		fields[d.Field] = true
	}
	assert.True(t, fields["username"])
	assert.True(t, fields["password"])
}

func TestAuthHandler_RegisterDuplicate(t *testing.T) {
	s := newTestServer(t)

	w := s.postJSON("/api/v1/auth/register", s.adminToken, map[string]string{"username": "CLERK", "password": "another-password"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeAlreadyExists, decodeError(t, w).Code)
}

func TestAuthHandler_Login(t *testing.T) {
	s := newTestServer(t)

	t.Run("returns tokens and user", func(t *testing.T) {
		w := s.postJSON("/api/v1/auth/login", "", map[string]string{"username": "owner", "password": adminPassword})
		require.Equal(t, http.StatusOK, w.Code)

		result := decodeData[appidentity.LoginResult](t, w)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "admin", result.User.Role)
		assert.NotNil(t, result.User.LastLoginAt)
	})

	t.Run("wrong password is 401 and counted", func(t *testing.T) {
		before := testutil.ToFloat64(s.metrics.AuthFailures().WithLabelValues("bad_credentials"))

		w := s.postJSON("/api/v1/auth/login", "", map[string]string{"username": "owner", "password": "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeUnauthorized, decodeError(t, w).Code)

		after := testutil.ToFloat64(s.metrics.AuthFailures().WithLabelValues("bad_credentials"))
		assert.Equal(t, before+1, after)
	})

	t.Run("unknown user looks the same", func(t *testing.T) {
		w := s.postJSON("/api/v1/auth/login", "", map[string]string{"username": "ghost", "password": "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid username or password", decodeError(t, w).Error)
	})
}

func TestAuthHandler_RefreshAndMe(t *testing.T) {
	s := newTestServer(t)

	w := s.postJSON("/api/v1/auth/login", "", map[string]string{"username": "clerk", "password": staffPassword})
	require.Equal(t, http.StatusOK, w.Code)
	login := decodeData[appidentity.LoginResult](t, w)

	w = s.postJSON("/api/v1/auth/refresh", "", map[string]string{"refresh_token": login.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code)
	tokens := decodeData[appidentity.TokenResponse](t, w)
	assert.NotEmpty(t, tokens.AccessToken)

	w = s.get("/api/v1/auth/me", tokens.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	me := decodeData[appidentity.UserResponse](t, w)
	assert.Equal(t, "clerk", me.Username)
	assert.Equal(t, "staff", me.Role)

	w = s.postJSON("/api/v1/auth/refresh", "", map[string]string{"refresh_token": login.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	s := newTestServer(t)

	require.Equal(t, http.StatusOK, s.get("/api/v1/auth/me", s.staffToken).Code)

	w := s.postJSON("/api/v1/auth/logout", s.staffToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.get("/api/v1/auth/me", s.staffToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token has been revoked", decodeError(t, w).Error)

	// other sessions are untouched
	assert.Equal(t, http.StatusOK, s.get("/api/v1/auth/me", s.adminToken).Code)
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	s := newTestServer(t)

	w := s.putJSON("/api/v1/auth/password", s.staffToken, map[string]string{
		"old_password": "wrong-password", "new_password": "brand-new-password-2",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "INVALID_PASSWORD", resp.Code)
	assert.Equal(t, "Current password is incorrect", resp.Error)

	w = s.putJSON("/api/v1/auth/password", s.staffToken, map[string]string{
		"old_password": staffPassword, "new_password": "no-digits-here",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "the new password must meet the password rules")
	assert.Equal(t, "INVALID_PASSWORD", decodeError(t, w).Code)
	assert.Equal(t, http.StatusOK, s.get("/api/v1/auth/me", s.staffToken).Code, "a rejected change keeps the session")

	w = s.putJSON("/api/v1/auth/password", s.staffToken, map[string]string{
		"old_password": staffPassword, "new_password": "brand-new-password-2",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// the old session is revoked with the password change
	assert.Equal(t, http.StatusUnauthorized, s.get("/api/v1/auth/me", s.staffToken).Code)

	w = s.postJSON("/api/v1/auth/login", "", map[string]string{"username": "clerk", "password": staffPassword})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = s.postJSON("/api/v1/auth/login", "", map[string]string{"username": "clerk", "password": "brand-new-password-2"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserHandler(t *testing.T) {
	s := newTestServer(t)

	t.Run("staff is forbidden", func(t *testing.T) {
		w := s.get("/api/v1/users", s.staffToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("anonymous is unauthorized", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, s.get("/api/v1/users", "").Code)
	})

	w := s.get("/api/v1/users", s.adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	users := decodeData[[]appidentity.UserResponse](t, w)
	require.Len(t, users, 2)

	var ownerID, clerkID int64
	for _, u := range users {
		switch u.Username {
		case "owner":
			ownerID = u.ID
		case "clerk":
			clerkID = u.ID
		}
	}

	t.Run("cannot delete yourself", func(t *testing.T) {
		w := s.delete(pathf("/api/v1/users/%d", ownerID), s.adminToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, s.delete("/api/v1/users/9999", s.adminToken).Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		w := s.delete("/api/v1/users/abc", s.adminToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidInput, decodeError(t, w).Code)
	})

	require.Equal(t, http.StatusNoContent, s.delete(pathf("/api/v1/users/%d", clerkID), s.adminToken).Code)
	assert.Equal(t, http.StatusUnauthorized, s.get("/api/v1/auth/me", s.staffToken).Code)
}
