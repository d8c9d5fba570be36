package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/auth"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/config"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "fresh-choice-test",
		MaxRefreshCount:        10,
	})
}

func issueToken(t *testing.T, svc *auth.JWTService, userID int64, role string) string {
	t.Helper()
	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{UserID: userID, Username: "clerk", Role: role})
	require.NoError(t, err)
	return pair.AccessToken
}

type authFailureCounter struct {
	reasons []string
}

func (a *authFailureCounter) RecordAuthFailure(reason string) {
	a.reasons = append(a.reasons, reason)
}

func newJWTRouter(cfg JWTMiddlewareConfig, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuthMiddleware(cfg)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetJWTUserID(c), "role": GetJWTClaims(c).Role})
	})
	r.GET("/private", handlers...)
	return r
}

func doGet(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestJWTAuthMiddleware_MissingToken(t *testing.T) {
	counter := &authFailureCounter{}
	r := newJWTRouter(JWTMiddlewareConfig{JWTService: testJWTService(), Metrics: counter})

	w := doGet(r, "/private", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeError(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeUnauthorized, resp.Code)
	assert.Equal(t, []string{"missing_token"}, counter.reasons)
}

func TestJWTAuthMiddleware_InvalidToken(t *testing.T) {
	r := newJWTRouter(JWTMiddlewareConfig{JWTService: testJWTService()})

	w := doGet(r, "/private", "not-a-jwt")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", decodeError(t, w).Error)
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	svc := testJWTService()
	r := newJWTRouter(JWTMiddlewareConfig{JWTService: svc})

	w := doGet(r, "/private", issueToken(t, svc, 7, "staff"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":7,"role":"staff"}`, w.Body.String())
}

func TestJWTAuthMiddleware_RevokedToken(t *testing.T) {
	svc := testJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	r := newJWTRouter(JWTMiddlewareConfig{JWTService: svc, TokenBlacklist: blacklist})

	token := issueToken(t, svc, 7, "staff")
	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Hour))

	w := doGet(r, "/private", token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token has been revoked", decodeError(t, w).Error)
}

func TestJWTAuthMiddleware_UserTokensInvalidated(t *testing.T) {
	svc := testJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	r := newJWTRouter(JWTMiddlewareConfig{JWTService: svc, TokenBlacklist: blacklist})

	token := issueToken(t, svc, 9, "admin")
	require.NoError(t, blacklist.AddUserTokensToBlacklist(context.Background(), 9, time.Hour))

	w := doGet(r, "/private", token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	svc := testJWTService()
	r := newJWTRouter(JWTMiddlewareConfig{JWTService: svc}, RequireAdmin())

	staff := doGet(r, "/private", issueToken(t, svc, 2, "staff"))
	assert.Equal(t, http.StatusForbidden, staff.Code)
	assert.Equal(t, dto.ErrCodeForbidden, decodeError(t, staff).Code)

	admin := doGet(r, "/private", issueToken(t, svc, 1, "admin"))
	assert.Equal(t, http.StatusOK, admin.Code)
}

func TestRequireAdmin_Anonymous(t *testing.T) {
	r := gin.New()
	r.GET("/admin", RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := doGet(r, "/admin", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalJWTAuthMiddleware(t *testing.T) {
	svc := testJWTService()
	r := gin.New()
	r.GET("/maybe", OptionalJWTAuthMiddleware(svc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetJWTUserID(c)})
	})

	anonymous := doGet(r, "/maybe", "")
	assert.JSONEq(t, `{"user_id":0}`, anonymous.Body.String())

	garbage := doGet(r, "/maybe", "garbage")
	assert.Equal(t, http.StatusOK, garbage.Code)
	assert.JSONEq(t, `{"user_id":0}`, garbage.Body.String())

	authed := doGet(r, "/maybe", issueToken(t, svc, 3, "staff"))
	assert.JSONEq(t, `{"user_id":3}`, authed.Body.String())
}
