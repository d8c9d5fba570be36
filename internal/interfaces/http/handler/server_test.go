package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	appidentity "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/identity"
	inventoryapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/inventory"
	invoiceapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/invoice"
	partnerapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/partner"
	reportapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/report"
	settingsapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/settings"
	shoppingapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/shopping"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/auth"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/config"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/logger"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/persistence"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/storage"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/telemetry"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/interfaces/http/dto"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/interfaces/http/handler"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/interfaces/http/middleware"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/interfaces/http/router"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

const (
	adminPassword = "admin-password-1"
	staffPassword = "staff-password-1"
)

// testServer is the full API wired to a throwaway sqlite database
type testServer struct {
	t          *testing.T
	engine     *gin.Engine
	db         *persistence.Database
	metrics    *telemetry.Metrics
	adminToken string
	staffToken string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "fresh.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.AutoMigrate())

	itemRepo := persistence.NewGormInventoryRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)
	shoppingRepo := persistence.NewGormShoppingRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	importCfg := inventoryapp.ImportConfig{MaxErrors: 50, MaxRows: 1000}
	settingsSvc := settingsapp.NewSettingsService(settingsRepo, itemRepo, nil)

	jwtSvc := auth.NewJWTService(config.JWTConfig{
		Secret:                 "handler-test-secret-that-is-long-enough",
		AccessTokenExpiration:  time.Hour,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "fresh-choice-test",
		MaxRefreshCount:        5,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	metrics := telemetry.NewMetrics()

	handlers := router.Handlers{
		Auth: handler.NewAuthHandler(
			appidentity.NewAuthService(userRepo, jwtSvc, blacklist, appidentity.AuthServiceConfig{}, nil),
			metrics,
		),
		Users:     handler.NewUserHandler(appidentity.NewUserService(userRepo, blacklist, time.Hour, nil)),
		Inventory: handler.NewInventoryHandler(inventoryapp.NewInventoryService(itemRepo, vendorRepo, settingsSvc, importCfg, nil), metrics),
		Vendors:   handler.NewVendorHandler(partnerapp.NewVendorService(vendorRepo, itemRepo, invoiceRepo, settingsSvc, importCfg, nil), metrics),
		Invoices: handler.NewInvoiceHandler(
			invoiceapp.NewInvoiceService(invoiceRepo, vendorRepo, persistence.NewGormTransactionScope(db.DB), settingsSvc, importCfg, nil),
			metrics,
		),
		Shopping: handler.NewShoppingHandler(shoppingapp.NewShoppingService(shoppingRepo, itemRepo, settingsSvc, nil)),
		Settings: handler.NewSettingsHandler(settingsSvc),
		Reports: handler.NewReportHandler(reportapp.NewReportService(
			persistence.NewGormReportRepository(db.DB), itemRepo, settingsSvc, nil,
			reportapp.WithArchive(storage.NewMemoryObjectStore("http://files.test"), 10*time.Minute),
		)),
	}

	engine := gin.New()
	engine.Use(middleware.RequestID(), logger.Recovery(zap.NewNop()))
	system := handler.NewSystemHandler(db, "test")
	engine.GET("/health", system.Health)
	engine.GET("/ready", system.Ready)

	guards := router.Guards{
		Auth: middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
			JWTService:     jwtSvc,
			TokenBlacklist: blacklist,
			Metrics:        metrics,
		}),
		OptionalAuth: middleware.OptionalJWTAuthMiddleware(jwtSvc),
		Admin:        middleware.RequireAdmin(),
	}
	r := router.NewRouter(engine)
	for _, g := range router.APIGroups(handlers, guards) {
		r.Register(g)
	}
	r.Setup()

	s := &testServer{t: t, engine: engine, db: db, metrics: metrics}

	// the first account becomes admin
	s.mustStatus(http.StatusCreated, s.postJSON("/api/v1/auth/register", "", map[string]string{
		"username": "owner", "password": adminPassword,
	}))
	s.adminToken = s.login("owner", adminPassword)

	s.mustStatus(http.StatusCreated, s.postJSON("/api/v1/auth/register", s.adminToken, map[string]string{
		"username": "clerk", "password": staffPassword, "role": "staff",
	}))
	s.staffToken = s.login("clerk", staffPassword)
	return s
}

func (s *testServer) login(username, password string) string {
	s.t.Helper()
	w := s.postJSON("/api/v1/auth/login", "", map[string]string{"username": username, "password": password})
	s.mustStatus(http.StatusOK, w)
	return decodeData[appidentity.LoginResult](s.t, w).AccessToken
}

func (s *testServer) do(method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) get(path, token string) *httptest.ResponseRecorder {
	return s.do(http.MethodGet, path, token, nil, "")
}

func (s *testServer) delete(path, token string) *httptest.ResponseRecorder {
	return s.do(http.MethodDelete, path, token, nil, "")
}

func (s *testServer) sendJSON(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(s.t, err)
	return s.do(method, path, token, bytes.NewReader(raw), "application/json")
}

func (s *testServer) postJSON(path, token string, body any) *httptest.ResponseRecorder {
	return s.sendJSON(http.MethodPost, path, token, body)
}

func (s *testServer) putJSON(path, token string, body any) *httptest.ResponseRecorder {
	return s.sendJSON(http.MethodPut, path, token, body)
}

func (s *testServer) patchJSON(path, token string, body any) *httptest.ResponseRecorder {
	return s.sendJSON(http.MethodPatch, path, token, body)
}

// upload posts content as the multipart "file" field
func (s *testServer) upload(path, token, content string) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "import.csv")
	require.NoError(s.t, err)
	_, err = part.Write([]byte(content))
	require.NoError(s.t, err)
	require.NoError(s.t, mw.Close())
	return s.do(http.MethodPost, path, token, &buf, mw.FormDataContentType())
}

func (s *testServer) mustStatus(status int, w *httptest.ResponseRecorder) {
	s.t.Helper()
	require.Equal(s.t, status, w.Code, w.Body.String())
}

// create posts body and returns the created resource
func create[T any](s *testServer, path string, body any) T {
	s.t.Helper()
	w := s.postJSON(path, s.staffToken, body)
	s.mustStatus(http.StatusCreated, w)
	return decodeData[T](s.t, w)
}

type envelope[T any] struct {
	Success bool      `json:"success"`
	Data    T         `json:"data"`
	Meta    *dto.Meta `json:"meta"`
}

func decodeEnvelope[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	require.True(t, env.Success, w.Body.String())
	return env
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	return decodeEnvelope[T](t, w).Data
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	require.False(t, resp.Success)
	return resp
}

func pathf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
