package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/telemetry"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	t.Run("generates an id", func(t *testing.T) {
		w := doGet(r, "/", "")
		assert.Len(t, w.Body.String(), 36)
		assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
	})

	t.Run("keeps the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "abc-123", w.Body.String())
	})

	t.Run("replaces an oversized id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", MaxRequestIDLength+1))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Len(t, w.Body.String(), 36)
	})
}

func TestCORSWithConfig(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"http://localhost:5173"}

	r := gin.New()
	r.Use(CORSWithConfig(cfg))
	r.GET("/api", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(method, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/api", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	allowed := send(http.MethodGet, "http://localhost:5173")
	assert.Equal(t, "http://localhost:5173", allowed.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", allowed.Header().Get("Access-Control-Allow-Credentials"))

	denied := send(http.MethodGet, "http://evil.example")
	assert.Equal(t, http.StatusOK, denied.Code)
	assert.Empty(t, denied.Header().Get("Access-Control-Allow-Origin"))

	preflight := send(http.MethodOptions, "http://localhost:5173")
	assert.Equal(t, http.StatusNoContent, preflight.Code)
	assert.Contains(t, preflight.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestCORSWithConfig_Wildcard(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"*"}

	r := gin.New()
	r.Use(CORSWithConfig(cfg))
	r.GET("/api", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Header.Set("Origin", "http://anywhere.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestSecure(t *testing.T) {
	cfg := DefaultSecurityConfig()
	cfg.HSTSEnabled = true

	r := gin.New()
	r.Use(SecureWithConfig(cfg))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := doGet(r, "/", "")

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "max-age=31536000; includeSubDomains", w.Header().Get("Strict-Transport-Security"))
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimitWithUploads(16, 1024))
	r.POST("/echo", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.String(http.StatusOK, string(body))
	})

	post := func(body, contentType string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	small := post(`{"a":1}`, "application/json")
	assert.Equal(t, http.StatusOK, small.Code)

	large := post(strings.Repeat("x", 64), "application/json")
	assert.Equal(t, http.StatusRequestEntityTooLarge, large.Code)
	assert.Equal(t, dto.ErrCodeRequestTooLarge, decodeError(t, large).Code)

	upload := post(strings.Repeat("x", 64), "multipart/form-data; boundary=xyz")
	assert.Equal(t, http.StatusOK, upload.Code)
}

func TestRateLimit(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)
	defer limiter.Stop()

	r := gin.New()
	r.Use(RateLimit(limiter))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	first := doGet(r, "/", "")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, doGet(r, "/", "").Code)

	limited := doGet(r, "/", "")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, dto.ErrCodeRateLimited, decodeError(t, limited).Code)
	assert.Equal(t, "60", limited.Header().Get("Retry-After"))
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()

	assert.True(t, limiter.Allow("a"))
	assert.False(t, limiter.Allow("a"))
	assert.True(t, limiter.Allow("b"))
	assert.Equal(t, 1, limiter.Remaining("unknown"))
	assert.Equal(t, 0, limiter.Remaining("a"))
}

func TestHTTPMetrics(t *testing.T) {
	m := telemetry.NewMetrics()

	r := gin.New()
	r.Use(HTTPMetrics(m))
	r.GET("/api/v1/inventory/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	doGet(r, "/api/v1/inventory/1", "")
	doGet(r, "/api/v1/inventory/2", "")
	doGet(r, "/nope", "")

	families, err := m.Gatherer().Gather()
	require.NoError(t, err)

	var counted float64
	for _, f := range families {
		if f.GetName() != "fresh_choice_http_requests_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, l := range metric.GetLabel() {
				if l.GetName() == "route" && l.GetValue() == "/api/v1/inventory/:id" {
					counted += metric.GetCounter().GetValue()
				}
			}
		}
	}
	assert.Equal(t, float64(2), counted)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.InFlight()))
}

func TestHTTPMetrics_NilIsPassThrough(t *testing.T) {
	r := gin.New()
	r.Use(HTTPMetrics(nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	assert.Equal(t, http.StatusTeapot, doGet(r, "/", "").Code)
}

func TestSwaggerProtection(t *testing.T) {
	handler := func(c *gin.Context) { c.Status(http.StatusOK) }

	t.Run("disabled answers 404", func(t *testing.T) {
		r := gin.New()
		r.GET("/swagger/index.html", SwaggerProtection(SwaggerConfig{Enabled: false}, nil), handler)
		assert.Equal(t, http.StatusNotFound, doGet(r, "/swagger/index.html", "").Code)
	})

	t.Run("ip allow-list", func(t *testing.T) {
		r := gin.New()
		r.GET("/swagger/index.html", SwaggerProtection(SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8"}}, nil), handler)

		req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
		req.RemoteAddr = "10.1.2.3:4000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		req = httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
		req.RemoteAddr = "192.168.1.1:4000"
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("requires auth", func(t *testing.T) {
		svc := testJWTService()
		r := gin.New()
		r.GET("/swagger/index.html",
			SwaggerProtection(SwaggerConfig{Enabled: true, RequireAuth: true}, JWTAuthMiddleware(JWTMiddlewareConfig{JWTService: svc})),
			handler)

		assert.Equal(t, http.StatusUnauthorized, doGet(r, "/swagger/index.html", "").Code)
		assert.Equal(t, http.StatusOK, doGet(r, "/swagger/index.html", issueToken(t, svc, 1, "staff")).Code)
	})
}

func TestProfilingWithConfig_RunsHandler(t *testing.T) {
	r := gin.New()
	r.Use(ProfilingWithConfig(DefaultProfilingConfig()))
	r.GET("/api/v1/inventory", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusOK, doGet(r, "/api/v1/inventory", "").Code)
	assert.Equal(t, http.StatusNoContent, doGet(r, "/health", "").Code)
}
