package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"orfanato-app/config"
	"orfanato-app/internal/api/auth"
	"orfanato-app/internal/apperr"
	"orfanato-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func envelope(t *testing.T, w *httptest.ResponseRecorder) apperr.Envelope {
	t.Helper()
	var env apperr.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, _, err := auth.NewIssuer(secret, time.Hour).Issue(users.User{ID: 7, Email: "x@orfanato.test", Role: role})
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/me", AuthMiddleware(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetUint("user_id"), "role": c.GetString("role")})
	})
	r.GET("/admin", AuthMiddleware(secret), AdminRoleGuard(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, apperr.CategorySecurity, envelope(t, w).Category)
	})

	t.Run("bad signature", func(t *testing.T) {
		tok, _, err := auth.NewIssuer("other", time.Hour).Issue(users.User{ID: 1, Role: "admin"})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, "teacher"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":7,"role":"teacher"}`, w.Body.String())
	})

	t.Run("role guard", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, "leader"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, apperr.CategorySecurity, envelope(t, w).Category)

		req = httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, "admin"))
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestOptionalAuthIgnoresBadTokens(t *testing.T) {
	r := gin.New()
	r.GET("/", OptionalAuth(secret), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("role"))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "admin"))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "admin", w.Body.String())
}

func TestRateLimit(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(config.RateLimit{GeneralPerMin: 100, AuthPerMin: 2, WritePerMin: 100, UploadPerMin: 100})
	rl.now = func() time.Time { return now }

	r := gin.New()
	r.POST("/login", rl.RateLimit(RateAuth), func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, hit().Code)
	assert.Equal(t, http.StatusOK, hit().Code)

	w := hit()
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))
	env := envelope(t, w)
	assert.Equal(t, 30, env.RetryAfter)
	assert.Equal(t, apperr.CategoryRule, env.Category)

	hit()
	w = hit()
	assert.Equal(t, apperr.CategorySecurity, envelope(t, w).Category)

	now = now.Add(time.Minute)
	assert.Equal(t, http.StatusOK, hit().Code)
}

func TestRequestTimeout(t *testing.T) {
	r := gin.New()
	r.GET("/slow", RequestTimeout(10*time.Millisecond), func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	r.GET("/fast", RequestTimeout(time.Second), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	env := envelope(t, w)
	assert.Equal(t, "Request timeout", env.Message)
	assert.Equal(t, apperr.CategoryServer, env.Category)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fast", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestTimeoutDoesNotWaitForStuckHandler(t *testing.T) {
	release := make(chan struct{})
	r := gin.New()
	r.GET("/stuck", RequestTimeout(20*time.Millisecond), func(c *gin.Context) {
		<-release
		c.JSON(http.StatusOK, gin.H{"late": true})
	})

	srv := httptest.NewServer(r)
	defer srv.Close()
	var once sync.Once
	unblock := func() { once.Do(func() { close(release) }) }
	defer unblock()

	client := &http.Client{Timeout: 2 * time.Second}
	start := time.Now()
	resp, err := client.Get(srv.URL + "/stuck")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Less(t, time.Since(start), time.Second)

	unblock()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"Request timeout"`)
	assert.NotContains(t, string(body), "late")
}

func TestRequestTimeoutKeepsPanicsForRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zerolog.Nop()))
	r.GET("/boom", RequestTimeout(time.Second), func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperr.CategoryServer, envelope(t, w).Category)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zerolog.Nop()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := envelope(t, w)
	assert.Equal(t, "Internal server error", env.Message)
	assert.Equal(t, apperr.CategoryServer, env.Category)
}

func TestSanitizeNested(t *testing.T) {
	r := gin.New()
	r.POST("/", SanitizeAndCleanInputMiddleware(), func(c *gin.Context) {
		var body map[string]any
		require.NoError(t, c.ShouldBindJSON(&body))
		c.JSON(http.StatusOK, body)
	})

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(
		`{"name":"<b>Ana</b>","tags":["<i>x</i>"],"inner":{"note":"<script>bad()</script>ok"},"n":3}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"Ana","tags":["x"],"inner":{"note":"ok"},"n":3}`, w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
