package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hostel_booking/internal/apperrors"
	"hostel_booking/internal/domain"
	"hostel_booking/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	users map[string]*domain.User
}

func (f *fakeAuth) Register(context.Context, service.RegisterInput) (*domain.User, error) {
	return nil, nil
}

func (f *fakeAuth) Authenticate(context.Context, string, string) (*service.Session, error) {
	return nil, nil
}

func (f *fakeAuth) CurrentUser(_ context.Context, token string) (*domain.User, error) {
	if u, ok := f.users[token]; ok {
		return u, nil
	}
	return nil, apperrors.Unauthorized("Invalid or expired token")
}

func (f *fakeAuth) Logout(context.Context, string) error { return nil }

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := &fakeAuth{users: map[string]*domain.User{
		"guest-token": {ID: 1, Username: "guest"},
		"admin-token": {ID: 2, Username: "root", IsAdmin: true},
	}}
	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(auth), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetUint(ContextUserID), "username": CurrentUser(c).Username})
	})
	r.GET("/admin", JWTAuthMiddleware(auth), AdminOnlyMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newRouter()

	w := do(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, apperrors.CodeUnauthorized, body["code"])

	w = do(r, "/me", "bogus")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "/me", "guest-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"username":"guest"}`, w.Body.String())
}

func TestAdminOnlyMiddleware(t *testing.T) {
	r := newRouter()

	assert.Equal(t, http.StatusUnauthorized, do(r, "/admin", "").Code)
	assert.Equal(t, http.StatusForbidden, do(r, "/admin", "guest-token").Code)
	assert.Equal(t, http.StatusNoContent, do(r, "/admin", "admin-token").Code)
}

func TestAdminOnlyWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", AdminOnlyMiddleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	assert.Equal(t, http.StatusUnauthorized, do(r, "/admin", "").Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"), "buckets are per client")

	now = now.Add(30 * time.Second)
	assert.True(t, rl.Allow("1.2.3.4"), "one token refills every 30s")

	now = now.Add(10 * time.Minute)
	rl.Allow("9.9.9.9")
	assert.Len(t, rl.visitors, 1, "idle buckets expire")
}

func TestRateLimiterMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/login", NewRateLimiter(1).Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(r, "/login", "").Code)
	w := do(r, "/login", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), apperrors.CodeRateLimited)
}
