package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehiql/internal/domain/entity"
	"vehiql/internal/infrastructure/ratelimit"
	"vehiql/pkg/errors"
)

type fakeVerifier struct {
	tokens map[string]string
}

func (f *fakeVerifier) VerifyToken(_ context.Context, token string) (string, error) {
	uid, ok := f.tokens[token]
	if !ok {
		return "", errors.Unauthorized("bad token", nil)
	}
	return uid, nil
}

type fakeUsers struct {
	users map[string]*entity.User
}

func (f *fakeUsers) EnsureUser(_ context.Context, uid string) (*entity.User, error) {
	user, ok := f.users[uid]
	if !ok {
		return nil, errors.Unauthorized("User not found", nil)
	}
	return user, nil
}

func newAuth() *AuthMiddleware {
	return NewAuthMiddleware(
		&fakeVerifier{tokens: map[string]string{
			"shopper-token": "shopper",
			"admin-token":   "admin",
			"ghost-token":   "ghost",
		}},
		&fakeUsers{users: map[string]*entity.User{
			"shopper": {ID: "shopper", Role: entity.RoleUser},
			"admin":   {ID: "admin", Role: entity.RoleAdmin},
		}},
	)
}

// serve runs mw around a handler that echoes the resolved uid.
func serve(mw echo.MiddlewareFunc, authorization string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := mw(func(c echo.Context) error {
		uid, _ := c.Get(ContextKeyUID).(string)
		return c.String(http.StatusOK, "uid="+uid)
	})
	_ = h(c)
	return rec
}

func TestAuthenticate(t *testing.T) {
	auth := newAuth()

	tests := []struct {
		name          string
		authorization string
		wantStatus    int
		wantBody      string
	}{
		{"missing header", "", http.StatusUnauthorized, "Authorization header is required"},
		{"wrong scheme", "Basic shopper-token", http.StatusUnauthorized, "Authorization header is required"},
		{"unknown token", "Bearer nope", http.StatusUnauthorized, "Invalid or expired token"},
		{"user missing locally", "Bearer ghost-token", http.StatusUnauthorized, "User not found"},
		{"valid", "Bearer shopper-token", http.StatusOK, "uid=shopper"},
		{"case insensitive scheme", "bearer admin-token", http.StatusOK, "uid=admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(auth.Authenticate, tt.authorization)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestOptionalAuth_ContinuesAnonymously(t *testing.T) {
	auth := newAuth()

	for _, header := range []string{"", "Bearer nope", "Bearer ghost-token", "Token x"} {
		rec := serve(auth.OptionalAuth, header)
		assert.Equal(t, http.StatusOK, rec.Code, header)
		assert.Equal(t, "uid=", rec.Body.String(), header)
	}

	rec := serve(auth.OptionalAuth, "Bearer shopper-token")
	assert.Equal(t, "uid=shopper", rec.Body.String())
}

func TestAdminOnly(t *testing.T) {
	admin := NewAdminMiddleware()

	run := func(user *entity.User) int {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/admin/cars", nil), rec)
		if user != nil {
			c.Set(ContextKeyUser, user)
		}
		_ = admin.AdminOnly(func(c echo.Context) error {
			return c.NoContent(http.StatusNoContent)
		})(c)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, run(nil))
	assert.Equal(t, http.StatusForbidden, run(&entity.User{ID: "u", Role: entity.RoleUser}))
	assert.Equal(t, http.StatusNoContent, run(&entity.User{ID: "a", Role: entity.RoleAdmin}))
}

func TestRateLimit(t *testing.T) {
	mw := RateLimit(ratelimit.NewRateLimiter(60, 2))

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = serve(mw, "")
		codes = append(codes, last.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	require.NotEmpty(t, last.Header().Get("Retry-After"))
	assert.Contains(t, last.Body.String(), "TOO_MANY_REQUESTS")
}

func TestRateLimit_KeysByClientIP(t *testing.T) {
	mw := RateLimit(ratelimit.NewRateLimiter(60, 1))
	e := echo.New()

	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderXRealIP, ip)
		rec := httptest.NewRecorder()
		_ = mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(e.NewContext(req, rec))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1"))
}
