package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arden-cole/portfoliobackend/auth"
	"github.com/arden-cole/portfoliobackend/models"
)

func testTokenService() *auth.TokenService {
	return auth.NewTokenService([]byte("test-secret"), time.Hour, "portfoliobackend-test")
}

func requestWithToken(t *testing.T, ts *auth.TokenService, principal auth.Principal) *http.Request {
	t.Helper()
	r := httptest.NewRequest("GET", "/protected", nil)
	if principal != (auth.Principal{}) {
		token, _, err := ts.Issue(principal)
		require.NoError(t, err)
		r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}
	return r
}

func TestRequireAuth(t *testing.T) {
	ts := testTokenService()
	var captured auth.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := RequireAuth(ts)(next)

	t.Run("no cookie is unauthorized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest("GET", "/protected", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/protected", nil)
		r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "garbage"})
		protected.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid session reaches the handler with its principal", func(t *testing.T) {
		principal := auth.Principal{Subject: "7", Email: "ivan@example.com", Role: models.RoleEditor}
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, requestWithToken(t, ts, principal))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, principal, captured)
	})
}

func TestRequireRole(t *testing.T) {
	ts := testTokenService()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	adminOnly := RequireRole(ts, models.RoleAdmin)(next)

	t.Run("admin passes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		adminOnly.ServeHTTP(rec, requestWithToken(t, ts, auth.Principal{Subject: "1", Role: models.RoleAdmin}))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("editor on an admin route is forbidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		adminOnly.ServeHTTP(rec, requestWithToken(t, ts, auth.Principal{Subject: "7", Role: models.RoleEditor}))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("anonymous is unauthorized, not forbidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		adminOnly.ServeHTTP(rec, httptest.NewRequest("GET", "/protected", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
