package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zeeshan2604/hotwheels-api/auth"
	"github.com/Zeeshan2604/hotwheels-api/config"
)

func TestMatchPath(t *testing.T) {
	cases := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/products", "/products", true},
		{"/products", "/products/7", false},
		{"/products/*", "/products/7", true},
		{"/products/*", "/products/7/reviews", true},
		{"/products/*", "/products", false},
		{"/auth/*", "/auth/login", true},
		{"/auth/*", "/cart", false},
		{"/healthz", "/", false},
		{"/orders/ws", "/orders/ws", true},
		{"/orders/ws", "/orders/7", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, matchPath(tc.pattern, tc.path),
			"pattern %q path %q", tc.pattern, tc.path)
	}
}

func TestIsPublic(t *testing.T) {
	rules := DefaultPublicRoutes

	assert.True(t, isPublic(rules, http.MethodGet, "/products"))
	assert.True(t, isPublic(rules, http.MethodGet, "/products/42"))
	assert.True(t, isPublic(rules, http.MethodPost, "/auth/login"))
	assert.True(t, isPublic(rules, http.MethodGet, "/collections/3"))

	// Method matters, not just the path.
	assert.False(t, isPublic(rules, http.MethodPost, "/products"))
	assert.False(t, isPublic(rules, http.MethodGet, "/cart"))
	assert.False(t, isPublic(rules, http.MethodPost, "/cart"))
	assert.False(t, isPublic(rules, http.MethodPut, "/orders/1"))
}

func gateRouter(t *testing.T) (*gin.Engine, *auth.Tokens) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokens(config.JWTConfig{Secret: "test-secret", TTL: time.Hour})

	r := gin.New()
	r.Use(AccessGate(DefaultPublicRoutes, tokens))
	r.GET("/products", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.POST("/cart", func(c *gin.Context) {
		ident, ok := CallerIdentity(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": ident.UserID, "is_admin": ident.IsAdmin})
	})
	return r, tokens
}

func TestAccessGatePublicRouteNeedsNoToken(t *testing.T) {
	r, _ := gateRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAccessGateGuardedRouteRejectsMissingToken(t *testing.T) {
	r, _ := gateRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAccessGateGuardedRouteRejectsMalformedHeader(t *testing.T) {
	r, tokens := gateRouter(t)
	token, err := tokens.Issue("user-a", false)
	require.NoError(t, err)

	for _, header := range []string{token, "Basic " + token, "Bearer", "Bearer "} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/cart", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAccessGateAttachesIdentity(t *testing.T) {
	r, tokens := gateRouter(t)
	token, err := tokens.Issue("user-a", true)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-a")
	assert.Contains(t, w.Body.String(), "true")
}

func TestAccessGateRejectsExpiredToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	expired := auth.NewTokens(config.JWTConfig{Secret: "test-secret", TTL: -time.Minute})
	token, err := expired.Issue("user-a", false)
	require.NoError(t, err)

	r, _ := gateRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
