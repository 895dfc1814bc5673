package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rasoi-next/internal/cache"
	"github.com/rasoi-next/internal/config"
	"github.com/rasoi-next/internal/constants"
	handlershared "github.com/rasoi-next/internal/http/handlers/shared"
	"github.com/rasoi-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type fakeUserResolver struct {
	claims *service.UserJWTClaims
	state  *cache.UserAuthState
}

func (f fakeUserResolver) ParseUserJWT(token string) (*service.UserJWTClaims, error) {
	if token != "good" {
		return nil, errors.New("invalid token")
	}
	return f.claims, nil
}

func (f fakeUserResolver) ResolveUserAuthState(ctx context.Context, userID uint) (*cache.UserAuthState, error) {
	return f.state, nil
}

type fakeAdminResolver struct {
	claims *service.JWTClaims
	state  *cache.AdminAuthState
}

func (f fakeAdminResolver) ParseJWT(token string) (*service.JWTClaims, error) {
	if token != "good" {
		return nil, errors.New("invalid token")
	}
	return f.claims, nil
}

func (f fakeAdminResolver) ResolveAdminAuthState(ctx context.Context, adminID uint) (*cache.AdminAuthState, error) {
	return f.state, nil
}

type fakeEnforcer struct {
	allowed map[string]bool
	calls   int
}

func (f *fakeEnforcer) EnforceAdmin(adminID uint, obj, act string) (bool, error) {
	f.calls++
	return f.allowed[act+" "+obj], nil
}

func corsConfigForTest() config.CORSConfig {
	return config.CORSConfig{
		AllowedOrigins:   []string{"https://rasoi.example"},
		AllowCredentials: true,
		MaxAge:           600,
	}
}

func decodeStatusCode(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v body=%s", err, w.Body.String())
	}
	return resp.StatusCode
}

func serveWithToken(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if strings.TrimSpace(w2.Header().Get(requestIDHeader)) == "" {
		t.Fatalf("generated request id should not be blank")
	}
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CORSMiddleware(corsConfigForTest()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://rasoi.example")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status want 204 got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "https://rasoi.example" {
		t.Fatalf("allow origin want echo got %s", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestJWTAuthMiddlewareWithoutResolver(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuthMiddleware(nil))
	r.GET("/admin/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := serveWithToken(r, "/admin/ping", "good")
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if code := decodeStatusCode(t, w); code != 401 {
		t.Fatalf("status_code want 401 got %d", code)
	}
}

func TestJWTAuthMiddlewareRejectsStaleTokenVersion(t *testing.T) {
	gin.SetMode(gin.TestMode)

	resolver := fakeAdminResolver{
		claims: &service.JWTClaims{AdminID: 3, Username: "kitchen", TokenVersion: 1},
		state:  &cache.AdminAuthState{AdminID: 3, TokenVersion: 2},
	}
	r := gin.New()
	r.Use(JWTAuthMiddleware(resolver))
	r.GET("/admin/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	if code := decodeStatusCode(t, serveWithToken(r, "/admin/ping", "good")); code != 401 {
		t.Fatalf("stale token status_code want 401 got %d", code)
	}

	resolver.state.TokenVersion = 1
	w := serveWithToken(r, "/admin/ping", "good")
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("current token should pass, body=%s", w.Body.String())
	}
}

func TestUserJWTAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	issuedAt := time.Now().Add(-time.Hour)
	resolver := &fakeUserResolver{
		claims: &service.UserJWTClaims{
			UserID:           9,
			Email:            "asha@example.com",
			RegisteredClaims: jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(issuedAt)},
		},
		state: &cache.UserAuthState{UserID: 9, Status: constants.UserStatusActive},
	}
	r := gin.New()
	r.Use(UserJWTAuthMiddleware(resolver))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint("user_id")})
	})

	if code := decodeStatusCode(t, serveWithToken(r, "/me", "")); code != 401 {
		t.Fatalf("missing header status_code want 401 got %d", code)
	}
	if code := decodeStatusCode(t, serveWithToken(r, "/me", "bad")); code != 401 {
		t.Fatalf("bad token status_code want 401 got %d", code)
	}

	w := serveWithToken(r, "/me", "good")
	if !strings.Contains(w.Body.String(), `"user_id":9`) {
		t.Fatalf("valid token should reach handler, body=%s", w.Body.String())
	}

	resolver.state.TokenInvalidBefore = time.Now().Unix()
	if code := decodeStatusCode(t, serveWithToken(r, "/me", "good")); code != 401 {
		t.Fatalf("token issued before password change want 401 got %d", code)
	}

	resolver.state.TokenInvalidBefore = 0
	resolver.state.Status = constants.UserStatusDisabled
	if code := decodeStatusCode(t, serveWithToken(r, "/me", "good")); code != 401 {
		t.Fatalf("disabled user want 401 got %d", code)
	}
}

func TestAdminRBACMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	enforcer := &fakeEnforcer{allowed: map[string]bool{"GET /admin/orders/:id": true}}
	build := func(isSuper bool) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			c.Set("admin_id", uint(4))
			c.Set(handlershared.ContextKeyAdminIsSuper, isSuper)
			c.Next()
		})
		r.Use(AdminRBACMiddleware(enforcer))
		r.GET("/admin/orders/:id", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
		r.DELETE("/admin/orders/:id", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
		return r
	}

	r := build(false)
	w := serveWithToken(r, "/admin/orders/12", "")
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("granted route should pass, body=%s", w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin/orders/12", nil))
	if code := decodeStatusCode(t, w); code != 403 {
		t.Fatalf("denied route status_code want 403 got %d", code)
	}

	before := enforcer.calls
	w = httptest.NewRecorder()
	build(true).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin/orders/12", nil))
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("super admin should bypass rbac, body=%s", w.Body.String())
	}
	if enforcer.calls != before {
		t.Fatalf("super admin should not hit enforcer")
	}
}
