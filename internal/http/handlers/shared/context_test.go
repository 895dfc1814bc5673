package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rasoi-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	return c, w
}

func statusCodeOf(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var body struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	return body.StatusCode
}

func TestUserIDFromContext(t *testing.T) {
	c, _ := newContext()
	c.Set(ContextKeyUserID, uint(12))
	if id, ok := UserID(c); !ok || id != 12 {
		t.Fatalf("want user 12 got %d ok=%v", id, ok)
	}

	c, w := newContext()
	if _, ok := UserID(c); ok {
		t.Fatalf("guest request should not resolve a user")
	}
	if code := statusCodeOf(t, w); code != response.CodeUnauthorized {
		t.Fatalf("guest want %d got %d", response.CodeUnauthorized, code)
	}

	c, w = newContext()
	c.Set(ContextKeyUserID, "12")
	if _, ok := UserID(c); ok {
		t.Fatalf("string id should be rejected")
	}
	if code := statusCodeOf(t, w); code != response.CodeInternal {
		t.Fatalf("wrong type want %d got %d", response.CodeInternal, code)
	}
}

func TestAdminContextHelpers(t *testing.T) {
	c, _ := newContext()
	c.Set(ContextKeyAdminID, uint(3))
	c.Set(ContextKeyAdminIsSuper, true)
	if id, ok := AdminID(c); !ok || id != 3 {
		t.Fatalf("want admin 3 got %d ok=%v", id, ok)
	}
	if !AdminIsSuper(c) {
		t.Fatalf("owner flag should be read")
	}

	c, _ = newContext()
	c.Set(ContextKeyAdminIsSuper, "yes")
	if AdminIsSuper(c) {
		t.Fatalf("non-bool flag should be ignored")
	}
}
