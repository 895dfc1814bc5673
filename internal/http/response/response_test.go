package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		page, size int
		total      int64
		want       int64
	}{
		{1, 20, 0, 0},
		{1, 20, 20, 1},
		{2, 20, 21, 2},
		{1, 0, 5, 1},
	}
	for _, tc := range cases {
		got := NewPagination(tc.page, tc.size, tc.total)
		if got.TotalPage != tc.want {
			t.Fatalf("pagination %+v want total_page %d got %d", tc, tc.want, got.TotalPage)
		}
	}
}

func TestTooManyRequestsCarriesRetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil)
	c.Set(RequestIDKey, "req-1")

	TooManyRequests(c, "slow down", 30)

	if w.Code != http.StatusOK {
		t.Fatalf("envelope should use http 200, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") != "30" {
		t.Fatalf("retry-after header want 30 got %q", w.Header().Get("Retry-After"))
	}
	var body struct {
		StatusCode int                    `json:"status_code"`
		Data       map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if body.StatusCode != CodeTooManyRequests {
		t.Fatalf("status_code want %d got %d", CodeTooManyRequests, body.StatusCode)
	}
	if body.Data[RequestIDKey] != "req-1" || body.Data["retry_after_seconds"] != float64(30) {
		t.Fatalf("unexpected data: %v", body.Data)
	}
}

func TestSuccessWithPageEmptyList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SuccessWithPage(c, nil, NewPagination(1, 20, 0))

	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if string(body["data"]) != "[]" {
		t.Fatalf("empty page should render [], got %s", body["data"])
	}
}
