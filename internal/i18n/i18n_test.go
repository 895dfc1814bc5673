package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestLocalesShareKeys(t *testing.T) {
	en := messages[LocaleEnUS]
	zh := messages[LocaleZhCN]
	for key := range en {
		if _, ok := zh[key]; !ok {
			t.Fatalf("zh-CN missing key %s", key)
		}
	}
	for key := range zh {
		if _, ok := en[key]; !ok {
			t.Fatalf("en-US missing key %s", key)
		}
	}
}

func TestTFallback(t *testing.T) {
	if got := T("fr-FR", "error.cart_empty"); got != "Your cart is empty" {
		t.Fatalf("unknown locale should fall back to default, got %s", got)
	}
	if got := T(LocaleZhCN, "error.unknown_key"); got != "error.unknown_key" {
		t.Fatalf("missing key should echo key, got %s", got)
	}
	if got := Sprintf(LocaleEnUS, "error.login_too_many", 30); got != "Too many sign-in attempts, please retry in 30 seconds" {
		t.Fatalf("unexpected formatted message: %s", got)
	}
}

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		url    string
		header map[string]string
		want   string
	}{
		{name: "query wins", url: "/?lang=zh-CN", header: map[string]string{"Accept-Language": "en-US"}, want: LocaleZhCN},
		{name: "x-locale header", url: "/", header: map[string]string{"X-Locale": "zh"}, want: LocaleZhCN},
		{name: "accept language", url: "/", header: map[string]string{"Accept-Language": "zh-CN,zh;q=0.9"}, want: LocaleZhCN},
		{name: "default", url: "/", want: DefaultLocale},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, tc.url, nil)
			for k, v := range tc.header {
				c.Request.Header.Set(k, v)
			}
			if got := ResolveLocale(c); got != tc.want {
				t.Fatalf("locale want %s got %s", tc.want, got)
			}
		})
	}
}
