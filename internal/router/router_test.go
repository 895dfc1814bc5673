package router

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestBuildAdminPermissionCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)

	noop := func(c *gin.Context) {}
	r := gin.New()
	r.POST("/api/v1/admin/login", noop)
	r.GET("/api/v1/admin/captcha/image", noop)
	r.GET("/api/v1/admin/orders", noop)
	r.PATCH("/api/v1/admin/orders/:id/status", noop)
	r.GET("/api/v1/admin/menu-items/:id", noop)
	r.GET("/api/v1/public/menu-items", noop)
	r.Handle(http.MethodOptions, "/api/v1/admin/orders", noop)

	items := buildAdminPermissionCatalog(r)
	if len(items) != 3 {
		t.Fatalf("catalog size want 3 got %d: %+v", len(items), items)
	}
	if items[0].Module != "menu-items" || items[0].Object != "/admin/menu-items/:id" {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if items[2].Permission != "PATCH:/admin/orders/:id/status" {
		t.Fatalf("unexpected permission: %+v", items[2])
	}
}

func TestDeriveAdminPermissionModule(t *testing.T) {
	cases := map[string]string{
		"/admin/orders/:id":       "orders",
		"/admin/authz/roles":      "authz",
		"/admin/reports/overview": "reports",
		"/admin":                  "admin",
		"/":                       "system",
	}
	for object, want := range cases {
		if got := deriveAdminPermissionModule(object); got != want {
			t.Fatalf("module for %s want %s got %s", object, want, got)
		}
	}
}
