package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rasoi-next/internal/config"
	"github.com/rasoi-next/internal/models"
	"github.com/rasoi-next/internal/provider"
	"github.com/rasoi-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type apiResponse struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func setupAdminHandlerTest(t *testing.T) (*gin.Engine, *provider.Container) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	models.DB = db
	if err := models.InitDefaultAdmin("owner", "Rasoi@123"); err != nil {
		t.Fatalf("init default admin failed: %v", err)
	}

	v := viper.New()
	config.SetDefaults(v)
	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("unmarshal config failed: %v", err)
	}
	cfg.Redis.Enabled = false
	cfg.Queue.Enabled = false
	cfg.Order.AutoProgress = false

	container := provider.NewContainer(&cfg)
	t.Cleanup(container.Close)
	h := New(container)

	r := gin.New()
	r.POST("/login", h.AdminLogin)
	authorized := r.Group("")
	authorized.Use(func(c *gin.Context) {
		c.Set("admin_id", uint(1))
		c.Next()
	})
	authorized.GET("/orders/status-flow", h.AdminGetOrderStatusFlow)
	authorized.PATCH("/orders/:id/status", h.AdminUpdateOrderStatus)
	authorized.POST("/customers/:id/points", h.AdjustCustomerPoints)
	authorized.PATCH("/customers/:id/status", h.UpdateCustomerStatus)
	return r, container
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) apiResponse {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body failed: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var resp apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v body=%s", err, w.Body.String())
	}
	return resp
}

func createOrder(t *testing.T, c *provider.Container) *models.Order {
	t.Helper()
	category := models.Category{Slug: "starters", Name: "Starters", IsActive: true}
	if err := models.DB.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	item := models.MenuItem{CategoryID: category.ID, Slug: "paneer-tikka", Name: "Paneer Tikka", Price: models.NewMoneyFromInt(220), IsActive: true}
	if err := models.DB.Create(&item).Error; err != nil {
		t.Fatalf("create menu item failed: %v", err)
	}
	order, err := c.OrderService.Create(context.Background(), service.CreateOrderInput{
		Items: []service.CheckoutItem{{ID: fmt.Sprint(item.ID), Quantity: 1}},
		Customer: service.CustomerInfo{
			Name:    "Meera",
			Email:   "meera@example.com",
			Phone:   "9123456780",
			Address: "4 Park Street, Kolkata",
		},
		PaymentMethod: "card",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestAdminLogin(t *testing.T) {
	r, _ := setupAdminHandlerTest(t)

	resp := doJSON(t, r, http.MethodPost, "/login", gin.H{"username": "owner", "password": "Rasoi@123"})
	if resp.StatusCode != 0 {
		t.Fatalf("login want 0 got %d msg=%s", resp.StatusCode, resp.Msg)
	}
	var payload LoginResponse
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("decode login failed: %v", err)
	}
	if payload.Token == "" {
		t.Fatalf("token should not be empty")
	}

	resp = doJSON(t, r, http.MethodPost, "/login", gin.H{"username": "owner", "password": "wrong-pass1"})
	if resp.StatusCode != 401 {
		t.Fatalf("bad password want 401 got %d", resp.StatusCode)
	}
}

func TestAdminUpdateOrderStatusMovesForwardOnly(t *testing.T) {
	r, c := setupAdminHandlerTest(t)
	order := createOrder(t, c)
	path := fmt.Sprintf("/orders/%d/status", order.ID)

	resp := doJSON(t, r, http.MethodPatch, path, gin.H{"status": "preparing"})
	if resp.StatusCode != 0 {
		t.Fatalf("forward move want 0 got %d msg=%s", resp.StatusCode, resp.Msg)
	}
	var updated models.Order
	if err := json.Unmarshal(resp.Data, &updated); err != nil {
		t.Fatalf("decode order failed: %v", err)
	}
	if updated.Status != "preparing" || updated.PreparingAt == nil {
		t.Fatalf("unexpected order after update: status=%s preparing_at=%v", updated.Status, updated.PreparingAt)
	}

	resp = doJSON(t, r, http.MethodPatch, path, gin.H{"status": "confirmed"})
	if resp.StatusCode != 409 {
		t.Fatalf("backward move want 409 got %d", resp.StatusCode)
	}

	resp = doJSON(t, r, http.MethodPatch, path, gin.H{"status": "teleported"})
	if resp.StatusCode != 400 {
		t.Fatalf("unknown status want 400 got %d", resp.StatusCode)
	}

	resp = doJSON(t, r, http.MethodPatch, "/orders/9999/status", gin.H{"status": "ready"})
	if resp.StatusCode != 404 {
		t.Fatalf("missing order want 404 got %d", resp.StatusCode)
	}
}

func TestAdjustCustomerPoints(t *testing.T) {
	r, _ := setupAdminHandlerTest(t)
	user := models.User{Email: "dev@example.com", PasswordHash: "x", Status: "active"}
	if err := models.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	path := fmt.Sprintf("/customers/%d/points", user.ID)

	resp := doJSON(t, r, http.MethodPost, path, gin.H{"points": 600, "remark": "welcome bonus"})
	if resp.StatusCode != 0 {
		t.Fatalf("credit want 0 got %d msg=%s", resp.StatusCode, resp.Msg)
	}
	var account service.LoyaltyAccount
	if err := json.Unmarshal(resp.Data, &account); err != nil {
		t.Fatalf("decode account failed: %v", err)
	}
	if account.Points != 600 || account.Tier != "Silver" {
		t.Fatalf("unexpected account: %+v", account)
	}

	resp = doJSON(t, r, http.MethodPost, path, gin.H{"points": -601})
	if resp.StatusCode != 400 {
		t.Fatalf("overdraw want 400 got %d", resp.StatusCode)
	}
}

func TestUpdateCustomerStatus(t *testing.T) {
	r, _ := setupAdminHandlerTest(t)
	user := models.User{Email: "kabir@example.com", PasswordHash: "x", Status: "active"}
	if err := models.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	path := fmt.Sprintf("/customers/%d/status", user.ID)

	resp := doJSON(t, r, http.MethodPatch, path, gin.H{"status": "disabled"})
	if resp.StatusCode != 0 {
		t.Fatalf("disable want 0 got %d msg=%s", resp.StatusCode, resp.Msg)
	}
	var stored models.User
	if err := models.DB.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if stored.Status != "disabled" || stored.TokenVersion != 1 {
		t.Fatalf("disable should revoke tokens, got status=%s version=%d", stored.Status, stored.TokenVersion)
	}

	resp = doJSON(t, r, http.MethodPatch, path, gin.H{"status": "archived"})
	if resp.StatusCode != 400 {
		t.Fatalf("unknown status want 400 got %d", resp.StatusCode)
	}
}
