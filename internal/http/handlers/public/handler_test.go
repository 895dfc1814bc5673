package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rasoi-next/internal/config"
	"github.com/rasoi-next/internal/models"
	"github.com/rasoi-next/internal/provider"

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

func setupPublicHandlerTest(t *testing.T) (*gin.Engine, *provider.Container) {
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
	asUser := func(c *gin.Context) {
		if raw := c.GetHeader("X-Test-User"); raw != "" {
			id, _ := strconv.ParseUint(raw, 10, 64)
			c.Set("user_id", uint(id))
		}
		c.Next()
	}
	r.GET("/config", h.GetConfig)
	r.GET("/menu-items", h.GetMenuItems)
	r.GET("/menu-items/:slug", h.GetMenuItemBySlug)
	r.GET("/pricing/quote", h.GetPricingQuote)
	r.POST("/orders/preview", h.PreviewOrder)
	r.POST("/orders", h.CreateGuestOrder)
	r.GET("/orders/track/:order_no", h.TrackOrder)
	r.GET("/cart", asUser, h.GetCart)
	r.POST("/cart/items", asUser, h.AddCartItem)
	r.POST("/checkout", asUser, h.Checkout)
	return r, container
}

func seedMenu(t *testing.T) (models.MenuItem, models.MenuItem) {
	t.Helper()
	category := models.Category{Slug: "mains", Name: "Mains", IsActive: true}
	if err := models.DB.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	shikanji := models.MenuItem{
		CategoryID: category.ID,
		Slug:       "traditional-shikanji",
		Name:       "Traditional Shikanji",
		Price:      models.NewMoneyFromInt(80),
		Attributes: models.StringArray{"veg"},
		IsActive:   true,
	}
	thali := models.MenuItem{
		CategoryID: category.ID,
		Slug:       "royal-thali",
		Name:       "Royal Thali",
		Price:      models.NewMoneyFromInt(150),
		Attributes: models.StringArray{"veg", "bestseller"},
		IsActive:   true,
	}
	if err := models.DB.Create(&shikanji).Error; err != nil {
		t.Fatalf("create menu item failed: %v", err)
	}
	if err := models.DB.Create(&thali).Error; err != nil {
		t.Fatalf("create menu item failed: %v", err)
	}
	return shikanji, thali
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, headers map[string]string) apiResponse {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("http status want 200 got %d", w.Code)
	}
	var resp apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v body=%s", err, w.Body.String())
	}
	return resp
}

func guestCustomer() map[string]string {
	return map[string]string{
		"name":    "Asha Rao",
		"email":   "asha@example.com",
		"phone":   "9876543210",
		"address": "12 MG Road, Bengaluru",
	}
}

func TestGetPricingQuote(t *testing.T) {
	r, _ := setupPublicHandlerTest(t)

	resp := doJSON(t, r, http.MethodGet, "/pricing/quote?subtotal=160", nil, nil)
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d msg=%s", resp.StatusCode, resp.Msg)
	}
	var quote map[string]string
	if err := json.Unmarshal(resp.Data, &quote); err != nil {
		t.Fatalf("decode quote failed: %v", err)
	}
	if quote["delivery_fee"] != "40.00" || quote["tax"] != "8.00" || quote["total"] != "208.00" {
		t.Fatalf("unexpected quote: %+v", quote)
	}

	resp = doJSON(t, r, http.MethodGet, "/pricing/quote?subtotal=299", nil, nil)
	if err := json.Unmarshal(resp.Data, &quote); err != nil {
		t.Fatalf("decode quote failed: %v", err)
	}
	if quote["delivery_fee"] != "0.00" {
		t.Fatalf("subtotal at threshold should ship free, got %+v", quote)
	}

	resp = doJSON(t, r, http.MethodGet, "/pricing/quote?subtotal=-5", nil, nil)
	if resp.StatusCode != 400 {
		t.Fatalf("negative subtotal want 400 got %d", resp.StatusCode)
	}
}

func TestPreviewOrderUsesMenuPrices(t *testing.T) {
	r, _ := setupPublicHandlerTest(t)
	shikanji, _ := seedMenu(t)

	resp := doJSON(t, r, http.MethodPost, "/orders/preview", gin.H{
		"items": []gin.H{{"id": strconv.FormatUint(uint64(shikanji.ID), 10), "quantity": 2}},
	}, nil)
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d msg=%s", resp.StatusCode, resp.Msg)
	}
	var preview struct {
		Quote struct {
			Subtotal string `json:"subtotal"`
			Total    string `json:"total"`
		} `json:"quote"`
		PointsEarned int64 `json:"points_earned"`
	}
	if err := json.Unmarshal(resp.Data, &preview); err != nil {
		t.Fatalf("decode preview failed: %v", err)
	}
	if preview.Quote.Subtotal != "160.00" || preview.Quote.Total != "208.00" {
		t.Fatalf("unexpected preview quote: %+v", preview.Quote)
	}
	if preview.PointsEarned != 20 {
		t.Fatalf("points want 20 got %d", preview.PointsEarned)
	}

	resp = doJSON(t, r, http.MethodPost, "/orders/preview", gin.H{"items": []gin.H{}}, nil)
	if resp.StatusCode != 400 {
		t.Fatalf("empty preview want 400 got %d", resp.StatusCode)
	}
}

func TestGuestOrderAndTrack(t *testing.T) {
	r, _ := setupPublicHandlerTest(t)
	_, thali := seedMenu(t)

	resp := doJSON(t, r, http.MethodPost, "/orders", gin.H{
		"items":          []gin.H{{"id": strconv.FormatUint(uint64(thali.ID), 10), "quantity": 2}},
		"customer":       guestCustomer(),
		"payment_method": "upi",
	}, nil)
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d msg=%s", resp.StatusCode, resp.Msg)
	}
	var order struct {
		OrderNo     string `json:"order_no"`
		Status      string `json:"status"`
		DeliveryFee string `json:"delivery_fee"`
		Total       string `json:"total"`
	}
	if err := json.Unmarshal(resp.Data, &order); err != nil {
		t.Fatalf("decode order failed: %v", err)
	}
	if order.Status != "confirmed" {
		t.Fatalf("initial status want confirmed got %s", order.Status)
	}
	if order.DeliveryFee != "0.00" || order.Total != "315.00" {
		t.Fatalf("unexpected totals: %+v", order)
	}

	resp = doJSON(t, r, http.MethodGet, "/orders/track/"+order.OrderNo+"?email=asha@example.com", nil, nil)
	if resp.StatusCode != 0 {
		t.Fatalf("track want 0 got %d msg=%s", resp.StatusCode, resp.Msg)
	}
	resp = doJSON(t, r, http.MethodGet, "/orders/track/"+order.OrderNo+"?email=other@example.com", nil, nil)
	if resp.StatusCode != 404 {
		t.Fatalf("track with wrong email want 404 got %d", resp.StatusCode)
	}
}

func TestGuestOrderRejectsUnknownPaymentMethod(t *testing.T) {
	r, _ := setupPublicHandlerTest(t)
	shikanji, _ := seedMenu(t)

	resp := doJSON(t, r, http.MethodPost, "/orders", gin.H{
		"items":          []gin.H{{"id": strconv.FormatUint(uint64(shikanji.ID), 10), "quantity": 1}},
		"customer":       guestCustomer(),
		"payment_method": "barter",
	}, nil)
	if resp.StatusCode != 400 {
		t.Fatalf("status_code want 400 got %d", resp.StatusCode)
	}
}

func TestCartCheckoutClearsCart(t *testing.T) {
	r, _ := setupPublicHandlerTest(t)
	shikanji, _ := seedMenu(t)
	user := models.User{Email: "ravi@example.com", PasswordHash: "x", Status: "active"}
	if err := models.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	headers := map[string]string{"X-Test-User": strconv.FormatUint(uint64(user.ID), 10)}

	resp := doJSON(t, r, http.MethodGet, "/cart", nil, nil)
	if resp.StatusCode == 0 {
		t.Fatalf("cart without user should be rejected")
	}

	resp = doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"slug": shikanji.Slug, "quantity": 3}, headers)
	if resp.StatusCode != 0 {
		t.Fatalf("add item want 0 got %d msg=%s", resp.StatusCode, resp.Msg)
	}
	resp = doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"menu_item_id": shikanji.ID, "quantity": 1}, headers)
	if resp.StatusCode != 0 {
		t.Fatalf("add same item want 0 got %d msg=%s", resp.StatusCode, resp.Msg)
	}
	var view struct {
		ItemCount int `json:"item_count"`
	}
	if err := json.Unmarshal(resp.Data, &view); err != nil {
		t.Fatalf("decode cart failed: %v", err)
	}
	if view.ItemCount != 4 {
		t.Fatalf("item count want 4 got %d", view.ItemCount)
	}

	resp = doJSON(t, r, http.MethodPost, "/checkout", gin.H{
		"customer":       guestCustomer(),
		"payment_method": "cash_on_delivery",
	}, headers)
	if resp.StatusCode != 0 {
		t.Fatalf("checkout want 0 got %d msg=%s", resp.StatusCode, resp.Msg)
	}

	resp = doJSON(t, r, http.MethodGet, "/cart", nil, headers)
	if err := json.Unmarshal(resp.Data, &view); err != nil {
		t.Fatalf("decode cart failed: %v", err)
	}
	if view.ItemCount != 0 {
		t.Fatalf("cart should be empty after checkout, got %d", view.ItemCount)
	}
}
