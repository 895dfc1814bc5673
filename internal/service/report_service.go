package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rasoi-next/internal/cache"
	"github.com/rasoi-next/internal/repository"
)

const (
	reportCustomMaxDays = 366
	reportTopItemsLimit = 5
)

// ReportService 经营报表服务
type ReportService struct {
	repo     repository.ReportRepository
	currency string
	now      func() time.Time
}

// NewReportService 创建报表服务
func NewReportService(repo repository.ReportRepository, pricing PricingPolicy) *ReportService {
	return &ReportService{
		repo:     repo,
		currency: pricing.Currency,
		now:      time.Now,
	}
}

// ReportQueryInput 报表查询参数
type ReportQueryInput struct {
	Range        string
	From         *time.Time
	To           *time.Time
	Timezone     string
	ForceRefresh bool
}

// ReportOverview 经营总览
type ReportOverview struct {
	Range             string              `json:"range"`
	From              string              `json:"from"`
	To                string              `json:"to"`
	Timezone          string              `json:"timezone"`
	Currency          string              `json:"currency"`
	OrdersTotal       int64               `json:"orders_total"`
	OrdersByStatus    map[string]int64    `json:"orders_by_status"`
	DeliveredOrders   int64               `json:"delivered_orders"`
	InFlightOrders    int64               `json:"in_flight_orders"`
	Revenue           string              `json:"revenue"`
	DeliveredRevenue  string              `json:"delivered_revenue"`
	TaxCollected      string              `json:"tax_collected"`
	DeliveryFees      string              `json:"delivery_fees"`
	AverageOrderValue string              `json:"average_order_value"`
	NewCustomers      int64               `json:"new_customers"`
	ActiveMenuItems   int64               `json:"active_menu_items"`
	LowStockItems     int64               `json:"low_stock_items"`
	PointsIssued      int64               `json:"points_issued"`
	TopItems          []ReportTopItem     `json:"top_items"`
	PaymentMethods    []ReportPaymentItem `json:"payment_methods"`
}

// ReportTopItem 菜品销量排行
type ReportTopItem struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Orders     int64  `json:"orders"`
	Quantity   int64  `json:"quantity"`
	Revenue    string `json:"revenue"`
}

// ReportPaymentItem 支付方式分布
type ReportPaymentItem struct {
	PaymentMethod string `json:"payment_method"`
	Orders        int64  `json:"orders"`
	Revenue       string `json:"revenue"`
}

// ReportTrends 每日趋势
type ReportTrends struct {
	Range    string             `json:"range"`
	From     string             `json:"from"`
	To       string             `json:"to"`
	Timezone string             `json:"timezone"`
	Points   []ReportTrendPoint `json:"points"`
}

// ReportTrendPoint 单日数据
type ReportTrendPoint struct {
	Date    string `json:"date"`
	Orders  int64  `json:"orders"`
	Revenue string `json:"revenue"`
}

type reportWindow struct {
	rangeKey string
	timezone string
	startAt  time.Time
	endAt    time.Time
}

// GetOverview 获取经营总览，结果短期缓存
func (s *ReportService) GetOverview(ctx context.Context, input ReportQueryInput) (*ReportOverview, error) {
	window, err := resolveReportWindow(input, s.now())
	if err != nil {
		return nil, err
	}

	cacheKey := cache.ReportKey("overview", window.startAt, window.endAt, window.timezone)
	if !input.ForceRefresh {
		var cached ReportOverview
		if hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached); cacheErr == nil && hit {
			return &cached, nil
		}
	}

	overview, err := s.repo.GetOverview(window.startAt, window.endAt)
	if err != nil {
		return nil, err
	}
	statusRows, err := s.repo.GetStatusCounts(window.startAt, window.endAt)
	if err != nil {
		return nil, err
	}
	topRows, err := s.repo.GetTopMenuItems(window.startAt, window.endAt, reportTopItemsLimit)
	if err != nil {
		return nil, err
	}
	paymentRows, err := s.repo.GetPaymentMethodBreakdown(window.startAt, window.endAt)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]int64, len(statusRows))
	for _, row := range statusRows {
		byStatus[row.Status] = row.Total
	}
	average := 0.0
	if overview.OrdersTotal > 0 {
		average = overview.Revenue / float64(overview.OrdersTotal)
	}

	result := &ReportOverview{
		Range:             window.rangeKey,
		From:              window.startAt.Format(time.RFC3339),
		To:                window.endAt.Format(time.RFC3339),
		Timezone:          window.timezone,
		Currency:          s.currency,
		OrdersTotal:       overview.OrdersTotal,
		OrdersByStatus:    byStatus,
		DeliveredOrders:   overview.DeliveredOrders,
		InFlightOrders:    overview.InFlightOrders,
		Revenue:           formatMoneyValue(overview.Revenue),
		DeliveredRevenue:  formatMoneyValue(overview.DeliveredRevenue),
		TaxCollected:      formatMoneyValue(overview.TaxCollected),
		DeliveryFees:      formatMoneyValue(overview.DeliveryFees),
		AverageOrderValue: formatMoneyValue(average),
		NewCustomers:      overview.NewCustomers,
		ActiveMenuItems:   overview.ActiveMenuItems,
		LowStockItems:     overview.LowStockItems,
		PointsIssued:      overview.PointsIssued,
		TopItems:          make([]ReportTopItem, 0, len(topRows)),
		PaymentMethods:    make([]ReportPaymentItem, 0, len(paymentRows)),
	}
	for _, row := range topRows {
		result.TopItems = append(result.TopItems, ReportTopItem{
			MenuItemID: row.ItemID,
			Name:       strings.TrimSpace(row.Name),
			Orders:     row.Orders,
			Quantity:   row.Quantity,
			Revenue:    formatMoneyValue(row.Revenue),
		})
	}
	for _, row := range paymentRows {
		result.PaymentMethods = append(result.PaymentMethods, ReportPaymentItem{
			PaymentMethod: row.PaymentMethod,
			Orders:        row.Orders,
			Revenue:       formatMoneyValue(row.Revenue),
		})
	}

	_ = cache.SetJSON(ctx, cacheKey, result, cache.ReportCacheTTL)
	return result, nil
}

// GetTrends 获取每日趋势，无订单的日期补零
func (s *ReportService) GetTrends(ctx context.Context, input ReportQueryInput) (*ReportTrends, error) {
	window, err := resolveReportWindow(input, s.now())
	if err != nil {
		return nil, err
	}

	cacheKey := cache.ReportKey("trends", window.startAt, window.endAt, window.timezone)
	if !input.ForceRefresh {
		var cached ReportTrends
		if hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached); cacheErr == nil && hit {
			return &cached, nil
		}
	}

	rows, err := s.repo.GetDailyTrends(window.startAt, window.endAt)
	if err != nil {
		return nil, err
	}
	byDay := make(map[string]repository.ReportDailyTrendRow, len(rows))
	for _, row := range rows {
		byDay[row.Day] = row
	}

	points := make([]ReportTrendPoint, 0)
	for cursor := time.Date(window.startAt.Year(), window.startAt.Month(), window.startAt.Day(), 0, 0, 0, 0, window.startAt.Location()); cursor.Before(window.endAt); cursor = cursor.AddDate(0, 0, 1) {
		day := cursor.Format("2006-01-02")
		row := byDay[day]
		points = append(points, ReportTrendPoint{
			Date:    day,
			Orders:  row.Orders,
			Revenue: formatMoneyValue(row.Revenue),
		})
	}

	result := &ReportTrends{
		Range:    window.rangeKey,
		From:     window.startAt.Format(time.RFC3339),
		To:       window.endAt.Format(time.RFC3339),
		Timezone: window.timezone,
		Points:   points,
	}
	_ = cache.SetJSON(ctx, cacheKey, result, cache.ReportCacheTTL)
	return result, nil
}

func resolveReportWindow(input ReportQueryInput, now time.Time) (reportWindow, error) {
	rangeKey := strings.ToLower(strings.TrimSpace(input.Range))
	if rangeKey == "" {
		rangeKey = "7d"
	}

	timezone := strings.TrimSpace(input.Timezone)
	location := time.Local
	if timezone != "" {
		if parsed, err := time.LoadLocation(timezone); err == nil {
			location = parsed
		} else {
			timezone = ""
		}
	}
	if timezone == "" {
		timezone = location.String()
	}

	localNow := now.In(location)
	todayStart := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, location)
	window := reportWindow{rangeKey: rangeKey, timezone: timezone}

	switch rangeKey {
	case "today":
		window.startAt = todayStart
		window.endAt = todayStart.AddDate(0, 0, 1)
	case "7d":
		window.startAt = todayStart.AddDate(0, 0, -6)
		window.endAt = todayStart.AddDate(0, 0, 1)
	case "30d":
		window.startAt = todayStart.AddDate(0, 0, -29)
		window.endAt = todayStart.AddDate(0, 0, 1)
	case "custom":
		if input.From == nil || input.To == nil {
			return reportWindow{}, ErrReportRangeInvalid
		}
		startAt := input.From.In(location)
		endAt := input.To.In(location)
		if endAt.Before(startAt) {
			return reportWindow{}, ErrReportRangeInvalid
		}
		if endAt.Sub(startAt) > time.Hour*24*reportCustomMaxDays {
			return reportWindow{}, ErrReportRangeInvalid
		}
		window.startAt = startAt
		window.endAt = endAt.Add(time.Second)
	default:
		return reportWindow{}, ErrReportRangeInvalid
	}
	return window, nil
}

func formatMoneyValue(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

// ParseReportRange 解析查询参数中的日期，支持 2006-01-02 与 RFC3339
func ParseReportRange(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
		return &t, nil
	}
	if unix, err := strconv.ParseInt(raw, 10, 64); err == nil {
		t := time.Unix(unix, 0)
		return &t, nil
	}
	return nil, ErrReportRangeInvalid
}
