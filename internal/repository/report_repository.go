package repository

import (
	"fmt"
	"time"

	"github.com/rasoi-next/internal/constants"
	"github.com/rasoi-next/internal/models"

	"gorm.io/gorm"
)

// ReportRepository 经营报表聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type ReportRepository interface {
	GetOverview(startAt, endAt time.Time) (ReportOverviewRow, error)
	GetStatusCounts(startAt, endAt time.Time) ([]ReportStatusCountRow, error)
	GetDailyTrends(startAt, endAt time.Time) ([]ReportDailyTrendRow, error)
	GetTopMenuItems(startAt, endAt time.Time, limit int) ([]ReportMenuItemRankingRow, error)
	GetPaymentMethodBreakdown(startAt, endAt time.Time) ([]ReportPaymentMethodRow, error)
}

// ReportOverviewRow 报表总览原始统计结果
type ReportOverviewRow struct {
	OrdersTotal      int64
	DeliveredOrders  int64
	InFlightOrders   int64
	Revenue          float64
	DeliveredRevenue float64
	TaxCollected     float64
	DeliveryFees     float64
	NewCustomers     int64
	ActiveMenuItems  int64
	LowStockItems    int64
	PointsIssued     int64
}

// ReportStatusCountRow 订单状态分布
type ReportStatusCountRow struct {
	Status string
	Total  int64
}

// ReportDailyTrendRow 每日趋势
type ReportDailyTrendRow struct {
	Day     string
	Orders  int64
	Revenue float64
}

// ReportMenuItemRankingRow 菜品销量排行原始行
type ReportMenuItemRankingRow struct {
	ItemID   string
	Name     string
	Orders   int64
	Quantity int64
	Revenue  float64
}

// ReportPaymentMethodRow 支付方式分布
type ReportPaymentMethodRow struct {
	PaymentMethod string
	Orders        int64
	Revenue       float64
}

// GormReportRepository GORM 报表聚合实现
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository 创建报表仓库
func NewReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// revenueOrderStatuses 计入营收的订单状态（已确认及之后）
func revenueOrderStatuses() []string {
	return []string{
		constants.OrderStatusConfirmed,
		constants.OrderStatusPreparing,
		constants.OrderStatusReady,
		constants.OrderStatusOutForDelivery,
		constants.OrderStatusDelivered,
	}
}

func inFlightOrderStatuses() []string {
	return []string{
		constants.OrderStatusConfirmed,
		constants.OrderStatusPreparing,
		constants.OrderStatusReady,
		constants.OrderStatusOutForDelivery,
	}
}

func (r *GormReportRepository) orderBase(startAt, endAt time.Time) *gorm.DB {
	return r.db.Model(&models.Order{}).Where("created_at >= ? AND created_at < ?", startAt, endAt)
}

// GetOverview 获取总览统计
func (r *GormReportRepository) GetOverview(startAt, endAt time.Time) (ReportOverviewRow, error) {
	result := ReportOverviewRow{}

	if err := r.orderBase(startAt, endAt).Count(&result.OrdersTotal).Error; err != nil {
		return result, err
	}
	if err := r.orderBase(startAt, endAt).
		Where("status = ?", constants.OrderStatusDelivered).
		Count(&result.DeliveredOrders).Error; err != nil {
		return result, err
	}
	if err := r.orderBase(startAt, endAt).
		Where("status IN ?", inFlightOrderStatuses()).
		Count(&result.InFlightOrders).Error; err != nil {
		return result, err
	}

	type sumRow struct {
		Revenue      float64
		TaxCollected float64
		DeliveryFees float64
	}
	var sums sumRow
	if err := r.orderBase(startAt, endAt).
		Where("status IN ?", revenueOrderStatuses()).
		Select("COALESCE(SUM(total_amount), 0) as revenue, COALESCE(SUM(tax_amount), 0) as tax_collected, COALESCE(SUM(delivery_fee), 0) as delivery_fees").
		Scan(&sums).Error; err != nil {
		return result, err
	}
	result.Revenue = sums.Revenue
	result.TaxCollected = sums.TaxCollected
	result.DeliveryFees = sums.DeliveryFees

	if err := r.db.Model(&models.Order{}).
		Where("delivered_at IS NOT NULL AND delivered_at >= ? AND delivered_at < ?", startAt, endAt).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&result.DeliveredRevenue).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.User{}).
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Count(&result.NewCustomers).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.MenuItem{}).
		Where("is_active = ?", true).
		Count(&result.ActiveMenuItems).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.InventoryItem{}).
		Where("quantity <= reorder_level").
		Count(&result.LowStockItems).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.LoyaltyTransaction{}).
		Where("created_at >= ? AND created_at < ? AND type = ?", startAt, endAt, constants.LoyaltyTxnTypeOrderEarn).
		Select("COALESCE(SUM(points), 0)").
		Scan(&result.PointsIssued).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetStatusCounts 获取订单状态分布
func (r *GormReportRepository) GetStatusCounts(startAt, endAt time.Time) ([]ReportStatusCountRow, error) {
	rows := make([]ReportStatusCountRow, 0)
	if err := r.orderBase(startAt, endAt).
		Select("status, COUNT(*) as total").
		Group("status").
		Order("status asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetDailyTrends 获取每日订单与营收趋势
func (r *GormReportRepository) GetDailyTrends(startAt, endAt time.Time) ([]ReportDailyTrendRow, error) {
	dayExpr := "CAST(date(created_at) AS TEXT)"
	rows := make([]ReportDailyTrendRow, 0)
	if err := r.orderBase(startAt, endAt).
		Select(fmt.Sprintf(`%s as day, COUNT(*) as orders,
			COALESCE(SUM(CASE WHEN status IN ? THEN total_amount ELSE 0 END), 0) as revenue`, dayExpr), revenueOrderStatuses()).
		Group(dayExpr).
		Order("day asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetTopMenuItems 获取菜品销量排行
func (r *GormReportRepository) GetTopMenuItems(startAt, endAt time.Time, limit int) ([]ReportMenuItemRankingRow, error) {
	if limit <= 0 {
		limit = 5
	}
	rows := make([]ReportMenuItemRankingRow, 0)
	if err := r.db.Model(&models.OrderItem{}).
		Select(`
			order_items.item_id as item_id,
			MAX(order_items.name) as name,
			COUNT(DISTINCT order_items.order_id) as orders,
			COALESCE(SUM(order_items.quantity), 0) as quantity,
			COALESCE(SUM(order_items.total_price), 0) as revenue
		`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ? AND orders.created_at < ? AND orders.status IN ?", startAt, endAt, revenueOrderStatuses()).
		Where("orders.deleted_at IS NULL").
		Group("order_items.item_id").
		Order("quantity DESC, revenue DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetPaymentMethodBreakdown 获取支付方式分布
func (r *GormReportRepository) GetPaymentMethodBreakdown(startAt, endAt time.Time) ([]ReportPaymentMethodRow, error) {
	rows := make([]ReportPaymentMethodRow, 0)
	if err := r.orderBase(startAt, endAt).
		Where("status IN ?", revenueOrderStatuses()).
		Select("payment_method, COUNT(*) as orders, COALESCE(SUM(total_amount), 0) as revenue").
		Group("payment_method").
		Order("orders DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
