package repository

import (
	"errors"
	"strings"

	"github.com/rasoi-next/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderItem) error
	GetByID(id uint) (*models.Order, error)
	GetByOrderNo(orderNo string) (*models.Order, error)
	GetByIDAndUser(id uint, userID uint) (*models.Order, error)
	GetByOrderNoAndEmail(orderNo, email string) (*models.Order, error)
	ListByUser(filter OrderListFilter) ([]models.Order, int64, error)
	ListByEmail(email string, page, pageSize int) ([]models.Order, int64, error)
	ListAdmin(filter OrderListFilter) ([]models.Order, int64, error)
	TransitionStatus(id uint, fromStatus, toStatus string, updates map[string]interface{}) (bool, error)
	UpdateAutoProgress(id uint, enabled bool) error
	ListAutoProgressing(statuses []string) ([]models.Order, error)
	MarkPointsCredited(id uint) (bool, error)
	CreateStatusLog(log *models.OrderStatusLog) error
	ListStatusLogs(orderID uint) ([]models.OrderStatusLog, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) OrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Transaction 执行事务
func (r *GormOrderRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

func (r *GormOrderRepository) withDetail(query *gorm.DB) *gorm.DB {
	return query.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id asc")
	}).Preload("StatusLogs", func(db *gorm.DB) *gorm.DB {
		return db.Order("id asc")
	})
}

func (r *GormOrderRepository) first(query *gorm.DB) (*models.Order, error) {
	var order models.Order
	if err := r.withDetail(query).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// Create 创建订单与订单项
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	if err := r.db.Omit("Items", "StatusLogs").Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	order.Items = items
	return nil
}

// GetByID 根据 ID 获取订单
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	return r.first(r.db.Where("id = ?", id))
}

// GetByOrderNo 根据订单号获取订单
func (r *GormOrderRepository) GetByOrderNo(orderNo string) (*models.Order, error) {
	return r.first(r.db.Where("order_no = ?", strings.TrimSpace(orderNo)))
}

// GetByIDAndUser 获取用户订单详情
func (r *GormOrderRepository) GetByIDAndUser(id uint, userID uint) (*models.Order, error) {
	return r.first(r.db.Where("id = ? AND user_id = ?", id, userID))
}

// GetByOrderNoAndEmail 按订单号与联系邮箱获取订单（订单追踪）
func (r *GormOrderRepository) GetByOrderNoAndEmail(orderNo, email string) (*models.Order, error) {
	return r.first(r.db.Where("order_no = ? AND LOWER(customer_email) = ?",
		strings.TrimSpace(orderNo), strings.ToLower(strings.TrimSpace(email))))
}

// ListByUser 获取用户订单列表
func (r *GormOrderRepository) ListByUser(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Where("user_id = ?", filter.UserID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no LIKE ?", "%"+filter.OrderNo+"%")
	}
	return findPage[models.Order](query, filter.Page, filter.PageSize, "id desc", "Items")
}

// ListByEmail 按联系邮箱获取订单列表
func (r *GormOrderRepository) ListByEmail(email string, page, pageSize int) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).
		Where("LOWER(customer_email) = ?", strings.ToLower(strings.TrimSpace(email)))
	return findPage[models.Order](query, page, pageSize, "id desc", "Items")
}

// ListAdmin 管理端订单列表
func (r *GormOrderRepository) ListAdmin(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no = ?", filter.OrderNo)
	}
	if filter.CustomerEmail != "" {
		query = query.Where("LOWER(customer_email) = ?", strings.ToLower(filter.CustomerEmail))
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}
	return findPage[models.Order](query, filter.Page, filter.PageSize, "id desc", "Items")
}

// TransitionStatus 以当前状态为条件更新订单状态，返回是否命中
func (r *GormOrderRepository) TransitionStatus(id uint, fromStatus, toStatus string, updates map[string]interface{}) (bool, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = toStatus
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateAutoProgress 更新自动推进开关
func (r *GormOrderRepository) UpdateAutoProgress(id uint, enabled bool) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).Update("auto_progress", enabled).Error
}

// ListAutoProgressing 获取仍处于自动推进中的订单
func (r *GormOrderRepository) ListAutoProgressing(statuses []string) ([]models.Order, error) {
	var orders []models.Order
	if len(statuses) == 0 {
		return orders, nil
	}
	if err := r.db.Where("auto_progress = ? AND status IN ?", true, statuses).
		Order("id asc").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// MarkPointsCredited 标记积分已入账，返回是否为首次标记
func (r *GormOrderRepository) MarkPointsCredited(id uint) (bool, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND points_credited = ?", id, false).
		Update("points_credited", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CreateStatusLog 写入状态流转记录
func (r *GormOrderRepository) CreateStatusLog(log *models.OrderStatusLog) error {
	return r.db.Create(log).Error
}

// ListStatusLogs 获取订单状态流转记录
func (r *GormOrderRepository) ListStatusLogs(orderID uint) ([]models.OrderStatusLog, error) {
	var logs []models.OrderStatusLog
	if err := r.db.Where("order_id = ?", orderID).Order("id asc").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
