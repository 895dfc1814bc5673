package repository

import (
	"github.com/rasoi-next/internal/models"

	"gorm.io/gorm"
)

// LoyaltyRepository 积分流水数据访问接口
type LoyaltyRepository interface {
	CreateTransaction(txn *models.LoyaltyTransaction) error
	ExistsForOrder(userID, orderID uint) (bool, error)
	ListTransactions(filter LoyaltyTransactionListFilter) ([]models.LoyaltyTransaction, int64, error)
	WithTx(tx *gorm.DB) LoyaltyRepository
	Transaction(fn func(tx *gorm.DB) error) error
}

// GormLoyaltyRepository GORM 实现
type GormLoyaltyRepository struct {
	db *gorm.DB
}

// NewLoyaltyRepository 创建积分仓库
func NewLoyaltyRepository(db *gorm.DB) *GormLoyaltyRepository {
	return &GormLoyaltyRepository{db: db}
}

// WithTx 绑定事务
func (r *GormLoyaltyRepository) WithTx(tx *gorm.DB) LoyaltyRepository {
	if tx == nil {
		return r
	}
	return &GormLoyaltyRepository{db: tx}
}

// Transaction 执行事务
func (r *GormLoyaltyRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// CreateTransaction 写入积分流水
func (r *GormLoyaltyRepository) CreateTransaction(txn *models.LoyaltyTransaction) error {
	return r.db.Create(txn).Error
}

// ExistsForOrder 判断订单积分是否已入账
func (r *GormLoyaltyRepository) ExistsForOrder(userID, orderID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.LoyaltyTransaction{}).
		Where("user_id = ? AND order_id = ?", userID, orderID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListTransactions 积分流水列表
func (r *GormLoyaltyRepository) ListTransactions(filter LoyaltyTransactionListFilter) ([]models.LoyaltyTransaction, int64, error) {
	query := r.db.Model(&models.LoyaltyTransaction{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	return findPage[models.LoyaltyTransaction](query, filter.Page, filter.PageSize, "id DESC")
}
