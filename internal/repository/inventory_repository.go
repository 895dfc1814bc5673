package repository

import (
	"errors"
	"strings"

	"github.com/rasoi-next/internal/models"

	"gorm.io/gorm"
)

// InventoryRepository 库存物料数据访问接口
type InventoryRepository interface {
	List(filter InventoryListFilter) ([]models.InventoryItem, int64, error)
	GetByID(id uint) (*models.InventoryItem, error)
	Create(item *models.InventoryItem) error
	Update(item *models.InventoryItem) error
	Delete(id uint) error
	CountBySKU(sku string, excludeID uint) (int64, error)
	CountLowStock() (int64, error)
}

// GormInventoryRepository GORM 实现
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository 创建库存仓库
func NewInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// List 库存物料列表
func (r *GormInventoryRepository) List(filter InventoryListFilter) ([]models.InventoryItem, int64, error) {
	query := r.db.Model(&models.InventoryItem{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"name", "sku", "supplier"})
		query = query.Where(condition, repeatLikeArgs("%"+search+"%", argCount)...)
	}
	if filter.OnlyLowStock {
		query = query.Where("quantity <= reorder_level")
	}
	return findPage[models.InventoryItem](query, filter.Page, filter.PageSize, "name ASC, id ASC")
}

// GetByID 根据 ID 获取物料
func (r *GormInventoryRepository) GetByID(id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Create 创建物料
func (r *GormInventoryRepository) Create(item *models.InventoryItem) error {
	return r.db.Create(item).Error
}

// Update 更新物料
func (r *GormInventoryRepository) Update(item *models.InventoryItem) error {
	return r.db.Save(item).Error
}

// Delete 删除物料
func (r *GormInventoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.InventoryItem{}, id).Error
}

// CountBySKU 统计编码数量
func (r *GormInventoryRepository) CountBySKU(sku string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.InventoryItem{}).Where("sku = ?", sku)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountLowStock 统计低库存物料数量
func (r *GormInventoryRepository) CountLowStock() (int64, error) {
	var count int64
	if err := r.db.Model(&models.InventoryItem{}).Where("quantity <= reorder_level").Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
