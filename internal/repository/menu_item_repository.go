package repository

import (
	"errors"
	"strings"

	"github.com/rasoi-next/internal/models"

	"gorm.io/gorm"
)

// MenuItemRepository 菜品数据访问接口
type MenuItemRepository interface {
	List(filter MenuItemListFilter) ([]models.MenuItem, int64, error)
	GetByID(id uint) (*models.MenuItem, error)
	GetBySlug(slug string, onlyActive bool) (*models.MenuItem, error)
	ListByIDs(ids []uint) ([]models.MenuItem, error)
	Create(item *models.MenuItem) error
	Update(item *models.MenuItem) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID uint) (int64, error)
}

// GormMenuItemRepository GORM 实现
type GormMenuItemRepository struct {
	db *gorm.DB
}

// NewMenuItemRepository 创建菜品仓库
func NewMenuItemRepository(db *gorm.DB) *GormMenuItemRepository {
	return &GormMenuItemRepository{db: db}
}

// List 菜品列表
func (r *GormMenuItemRepository) List(filter MenuItemListFilter) ([]models.MenuItem, int64, error) {
	query := r.db.Model(&models.MenuItem{})
	if filter.OnlyActive {
		query = query.Where("menu_items.is_active = ?", true)
	}
	if filter.OnlyFeatured {
		query = query.Where("menu_items.is_featured = ?", true)
	}
	if filter.CategoryID != 0 {
		query = query.Where("menu_items.category_id = ?", filter.CategoryID)
	}
	if slug := strings.TrimSpace(filter.CategorySlug); slug != "" {
		query = query.Where("menu_items.category_id IN (?)",
			r.db.Model(&models.Category{}).Select("id").Where("slug = ?", slug))
	}
	if attr := strings.TrimSpace(filter.Attribute); attr != "" {
		condition, arg := jsonArrayContainsCondition(r.db, "menu_items", "attributes", attr)
		query = query.Where(condition, arg)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"menu_items.name", "menu_items.description", "menu_items.slug"})
		query = query.Where(condition, repeatLikeArgs("%"+search+"%", argCount)...)
	}
	var preloads []string
	if filter.WithCategory {
		preloads = append(preloads, "Category")
	}
	return findPage[models.MenuItem](query, filter.Page, filter.PageSize, "menu_items.sort_order DESC, menu_items.id ASC", preloads...)
}

// GetByID 根据 ID 获取菜品
func (r *GormMenuItemRepository) GetByID(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.Preload("Category").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetBySlug 根据 slug 获取菜品
func (r *GormMenuItemRepository) GetBySlug(slug string, onlyActive bool) (*models.MenuItem, error) {
	var item models.MenuItem
	query := r.db.Preload("Category").Where("slug = ?", slug)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ListByIDs 批量获取菜品
func (r *GormMenuItemRepository) ListByIDs(ids []uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if len(ids) == 0 {
		return items, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Create 创建菜品
func (r *GormMenuItemRepository) Create(item *models.MenuItem) error {
	return r.db.Create(item).Error
}

// Update 更新菜品
func (r *GormMenuItemRepository) Update(item *models.MenuItem) error {
	return r.db.Omit("Category").Save(item).Error
}

// Delete 删除菜品
func (r *GormMenuItemRepository) Delete(id uint) error {
	return r.db.Delete(&models.MenuItem{}, id).Error
}

// CountBySlug 统计 slug 数量
func (r *GormMenuItemRepository) CountBySlug(slug string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.MenuItem{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
