package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/rasoi-next/internal/cache"
	"github.com/rasoi-next/internal/models"
	"github.com/rasoi-next/internal/repository"
)

// MenuService 菜品服务
type MenuService struct {
	itemRepo     repository.MenuItemRepository
	categoryRepo repository.CategoryRepository
}

// NewMenuService 创建菜品服务
func NewMenuService(itemRepo repository.MenuItemRepository, categoryRepo repository.CategoryRepository) *MenuService {
	return &MenuService{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
	}
}

// MenuItemInput 创建/更新菜品输入
type MenuItemInput struct {
	CategoryID  uint     `json:"category_id" validate:"required"`
	Slug        string   `json:"slug" validate:"required,max=120"`
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	Price       string   `json:"price" validate:"required"`
	Attributes  []string `json:"attributes" validate:"max=20,dive,max=32"`
	Image       string   `json:"image" validate:"max=500"`
	IsActive    *bool    `json:"is_active"`
	IsFeatured  bool     `json:"is_featured"`
	SortOrder   int      `json:"sort_order"`
}

// MenuListPage 前台菜品分页结果
type MenuListPage struct {
	Items []models.MenuItem `json:"items"`
	Total int64             `json:"total"`
}

// ListPublic 前台菜品列表，按筛选条件缓存
func (s *MenuService) ListPublic(ctx context.Context, filter repository.MenuItemListFilter) ([]models.MenuItem, int64, error) {
	filter.OnlyActive = true
	filter.WithCategory = true
	filter.CategorySlug = normalizeSlug(filter.CategorySlug)
	filter.Attribute = strings.ToLower(strings.TrimSpace(filter.Attribute))
	filter.Search = strings.TrimSpace(filter.Search)

	key := cache.MenuKey(ctx, "items",
		filter.CategorySlug,
		filter.Attribute,
		filter.Search,
		strconv.FormatBool(filter.OnlyFeatured),
		strconv.Itoa(filter.Page),
		strconv.Itoa(filter.PageSize),
	)
	var cached MenuListPage
	if hit, err := cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached.Items, cached.Total, nil
	}

	items, total, err := s.itemRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	_ = cache.SetJSON(ctx, key, MenuListPage{Items: items, Total: total}, cache.MenuCacheTTL)
	return items, total, nil
}

// GetBySlug 前台菜品详情，下架视为不存在
func (s *MenuService) GetBySlug(slug string) (*models.MenuItem, error) {
	item, err := s.itemRepo.GetBySlug(normalizeSlug(slug), true)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}
	return item, nil
}

// ListAdmin 后台菜品列表
func (s *MenuService) ListAdmin(filter repository.MenuItemListFilter) ([]models.MenuItem, int64, error) {
	filter.WithCategory = true
	return s.itemRepo.List(filter)
}

// GetAdmin 后台菜品详情
func (s *MenuService) GetAdmin(id uint) (*models.MenuItem, error) {
	item, err := s.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}
	return item, nil
}

// Create 创建菜品
func (s *MenuService) Create(ctx context.Context, input MenuItemInput) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	if err := s.apply(item, input, 0); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Create(item); err != nil {
		return nil, err
	}
	invalidateMenuCache(ctx)
	return item, nil
}

// Update 更新菜品
func (s *MenuService) Update(ctx context.Context, id uint, input MenuItemInput) (*models.MenuItem, error) {
	item, err := s.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}
	if err := s.apply(item, input, id); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Update(item); err != nil {
		return nil, err
	}
	invalidateMenuCache(ctx)
	return item, nil
}

// Delete 删除菜品，历史订单保留快照不受影响
func (s *MenuService) Delete(ctx context.Context, id uint) error {
	item, err := s.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrMenuItemNotFound
	}
	if err := s.itemRepo.Delete(id); err != nil {
		return err
	}
	invalidateMenuCache(ctx)
	return nil
}

func (s *MenuService) apply(item *models.MenuItem, input MenuItemInput, excludeID uint) error {
	input.Slug = normalizeSlug(input.Slug)
	if err := validateStruct(input); err != nil {
		return err
	}
	price, err := models.ParseMoney(strings.TrimSpace(input.Price))
	if err != nil || price.IsNegative() {
		return &ValidationError{Fields: map[string]string{"price": "price must be a non-negative amount"}}
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	count, err := s.itemRepo.CountBySlug(input.Slug, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugExists
	}

	item.CategoryID = category.ID
	item.Slug = input.Slug
	item.Name = strings.TrimSpace(input.Name)
	item.Description = strings.TrimSpace(input.Description)
	item.Price = price
	item.Attributes = models.StringArray(input.Attributes).NormalizeSet()
	item.Image = strings.TrimSpace(input.Image)
	item.IsFeatured = input.IsFeatured
	item.SortOrder = input.SortOrder
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	} else if excludeID == 0 {
		item.IsActive = true
	}
	return nil
}
