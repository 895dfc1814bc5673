package service

import (
	"context"
	"strings"

	"github.com/rasoi-next/internal/cache"
	"github.com/rasoi-next/internal/logger"
	"github.com/rasoi-next/internal/models"
	"github.com/rasoi-next/internal/repository"
)

// CategoryService 菜单分类服务
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	Slug      string `json:"slug" validate:"required,max=80"`
	Name      string `json:"name" validate:"required,max=120"`
	Icon      string `json:"icon" validate:"max=500"`
	SortOrder int    `json:"sort_order"`
	IsActive  *bool  `json:"is_active"`
}

// ListActive 前台分类列表
func (s *CategoryService) ListActive(ctx context.Context) ([]models.Category, error) {
	key := cache.MenuKey(ctx, "categories")
	var cached []models.Category
	if hit, err := cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}
	categories, err := s.repo.List(true)
	if err != nil {
		return nil, err
	}
	_ = cache.SetJSON(ctx, key, categories, cache.MenuCacheTTL)
	return categories, nil
}

// ListAll 后台分类列表
func (s *CategoryService) ListAll() ([]models.Category, error) {
	return s.repo.List(false)
}

// Create 创建分类
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*models.Category, error) {
	input.Slug = normalizeSlug(input.Slug)
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	count, err := s.repo.CountBySlug(input.Slug, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	category := models.Category{
		Slug:      input.Slug,
		Name:      strings.TrimSpace(input.Name),
		Icon:      strings.TrimSpace(input.Icon),
		SortOrder: input.SortOrder,
		IsActive:  input.IsActive == nil || *input.IsActive,
	}
	if err := s.repo.Create(&category); err != nil {
		return nil, err
	}
	invalidateMenuCache(ctx)
	return &category, nil
}

// Update 更新分类
func (s *CategoryService) Update(ctx context.Context, id uint, input CategoryInput) (*models.Category, error) {
	input.Slug = normalizeSlug(input.Slug)
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	count, err := s.repo.CountBySlug(input.Slug, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	category.Slug = input.Slug
	category.Name = strings.TrimSpace(input.Name)
	category.Icon = strings.TrimSpace(input.Icon)
	category.SortOrder = input.SortOrder
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	invalidateMenuCache(ctx)
	return category, nil
}

// Delete 删除分类，仍有菜品时拒绝
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	count, err := s.repo.CountMenuItems(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	invalidateMenuCache(ctx)
	return nil
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

func invalidateMenuCache(ctx context.Context) {
	if err := cache.InvalidateMenu(ctx); err != nil {
		logger.Warnw("menu_cache_invalidate_failed", "error", err)
	}
}
