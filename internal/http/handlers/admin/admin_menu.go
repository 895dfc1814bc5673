package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/rasoi-next/internal/http/handlers/shared"
	"github.com/rasoi-next/internal/http/response"
	"github.com/rasoi-next/internal/repository"
	"github.com/rasoi-next/internal/service"

	"github.com/gin-gonic/gin"
)

var categoryErrorRules = []handlershared.MappedError{
	{Target: service.ErrCategoryNotFound, Code: response.CodeNotFound, Key: "error.category_not_found"},
	{Target: service.ErrSlugExists, Code: response.CodeConflict, Key: "error.slug_exists"},
	{Target: service.ErrCategoryInUse, Code: response.CodeConflict, Key: "error.category_in_use"},
}

var menuItemErrorRules = []handlershared.MappedError{
	{Target: service.ErrMenuItemNotFound, Code: response.CodeNotFound, Key: "error.menu_item_not_found"},
	{Target: service.ErrCategoryNotFound, Code: response.CodeBadRequest, Key: "error.category_not_found"},
	{Target: service.ErrSlugExists, Code: response.CodeConflict, Key: "error.slug_exists"},
}

// GetAdminCategories 获取分类列表 (Admin)
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListAll()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req service.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Create(c.Request.Context(), req)
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, response.CodeInternal, "error.category_save_failed")
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req service.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, response.CodeInternal, "error.category_save_failed")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类，仍有菜品时拒绝
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(c.Request.Context(), id); err != nil {
		respondWithMappedError(c, err, categoryErrorRules, response.CodeInternal, "error.category_delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetAdminMenuItems 获取菜品列表 (Admin)
func (h *Handler) GetAdminMenuItems(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	var categoryID uint
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		categoryID = uint(parsed)
	}
	onlyActive, err := parseBoolQuery(c, "is_active")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	items, total, err := h.MenuService.ListAdmin(repository.MenuItemListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		Attribute:    strings.TrimSpace(c.Query("attribute")),
		Search:       strings.TrimSpace(c.Query("search")),
		OnlyActive:   onlyActive != nil && *onlyActive,
		WithCategory: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.menu_fetch_failed", err)
		return
	}
	respondPage(c, items, page, pageSize, total)
}

// GetAdminMenuItem 获取菜品详情 (Admin)
func (h *Handler) GetAdminMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	item, err := h.MenuService.GetAdmin(id)
	if err != nil {
		respondWithMappedError(c, err, menuItemErrorRules, response.CodeInternal, "error.menu_fetch_failed")
		return
	}
	response.Success(c, item)
}

// CreateMenuItem 创建菜品
func (h *Handler) CreateMenuItem(c *gin.Context) {
	var req service.MenuItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.MenuService.Create(c.Request.Context(), req)
	if err != nil {
		respondWithMappedError(c, err, menuItemErrorRules, response.CodeInternal, "error.menu_item_save_failed")
		return
	}
	response.Success(c, item)
}

// UpdateMenuItem 更新菜品
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req service.MenuItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.MenuService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondWithMappedError(c, err, menuItemErrorRules, response.CodeInternal, "error.menu_item_save_failed")
		return
	}
	response.Success(c, item)
}

// DeleteMenuItem 删除菜品
func (h *Handler) DeleteMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.MenuService.Delete(c.Request.Context(), id); err != nil {
		respondWithMappedError(c, err, menuItemErrorRules, response.CodeInternal, "error.menu_item_delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
