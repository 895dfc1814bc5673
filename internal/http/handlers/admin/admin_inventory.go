package admin

import (
	"strings"

	handlershared "github.com/rasoi-next/internal/http/handlers/shared"
	"github.com/rasoi-next/internal/http/response"
	"github.com/rasoi-next/internal/repository"
	"github.com/rasoi-next/internal/service"

	"github.com/gin-gonic/gin"
)

var inventoryErrorRules = []handlershared.MappedError{
	{Target: service.ErrInventoryItemNotFound, Code: response.CodeNotFound, Key: "error.inventory_item_not_found"},
	{Target: service.ErrSKUExists, Code: response.CodeConflict, Key: "error.sku_exists"},
	{Target: service.ErrStockInsufficient, Code: response.CodeBadRequest, Key: "error.stock_insufficient"},
}

// GetInventoryItems 库存列表
func (h *Handler) GetInventoryItems(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	lowStock, err := parseBoolQuery(c, "low_stock")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	items, total, err := h.InventoryService.List(repository.InventoryListFilter{
		Page:         page,
		PageSize:     pageSize,
		Search:       strings.TrimSpace(c.Query("search")),
		OnlyLowStock: lowStock != nil && *lowStock,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.inventory_fetch_failed", err)
		return
	}
	respondPage(c, items, page, pageSize, total)
}

// GetLowStockItems 低于补货阈值的物料
func (h *Handler) GetLowStockItems(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	items, total, err := h.InventoryService.ListLowStock(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.inventory_fetch_failed", err)
		return
	}
	respondPage(c, items, page, pageSize, total)
}

// GetInventoryItem 库存详情
func (h *Handler) GetInventoryItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	item, err := h.InventoryService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, inventoryErrorRules, response.CodeInternal, "error.inventory_fetch_failed")
		return
	}
	response.Success(c, item)
}

// CreateInventoryItem 新增物料
func (h *Handler) CreateInventoryItem(c *gin.Context) {
	var req service.InventoryItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.InventoryService.Create(req)
	if err != nil {
		respondWithMappedError(c, err, inventoryErrorRules, response.CodeInternal, "error.inventory_save_failed")
		return
	}
	response.Success(c, item)
}

// UpdateInventoryItem 更新物料
func (h *Handler) UpdateInventoryItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req service.InventoryItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.InventoryService.Update(id, req)
	if err != nil {
		respondWithMappedError(c, err, inventoryErrorRules, response.CodeInternal, "error.inventory_save_failed")
		return
	}
	response.Success(c, item)
}

// AdjustInventoryItem 出入库调整，库存不可为负
func (h *Handler) AdjustInventoryItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req service.AdjustInventoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.InventoryService.Adjust(id, req)
	if err != nil {
		respondWithMappedError(c, err, inventoryErrorRules, response.CodeInternal, "error.inventory_save_failed")
		return
	}
	requestLog(c).Infow("admin_inventory_adjusted",
		"inventory_item_id", item.ID,
		"sku", item.SKU,
		"delta", req.Delta,
		"operator_id", operatorID(c),
	)
	response.Success(c, item)
}

// DeleteInventoryItem 删除物料
func (h *Handler) DeleteInventoryItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.InventoryService.Delete(id); err != nil {
		respondWithMappedError(c, err, inventoryErrorRules, response.CodeInternal, "error.inventory_delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
