package service

import (
	"strings"

	"github.com/rasoi-next/internal/logger"
	"github.com/rasoi-next/internal/models"
	"github.com/rasoi-next/internal/repository"
)

// InventoryService 后厨库存服务
type InventoryService struct {
	repo repository.InventoryRepository
}

// NewInventoryService 创建库存服务
func NewInventoryService(repo repository.InventoryRepository) *InventoryService {
	return &InventoryService{repo: repo}
}

// InventoryItemInput 创建/更新库存物料输入
type InventoryItemInput struct {
	Name         string `json:"name" validate:"required,max=200"`
	SKU          string `json:"sku" validate:"required,max=64"`
	Unit         string `json:"unit" validate:"required,max=16"`
	Quantity     string `json:"quantity" validate:"required"`
	ReorderLevel string `json:"reorder_level"`
	Supplier     string `json:"supplier" validate:"max=200"`
}

// AdjustInventoryInput 调整库存输入，正数入库、负数出库
type AdjustInventoryInput struct {
	Delta  string `json:"delta" validate:"required"`
	Reason string `json:"reason" validate:"max=255"`
}

// List 库存列表
func (s *InventoryService) List(filter repository.InventoryListFilter) ([]models.InventoryItem, int64, error) {
	return s.repo.List(filter)
}

// ListLowStock 低库存列表
func (s *InventoryService) ListLowStock(page, pageSize int) ([]models.InventoryItem, int64, error) {
	return s.repo.List(repository.InventoryListFilter{Page: page, PageSize: pageSize, OnlyLowStock: true})
}

// Get 库存详情
func (s *InventoryService) Get(id uint) (*models.InventoryItem, error) {
	item, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrInventoryItemNotFound
	}
	return item, nil
}

// Create 创建库存物料
func (s *InventoryService) Create(input InventoryItemInput) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	if err := s.apply(item, input, 0); err != nil {
		return nil, err
	}
	if err := s.repo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update 更新库存物料
func (s *InventoryService) Update(id uint, input InventoryItemInput) (*models.InventoryItem, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(item, input, id); err != nil {
		return nil, err
	}
	if err := s.repo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete 删除库存物料
func (s *InventoryService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// Adjust 调整库存数量，结果不得为负
func (s *InventoryService) Adjust(id uint, input AdjustInventoryInput) (*models.InventoryItem, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	delta, err := models.ParseMoney(strings.TrimSpace(input.Delta))
	if err != nil || delta.IsZero() {
		return nil, &ValidationError{Fields: map[string]string{"delta": "delta must be a non-zero amount"}}
	}
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	next := item.Quantity.Add(delta)
	if next.IsNegative() {
		return nil, ErrStockInsufficient
	}
	item.Quantity = next
	if err := s.repo.Update(item); err != nil {
		return nil, err
	}
	if item.IsLowStock() {
		logger.Warnw("inventory_low_stock",
			"inventory_id", item.ID,
			"sku", item.SKU,
			"quantity", item.Quantity.String(),
			"reorder_level", item.ReorderLevel.String(),
		)
	}
	return item, nil
}

func (s *InventoryService) apply(item *models.InventoryItem, input InventoryItemInput, excludeID uint) error {
	input.SKU = strings.ToUpper(strings.TrimSpace(input.SKU))
	if err := validateStruct(input); err != nil {
		return err
	}
	quantity, err := models.ParseMoney(strings.TrimSpace(input.Quantity))
	if err != nil || quantity.IsNegative() {
		return &ValidationError{Fields: map[string]string{"quantity": "quantity must be a non-negative amount"}}
	}
	reorder := models.Money{}
	if raw := strings.TrimSpace(input.ReorderLevel); raw != "" {
		reorder, err = models.ParseMoney(raw)
		if err != nil || reorder.IsNegative() {
			return &ValidationError{Fields: map[string]string{"reorder_level": "reorder_level must be a non-negative amount"}}
		}
	}
	count, err := s.repo.CountBySKU(input.SKU, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSKUExists
	}

	item.Name = strings.TrimSpace(input.Name)
	item.SKU = input.SKU
	item.Unit = strings.ToLower(strings.TrimSpace(input.Unit))
	item.Quantity = quantity
	item.ReorderLevel = reorder
	item.Supplier = strings.TrimSpace(input.Supplier)
	return nil
}
