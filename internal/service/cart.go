package service

import (
	"fmt"
	"strings"

	"github.com/rasoi-next/internal/models"

	"github.com/shopspring/decimal"
)

// MaxLineQuantity 单行数量硬上限，防止累加溢出
const MaxLineQuantity = 1000000

// Cart 购物车值对象，按加入顺序保存，同一 ID 只出现一次
type Cart struct {
	items []models.CartItem
	limit int
}

// NewCart 由已有的购物车行构建，重复 ID 会被合并
func NewCart(items ...models.CartItem) *Cart {
	cart := &Cart{}
	for _, item := range items {
		if idx := cart.indexOf(item.ItemID); idx >= 0 {
			cart.items[idx].Quantity += item.Quantity
			continue
		}
		cart.items = append(cart.items, item)
	}
	return cart
}

func (c *Cart) indexOf(itemID string) int {
	for idx := range c.items {
		if c.items[idx].ItemID == itemID {
			return idx
		}
	}
	return -1
}

// SetLimit 设置单行数量上限，0 表示仅受 MaxLineQuantity 约束
func (c *Cart) SetLimit(limit int) {
	if limit < 0 || limit > MaxLineQuantity {
		limit = 0
	}
	c.limit = limit
}

func (c *Cart) maxQuantity() int {
	if c.limit > 0 {
		return c.limit
	}
	return MaxLineQuantity
}

// Items 返回购物车行的副本
func (c *Cart) Items() []models.CartItem {
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Get 按 ID 查找购物车行
func (c *Cart) Get(itemID string) (models.CartItem, bool) {
	if idx := c.indexOf(itemID); idx >= 0 {
		return c.items[idx], true
	}
	return models.CartItem{}, false
}

// AddItem 已存在则累加数量，否则追加到末尾
// 新增行数量为 0 时按默认数量 1 处理；已存在行加 0 不变
func (c *Cart) AddItem(item models.CartItem, qty int) (models.CartItem, error) {
	item.ItemID = strings.TrimSpace(item.ItemID)
	if item.ItemID == "" {
		return models.CartItem{}, fmt.Errorf("%w: item id is required", ErrValidation)
	}
	if item.UnitPrice.IsNegative() {
		return models.CartItem{}, fmt.Errorf("%w: unit price must not be negative", ErrValidation)
	}
	if qty < 0 {
		return models.CartItem{}, ErrInvalidQuantity
	}
	if idx := c.indexOf(item.ItemID); idx >= 0 {
		if qty > c.maxQuantity()-c.items[idx].Quantity {
			return models.CartItem{}, ErrQuantityTooLarge
		}
		c.items[idx].Quantity += qty
		return c.items[idx], nil
	}
	if qty == 0 {
		qty = 1
	}
	if qty > c.maxQuantity() {
		return models.CartItem{}, ErrQuantityTooLarge
	}
	item.Quantity = qty
	item.Position = c.nextPosition()
	c.items = append(c.items, item)
	return item, nil
}

func (c *Cart) nextPosition() int {
	position := 0
	for _, item := range c.items {
		if item.Position >= position {
			position = item.Position + 1
		}
	}
	return position
}

// UpdateQuantity 设置数量，0 表示移除，负数拒绝
func (c *Cart) UpdateQuantity(itemID string, qty int) (models.CartItem, error) {
	if qty < 0 {
		return models.CartItem{}, ErrInvalidQuantity
	}
	if qty > c.maxQuantity() {
		return models.CartItem{}, ErrQuantityTooLarge
	}
	idx := c.indexOf(itemID)
	if idx < 0 {
		return models.CartItem{}, ErrCartItemNotFound
	}
	if qty == 0 {
		removed := c.items[idx]
		c.items = append(c.items[:idx], c.items[idx+1:]...)
		removed.Quantity = 0
		return removed, nil
	}
	c.items[idx].Quantity = qty
	return c.items[idx], nil
}

// Refresh 用新的快照覆盖名称、单价与属性，数量与顺序保持不变
func (c *Cart) Refresh(item models.CartItem) bool {
	idx := c.indexOf(item.ItemID)
	if idx < 0 {
		return false
	}
	c.items[idx].MenuItemID = item.MenuItemID
	c.items[idx].Name = item.Name
	c.items[idx].UnitPrice = item.UnitPrice
	c.items[idx].Attributes = item.Attributes
	return true
}

// RemoveItem 删除购物车行，不存在时忽略
func (c *Cart) RemoveItem(itemID string) bool {
	idx := c.indexOf(itemID)
	if idx < 0 {
		return false
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	return true
}

// Clear 清空
func (c *Cart) Clear() {
	c.items = nil
}

// Subtotal Σ(单价 × 数量)
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return round2(total)
}

// ItemCount 商品总件数
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// IsEmpty 是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}
