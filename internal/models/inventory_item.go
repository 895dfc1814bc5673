package models

import (
	"time"

	"gorm.io/gorm"
)

// InventoryItem 后厨库存物料
type InventoryItem struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                       // 主键
	Name         string         `gorm:"type:varchar(200);not null" json:"name"`                     // 物料名称
	SKU          string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"sku"`           // 物料编码
	Unit         string         `gorm:"type:varchar(16);not null" json:"unit"`                      // 计量单位（kg/l/pcs）
	Quantity     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"quantity"`      // 当前库存
	ReorderLevel Money          `gorm:"type:decimal(20,2);not null;default:0" json:"reorder_level"` // 补货阈值
	Supplier     string         `gorm:"type:varchar(200)" json:"supplier"`                          // 供应商
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`                                    // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间
}

// TableName 指定表名
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// IsLowStock 是否低于补货阈值
func (i InventoryItem) IsLowStock() bool {
	return i.Quantity.Decimal.LessThanOrEqual(i.ReorderLevel.Decimal)
}
