package models

import (
	"time"
)

// OrderItem 订单项表（下单时购物车快照）
type OrderItem struct {
	ID         uint        `gorm:"primarykey" json:"id"`                                     // 主键
	OrderID    uint        `gorm:"index;not null" json:"order_id"`                           // 订单ID
	ItemID     string      `gorm:"type:varchar(64);not null" json:"item_id"`                 // 菜品标识
	MenuItemID uint        `gorm:"index;not null;default:0" json:"menu_item_id"`             // 菜品ID
	Name       string      `gorm:"type:varchar(200);not null" json:"name"`                   // 名称快照
	Attributes StringArray `gorm:"type:json" json:"attributes"`                              // 属性快照
	UnitPrice  Money       `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`  // 单价
	Quantity   int         `gorm:"not null" json:"quantity"`                                 // 数量
	TotalPrice Money       `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 小计
	CreatedAt  time.Time   `gorm:"index" json:"created_at"`                                  // 创建时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
