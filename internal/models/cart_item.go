package models

import (
	"time"
)

// CartItem 购物车项（单价与名称为加购时快照）
type CartItem struct {
	ID         uint        `gorm:"primarykey" json:"-"`                                                // 主键
	UserID     uint        `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"-"`                   // 用户ID
	ItemID     string      `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_user_item" json:"id"` // 菜品标识
	MenuItemID uint        `gorm:"index;not null;default:0" json:"menu_item_id"`                       // 菜品ID
	Name       string      `gorm:"type:varchar(200);not null" json:"name"`                             // 名称快照
	UnitPrice  Money       `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`            // 单价快照
	Quantity   int         `gorm:"not null" json:"quantity"`                                           // 数量
	Attributes StringArray `gorm:"type:json" json:"attributes"`                                        // 属性快照
	Position   int         `gorm:"not null;default:0;index" json:"-"`                                  // 加购顺序
	CreatedAt  time.Time   `gorm:"index" json:"created_at"`                                            // 创建时间
	UpdatedAt  time.Time   `gorm:"index" json:"updated_at"`                                            // 更新时间
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
