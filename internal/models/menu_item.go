package models

import (
	"time"

	"gorm.io/gorm"
)

// MenuItem 菜品表
type MenuItem struct {
	ID          uint           `gorm:"primarykey" json:"id"`                               // 主键
	CategoryID  uint           `gorm:"index;not null" json:"category_id"`                  // 分类ID
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`                   // 唯一标识
	Name        string         `gorm:"type:varchar(200);not null" json:"name"`             // 菜品名称
	Description string         `gorm:"type:text" json:"description"`                       // 描述
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 单价
	Attributes  StringArray    `gorm:"type:json" json:"attributes"`                        // 属性（veg/spicy/bestseller 等）
	Image       string         `gorm:"type:varchar(500)" json:"image"`                     // 图片
	IsActive    bool           `gorm:"not null;index" json:"is_active"`                    // 是否上架
	IsFeatured  bool           `gorm:"not null;default:false;index" json:"is_featured"`    // 是否推荐
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                  // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                            // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 关联分类
}

// TableName 指定表名
func (MenuItem) TableName() string {
	return "menu_items"
}
