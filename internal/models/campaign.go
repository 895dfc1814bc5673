package models

import (
	"time"

	"gorm.io/gorm"
)

// Campaign 营销活动（仅做展示与运营记录，不参与计价）
type Campaign struct {
	ID          uint           `gorm:"primarykey" json:"id"`                               // 主键
	Name        string         `gorm:"type:varchar(200);not null" json:"name"`             // 活动名称
	Code        string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"code"`  // 活动码
	Description string         `gorm:"type:text" json:"description"`                       // 活动描述
	Type        string         `gorm:"type:varchar(16);not null" json:"type"`              // 优惠类型（percent/fixed）
	Value       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"value"` // 优惠值
	StartsAt    *time.Time     `gorm:"index" json:"starts_at"`                             // 开始时间
	EndsAt      *time.Time     `gorm:"index" json:"ends_at"`                               // 结束时间
	IsActive    bool           `gorm:"not null;index" json:"is_active"`                    // 是否启用
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                            // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间
}

// TableName 指定表名
func (Campaign) TableName() string {
	return "campaigns"
}

// IsRunning 判断活动在指定时间是否生效
func (c Campaign) IsRunning(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.StartsAt != nil && now.Before(*c.StartsAt) {
		return false
	}
	if c.EndsAt != nil && !now.Before(*c.EndsAt) {
		return false
	}
	return true
}
