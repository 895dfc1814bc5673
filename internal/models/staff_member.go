package models

import (
	"time"

	"gorm.io/gorm"
)

// StaffMember 门店员工
type StaffMember struct {
	ID        uint           `gorm:"primarykey" json:"id"`                        // 主键
	Name      string         `gorm:"type:varchar(120);not null" json:"name"`      // 姓名
	Role      string         `gorm:"type:varchar(32);not null;index" json:"role"` // 岗位
	Phone     string         `gorm:"type:varchar(32)" json:"phone"`               // 电话
	Email     string         `gorm:"type:varchar(255)" json:"email"`              // 邮箱
	Shift     string         `gorm:"type:varchar(16)" json:"shift"`               // 班次
	IsActive  bool           `gorm:"not null;index" json:"is_active"`             // 是否在职
	JoinedAt  *time.Time     `json:"joined_at"`                                   // 入职日期
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                     // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                     // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                              // 软删除时间
}

// TableName 指定表名
func (StaffMember) TableName() string {
	return "staff_members"
}
