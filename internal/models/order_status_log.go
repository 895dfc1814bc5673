package models

import "time"

// OrderStatusLog 订单状态流转记录
type OrderStatusLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`                            // 主键
	OrderID    uint      `gorm:"index;not null" json:"order_id"`                  // 订单ID
	FromStatus string    `gorm:"type:varchar(32)" json:"from_status"`             // 原状态
	ToStatus   string    `gorm:"type:varchar(32);not null" json:"to_status"`      // 新状态
	Source     string    `gorm:"type:varchar(16);not null" json:"source"`         // 来源（system/auto/admin）
	OperatorID uint      `gorm:"not null;default:0" json:"operator_id,omitempty"` // 操作管理员ID
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                         // 创建时间
}

// TableName 指定表名
func (OrderStatusLog) TableName() string {
	return "order_status_logs"
}
