package models

import "time"

// LoyaltyTransaction 积分流水
// (user_id, order_id) 唯一，保证同一订单只入账一次；手工调整的 order_id 为 NULL。
type LoyaltyTransaction struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                         // 主键
	UserID       uint      `gorm:"not null;uniqueIndex:idx_loyalty_user_order" json:"user_id"`   // 用户ID
	OrderID      *uint     `gorm:"uniqueIndex:idx_loyalty_user_order" json:"order_id,omitempty"` // 关联订单
	Type         string    `gorm:"type:varchar(32);not null;index" json:"type"`                  // 流水类型
	Points       int64     `gorm:"not null" json:"points"`                                       // 变动积分（可为负）
	BalanceAfter int64     `gorm:"not null" json:"balance_after"`                                // 变动后余额
	Remark       string    `gorm:"type:varchar(255)" json:"remark,omitempty"`                    // 备注
	OperatorID   uint      `gorm:"not null;default:0" json:"operator_id,omitempty"`              // 操作管理员ID
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                                      // 创建时间
}

// TableName 指定表名
func (LoyaltyTransaction) TableName() string {
	return "loyalty_transactions"
}
