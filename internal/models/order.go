package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID                  uint           `gorm:"primarykey" json:"id"`                                      // 主键
	OrderNo             string         `gorm:"uniqueIndex;not null" json:"order_no"`                      // 订单编号
	UserID              uint           `gorm:"index;not null;default:0" json:"user_id,omitempty"`         // 用户ID（游客订单为 0）
	Status              string         `gorm:"index;not null" json:"status"`                              // 订单状态
	PaymentMethod       string         `gorm:"type:varchar(32);not null" json:"payment_method"`           // 支付方式
	Currency            string         `gorm:"type:varchar(8);not null" json:"currency"`                  // 币种
	Subtotal            Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`     // 小计
	DeliveryFee         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"delivery_fee"` // 配送费
	TaxAmount           Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tax"`          // 税费
	TotalAmount         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total"`        // 应付总额
	PointsEarned        int64          `gorm:"not null;default:0" json:"points_earned"`                   // 完成后可得积分
	PointsCredited      bool           `gorm:"not null;default:false" json:"points_credited"`             // 积分是否已入账
	CustomerName        string         `gorm:"type:varchar(120);not null" json:"customer_name"`           // 联系人
	CustomerEmail       string         `gorm:"type:varchar(255);index" json:"customer_email"`             // 联系邮箱
	CustomerPhone       string         `gorm:"type:varchar(32);not null" json:"customer_phone"`           // 联系电话
	DeliveryAddress     string         `gorm:"type:text;not null" json:"delivery_address"`                // 配送地址
	DeliveryNotes       string         `gorm:"type:text" json:"delivery_notes,omitempty"`                 // 配送备注
	AutoProgress        bool           `gorm:"not null" json:"auto_progress"`                             // 是否自动推进后厨进度
	EstimatedDeliveryAt time.Time      `gorm:"index" json:"estimated_delivery_at"`                        // 预计送达时间
	ConfirmedAt         *time.Time     `json:"confirmed_at"`                                              // 确认时间
	PreparingAt         *time.Time     `json:"preparing_at"`                                              // 开始制作时间
	ReadyAt             *time.Time     `json:"ready_at"`                                                  // 出餐时间
	OutForDeliveryAt    *time.Time     `json:"out_for_delivery_at"`                                       // 配送出发时间
	DeliveredAt         *time.Time     `gorm:"index" json:"delivered_at"`                                 // 送达时间
	CreatedAt           time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt           time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Items      []OrderItem      `gorm:"foreignKey:OrderID" json:"items,omitempty"`       // 订单项
	StatusLogs []OrderStatusLog `gorm:"foreignKey:OrderID" json:"status_logs,omitempty"` // 状态流转记录
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
