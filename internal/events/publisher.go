package events

import (
	"context"
	"time"

	"github.com/rasoi-next/internal/config"
)

// OrderEvent 订单领域事件
type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    uint      `json:"order_id"`
	OrderNo    string    `json:"order_no"`
	UserID     uint      `json:"user_id,omitempty"`
	Status     string    `json:"status"`
	FromStatus string    `json:"from_status,omitempty"`
	Source     string    `json:"source,omitempty"`
	Total      string    `json:"total,omitempty"`
	Currency   string    `json:"currency,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher 订单事件发布器
type Publisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
	Close() error
}

// NoopPublisher 未启用事件时使用
type NoopPublisher struct{}

// PublishOrderEvent 丢弃事件
func (NoopPublisher) PublishOrderEvent(ctx context.Context, event OrderEvent) error {
	return nil
}

// Close 无需释放资源
func (NoopPublisher) Close() error {
	return nil
}

// NewPublisher 按配置创建发布器，未启用时返回 NoopPublisher
func NewPublisher(cfg config.EventsConfig) (Publisher, error) {
	if !cfg.Enabled || len(cfg.Brokers) == 0 {
		return NoopPublisher{}, nil
	}
	return NewKafkaPublisher(cfg)
}
