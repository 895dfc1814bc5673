package queue

import (
	"encoding/json"
	"fmt"

	"github.com/rasoi-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderProgress 订单进度自动推进任务
	TaskOrderProgress = constants.TaskOrderProgress
)

// OrderProgressPayload 订单进度任务载荷
type OrderProgressPayload struct {
	OrderID      uint   `json:"order_id"`
	TargetStatus string `json:"target_status"`
}

// NewOrderProgressTask 创建订单进度任务
func NewOrderProgressTask(payload OrderProgressPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderProgress, body), nil
}

// ParseOrderProgressPayload 解析订单进度任务载荷
func ParseOrderProgressPayload(body []byte) (OrderProgressPayload, error) {
	var payload OrderProgressPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return OrderProgressPayload{}, err
	}
	if payload.OrderID == 0 || payload.TargetStatus == "" {
		return OrderProgressPayload{}, fmt.Errorf("invalid order progress payload: %s", string(body))
	}
	return payload, nil
}

// OrderProgressTaskID 订单进度任务 ID
func OrderProgressTaskID(orderID uint, targetStatus string) string {
	return fmt.Sprintf("order-progress:%d:%s", orderID, targetStatus)
}
