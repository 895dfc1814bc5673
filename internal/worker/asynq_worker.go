package worker

import (
	"context"
	"errors"

	"github.com/rasoi-next/internal/logger"
	"github.com/rasoi-next/internal/provider"
	"github.com/rasoi-next/internal/queue"
	"github.com/rasoi-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	advancer service.OrderAdvancer
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	if c == nil || c.OrderService == nil {
		return &Consumer{}
	}
	return &Consumer{advancer: c.OrderService}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderProgress, c.handleOrderProgress)
}

func (c *Consumer) handleOrderProgress(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_progress_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseOrderProgressPayload(task.Payload())
	if err != nil {
		logger.Warnw("worker_order_progress_payload_invalid", "error", err)
		return asynq.SkipRetry
	}
	if c.advancer == nil {
		logger.Warnw("worker_order_progress_skip_advancer_nil", "order_id", payload.OrderID)
		return nil
	}

	err = c.advancer.AdvanceScheduled(ctx, payload.OrderID, payload.TargetStatus)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrNotFound):
		logger.Debugw("worker_order_progress_skip",
			"order_id", payload.OrderID,
			"target_status", payload.TargetStatus,
			"reason", err.Error(),
		)
		return nil
	default:
		logger.Warnw("worker_order_progress_failed",
			"order_id", payload.OrderID,
			"target_status", payload.TargetStatus,
			"error", err,
		)
		return err
	}
}
