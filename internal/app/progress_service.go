package app

import (
	"context"

	"github.com/rasoi-next/internal/logger"
)

type progressRestorer interface {
	RestoreAutoProgress(ctx context.Context) (int, error)
}

type timerStopper interface {
	Stop()
}

// OrderProgressService 队列未启用时的进程内订单推进
// 启动时为仍在途的订单补登定时器，停止时释放全部定时器
type OrderProgressService struct {
	orders    progressRestorer
	scheduler timerStopper
}

// NewOrderProgressService 创建进程内推进服务
func NewOrderProgressService(orders progressRestorer, scheduler timerStopper) *OrderProgressService {
	return &OrderProgressService{orders: orders, scheduler: scheduler}
}

// Name 服务名称
func (s *OrderProgressService) Name() string {
	return "order_progress"
}

// Start 补登调度后等待退出
func (s *OrderProgressService) Start(ctx context.Context) error {
	if s.orders != nil {
		restored, err := s.orders.RestoreAutoProgress(ctx)
		if err != nil {
			logger.Warnw("app_restore_auto_progress_failed", "error", err)
		} else if restored > 0 {
			logger.Infow("app_restore_auto_progress", "orders", restored)
		}
	}
	<-ctx.Done()
	return nil
}

// Stop 停止全部未触发的定时器
func (s *OrderProgressService) Stop(ctx context.Context) error {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	return nil
}
