package service

import (
	"context"
	"sync"
	"time"

	"github.com/rasoi-next/internal/config"
	"github.com/rasoi-next/internal/constants"
	"github.com/rasoi-next/internal/logger"
	"github.com/rasoi-next/internal/queue"
)

// OrderProgressStep 自动推进的一步：在 Delay 后推进到 Status
type OrderProgressStep struct {
	Status string
	Delay  time.Duration
}

// OrderProgressScheduler 订单进度调度器，按订单维度可取消
type OrderProgressScheduler interface {
	Schedule(ctx context.Context, orderID uint, steps []OrderProgressStep) error
	Cancel(ctx context.Context, orderID uint) error
}

// OrderAdvancer 调度到期后的回调方
type OrderAdvancer interface {
	AdvanceScheduled(ctx context.Context, orderID uint, targetStatus string) error
}

// ProgressSteps 根据配置生成自动推进计划
func ProgressSteps(cfg config.OrderConfig) []OrderProgressStep {
	minutes := func(value, fallback int) time.Duration {
		if value <= 0 {
			value = fallback
		}
		return time.Duration(value) * time.Minute
	}
	return []OrderProgressStep{
		{Status: constants.OrderStatusPreparing, Delay: minutes(cfg.PreparingAfterMinutes, 5)},
		{Status: constants.OrderStatusReady, Delay: minutes(cfg.ReadyAfterMinutes, 15)},
		{Status: constants.OrderStatusOutForDelivery, Delay: minutes(cfg.OutForDeliveryMinutes, 20)},
	}
}

// autoProgressStatuses 可被调度器推进到的状态
func autoProgressStatuses() []string {
	return []string{
		constants.OrderStatusPreparing,
		constants.OrderStatusReady,
		constants.OrderStatusOutForDelivery,
	}
}

// QueueProgressScheduler 基于 asynq 延时任务的调度器
type QueueProgressScheduler struct {
	client *queue.Client
}

// NewQueueProgressScheduler 创建队列调度器
func NewQueueProgressScheduler(client *queue.Client) *QueueProgressScheduler {
	return &QueueProgressScheduler{client: client}
}

// Schedule 为每一步推送一个延时任务
func (s *QueueProgressScheduler) Schedule(ctx context.Context, orderID uint, steps []OrderProgressStep) error {
	for _, step := range steps {
		payload := queue.OrderProgressPayload{OrderID: orderID, TargetStatus: step.Status}
		if err := s.client.EnqueueOrderProgress(payload, step.Delay); err != nil {
			return err
		}
	}
	return nil
}

// Cancel 删除该订单尚未执行的进度任务
func (s *QueueProgressScheduler) Cancel(ctx context.Context, orderID uint) error {
	return s.client.CancelOrderProgress(orderID, autoProgressStatuses())
}

// Clock 时间源，测试中可替换
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer 可停止的定时器
type Timer interface {
	Stop() bool
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock 系统时钟
func SystemClock() Clock {
	return systemClock{}
}

// TimerProgressScheduler 进程内定时器调度器，队列未启用时使用
type TimerProgressScheduler struct {
	mu       sync.Mutex
	clock    Clock
	advancer OrderAdvancer
	timers   map[uint]map[string]scheduledTimer
	seq      uint64
}

// scheduledTimer seq 用于识别已被替换的旧定时器
type scheduledTimer struct {
	timer Timer
	seq   uint64
}

// NewTimerProgressScheduler 创建进程内调度器
func NewTimerProgressScheduler(clock Clock) *TimerProgressScheduler {
	if clock == nil {
		clock = SystemClock()
	}
	return &TimerProgressScheduler{
		clock:  clock,
		timers: make(map[uint]map[string]scheduledTimer),
	}
}

// SetAdvancer 绑定到期回调
func (s *TimerProgressScheduler) SetAdvancer(advancer OrderAdvancer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advancer = advancer
}

// Schedule 为每一步注册一个定时器，重复注册会替换旧定时器
func (s *TimerProgressScheduler) Schedule(ctx context.Context, orderID uint, steps []OrderProgressStep) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending, ok := s.timers[orderID]
	if !ok {
		pending = make(map[string]scheduledTimer)
		s.timers[orderID] = pending
	}
	for _, step := range steps {
		if old, exists := pending[step.Status]; exists {
			old.timer.Stop()
		}
		s.seq++
		status, seq := step.Status, s.seq
		pending[status] = scheduledTimer{
			timer: s.clock.AfterFunc(step.Delay, func() {
				s.fire(orderID, status, seq)
			}),
			seq: seq,
		}
	}
	return nil
}

// fire 只处理仍登记在册的定时器，已取消或已被替换的直接丢弃
func (s *TimerProgressScheduler) fire(orderID uint, status string, seq uint64) {
	s.mu.Lock()
	pending, ok := s.timers[orderID]
	if !ok || pending[status].seq != seq {
		s.mu.Unlock()
		return
	}
	delete(pending, status)
	if len(pending) == 0 {
		delete(s.timers, orderID)
	}
	advancer := s.advancer
	s.mu.Unlock()

	if advancer == nil {
		return
	}
	if err := advancer.AdvanceScheduled(context.Background(), orderID, status); err != nil {
		logger.Warnw("order_progress_timer_advance_failed",
			"order_id", orderID,
			"target_status", status,
			"error", err,
		)
	}
}

// Cancel 停止该订单所有未触发的定时器
func (s *TimerProgressScheduler) Cancel(ctx context.Context, orderID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.timers[orderID] {
		entry.timer.Stop()
	}
	delete(s.timers, orderID)
	return nil
}

// Pending 返回该订单尚未触发的步骤数
func (s *TimerProgressScheduler) Pending(orderID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers[orderID])
}

// Stop 停止全部定时器
func (s *TimerProgressScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for orderID, pending := range s.timers {
		for _, entry := range pending {
			entry.timer.Stop()
		}
		delete(s.timers, orderID)
	}
}
