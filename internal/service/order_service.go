package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/rasoi-next/internal/config"
	"github.com/rasoi-next/internal/constants"
	"github.com/rasoi-next/internal/events"
	"github.com/rasoi-next/internal/logger"
	"github.com/rasoi-next/internal/models"
	"github.com/rasoi-next/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo    repository.OrderRepository
	menuItemRepo repository.MenuItemRepository
	cartRepo     repository.CartRepository
	loyalty      *LoyaltyService
	pricing      PricingPolicy
	scheduler    OrderProgressScheduler
	publisher    events.Publisher
	cfg          config.OrderConfig
	clock        Clock
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, menuItemRepo repository.MenuItemRepository, cartRepo repository.CartRepository, loyalty *LoyaltyService, pricing PricingPolicy, scheduler OrderProgressScheduler, publisher events.Publisher, cfg config.OrderConfig) *OrderService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &OrderService{
		orderRepo:    orderRepo,
		menuItemRepo: menuItemRepo,
		cartRepo:     cartRepo,
		loyalty:      loyalty,
		pricing:      pricing,
		scheduler:    scheduler,
		publisher:    publisher,
		cfg:          cfg,
		clock:        SystemClock(),
	}
}

// SetClock 替换时间源
func (s *OrderService) SetClock(clock Clock) {
	if clock != nil {
		s.clock = clock
	}
}

// CustomerInfo 下单联系人信息
type CustomerInfo struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"omitempty,email,max=255"`
	Phone   string `json:"phone" validate:"required,min=7,max=32"`
	Address string `json:"address" validate:"required,max=500"`
	Notes   string `json:"notes" validate:"max=500"`
}

// CheckoutItem 下单项输入
type CheckoutItem struct {
	ID       string `json:"id" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1,lte=1000000"`
}

// CreateOrderInput 创建订单输入
type CreateOrderInput struct {
	UserID        uint           `json:"-"`
	Items         []CheckoutItem `json:"items" validate:"dive"`
	Customer      CustomerInfo   `json:"customer"`
	PaymentMethod string         `json:"payment_method" validate:"required,payment_method"`
}

// UpdateOrderStatusInput 修改订单状态输入
type UpdateOrderStatusInput struct {
	OrderID    uint
	Status     string
	Source     string
	OperatorID uint
}

// Create 校验购物车快照并创建订单，初始状态为已确认
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrCartEmpty
	}
	input.PaymentMethod = strings.ToLower(strings.TrimSpace(input.PaymentMethod))
	input.Customer.Email = strings.ToLower(strings.TrimSpace(input.Customer.Email))
	input.Customer.Name = strings.TrimSpace(input.Customer.Name)
	input.Customer.Phone = strings.TrimSpace(input.Customer.Phone)
	input.Customer.Address = strings.TrimSpace(input.Customer.Address)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	cart, err := s.snapshotCart(input.Items)
	if err != nil {
		return nil, err
	}
	subtotal := cart.Subtotal()
	quote := s.pricing.Quote(subtotal)

	now := s.clock.Now()
	order := &models.Order{
		OrderNo:             generateOrderNo(now),
		UserID:              input.UserID,
		Status:              constants.OrderStatusConfirmed,
		PaymentMethod:       input.PaymentMethod,
		Currency:            s.pricing.Currency,
		Subtotal:            quote.Subtotal,
		DeliveryFee:         quote.DeliveryFee,
		TaxAmount:           quote.Tax,
		TotalAmount:         quote.Total,
		CustomerName:        input.Customer.Name,
		CustomerEmail:       input.Customer.Email,
		CustomerPhone:       input.Customer.Phone,
		DeliveryAddress:     input.Customer.Address,
		DeliveryNotes:       strings.TrimSpace(input.Customer.Notes),
		AutoProgress:        s.cfg.AutoProgress,
		EstimatedDeliveryAt: now.Add(s.estimatedDelivery()),
		ConfirmedAt:         &now,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if s.loyalty != nil {
		order.PointsEarned = s.loyalty.PointsForOrder(quote.Total.Decimal)
	}
	items := make([]models.OrderItem, 0, len(cart.Items()))
	for _, line := range cart.Items() {
		items = append(items, models.OrderItem{
			ItemID:     line.ItemID,
			MenuItemID: line.MenuItemID,
			Name:       line.Name,
			Attributes: line.Attributes,
			UnitPrice:  line.UnitPrice,
			Quantity:   line.Quantity,
			TotalPrice: line.UnitPrice.MulInt(line.Quantity),
			CreatedAt:  now,
		})
	}

	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		if err := orderRepo.Create(order, items); err != nil {
			return err
		}
		return orderRepo.CreateStatusLog(&models.OrderStatusLog{
			OrderID:   order.ID,
			ToStatus:  order.Status,
			Source:    constants.OrderStatusSourceSystem,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	if order.AutoProgress && s.scheduler != nil {
		if err := s.scheduler.Schedule(ctx, order.ID, ProgressSteps(s.cfg)); err != nil {
			logger.Warnw("order_progress_schedule_failed",
				"order_id", order.ID,
				"order_no", order.OrderNo,
				"error", err,
			)
		}
	}
	s.publish(ctx, order, constants.OrderEventCreated, "", constants.OrderStatusSourceSystem)
	logger.Infow("order_created",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"user_id", order.UserID,
		"total", order.TotalAmount.String(),
		"items", len(items),
	)
	return order, nil
}

// CheckoutCart 使用顾客服务端购物车下单，成功后清空购物车
func (s *OrderService) CheckoutCart(ctx context.Context, userID uint, customer CustomerInfo, paymentMethod string) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	rows, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	cart := NewCart(rows...)
	items := make([]CheckoutItem, 0, len(cart.Items()))
	for _, line := range cart.Items() {
		items = append(items, CheckoutItem{ID: line.ItemID, Quantity: line.Quantity})
	}
	order, err := s.Create(ctx, CreateOrderInput{
		UserID:        userID,
		Items:         items,
		Customer:      customer,
		PaymentMethod: paymentMethod,
	})
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.ClearByUser(userID); err != nil {
		logger.Warnw("order_clear_cart_failed",
			"user_id", userID,
			"order_no", order.OrderNo,
			"error", err,
		)
	}
	return order, nil
}

// OrderPreview 下单前预览：按当前菜单重新计价
type OrderPreview struct {
	Items        []models.CartItem `json:"items"`
	Quote        PriceQuote        `json:"quote"`
	PointsEarned int64             `json:"points_earned"`
}

type previewInput struct {
	Items []CheckoutItem `json:"items" validate:"dive"`
}

// Preview 校验下单项并返回价格明细，不落库
func (s *OrderService) Preview(items []CheckoutItem) (*OrderPreview, error) {
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}
	if err := validateStruct(previewInput{Items: items}); err != nil {
		return nil, err
	}
	cart, err := s.snapshotCart(items)
	if err != nil {
		return nil, err
	}
	quote := s.pricing.Quote(cart.Subtotal())
	preview := &OrderPreview{
		Items: cart.Items(),
		Quote: quote,
	}
	if s.loyalty != nil {
		preview.PointsEarned = s.loyalty.PointsForOrder(quote.Total.Decimal)
	}
	return preview, nil
}

// snapshotCart 以当前菜单的名称与价格构建购物车快照
func (s *OrderService) snapshotCart(items []CheckoutItem) (*Cart, error) {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		id, err := strconv.ParseUint(strings.TrimSpace(item.ID), 10, 64)
		if err != nil || id == 0 {
			return nil, fmt.Errorf("%w: %s", ErrMenuItemNotFound, item.ID)
		}
		ids = append(ids, uint(id))
	}
	menuItems, err := s.menuItemRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.MenuItem, len(menuItems))
	for _, menuItem := range menuItems {
		byID[menuItem.ID] = menuItem
	}

	cart := NewCart()
	cart.SetLimit(s.pricing.MaxItemQuantity)
	for i, item := range items {
		menuItem, ok := byID[ids[i]]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMenuItemNotFound, item.ID)
		}
		if !menuItem.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrMenuItemUnavailable, menuItem.Name)
		}
		line := models.CartItem{
			ItemID:     strconv.FormatUint(uint64(menuItem.ID), 10),
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			UnitPrice:  menuItem.Price,
			Attributes: menuItem.Attributes,
		}
		if _, err := cart.AddItem(line, item.Quantity); err != nil {
			return nil, err
		}
	}
	return cart, nil
}

func (s *OrderService) estimatedDelivery() time.Duration {
	minutes := s.cfg.EstimatedDeliveryMinutes
	if minutes <= 0 {
		minutes = 30
	}
	return time.Duration(minutes) * time.Minute
}

// UpdateStatus 后台修改订单状态，只能向后流转
func (s *OrderService) UpdateStatus(ctx context.Context, input UpdateOrderStatusInput) (*models.Order, error) {
	target := normalizeOrderStatus(input.Status)
	order, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if err := validateTransition(order.Status, target); err != nil {
		return nil, err
	}
	source := input.Source
	if source == "" {
		source = constants.OrderStatusSourceAdmin
	}
	return s.applyTransition(ctx, order, target, source, input.OperatorID)
}

// AdvanceScheduled 调度器到期回调：订单不存在、已停止自动推进或已到达目标状态时忽略
func (s *OrderService) AdvanceScheduled(ctx context.Context, orderID uint, targetStatus string) error {
	target := normalizeOrderStatus(targetStatus)
	if !isKnownOrderStatus(target) {
		return ErrInvalidOrderStatus
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil || !order.AutoProgress {
		return nil
	}
	if orderStatusRank(order.Status) >= orderStatusRank(target) {
		return nil
	}
	if err := validateTransition(order.Status, target); err != nil {
		return err
	}
	_, err = s.applyTransition(ctx, order, target, constants.OrderStatusSourceAuto, 0)
	if errors.Is(err, ErrInvalidTransition) {
		// 与后台操作并发时以先提交者为准
		logger.Debugw("order_progress_advance_skipped",
			"order_id", orderID,
			"target_status", target,
		)
		return nil
	}
	return err
}

func (s *OrderService) applyTransition(ctx context.Context, order *models.Order, target, source string, operatorID uint) (*models.Order, error) {
	from := order.Status
	now := s.clock.Now()
	updates := map[string]interface{}{
		"updated_at": now,
	}
	if column := statusTimestampColumn(target); column != "" {
		updates[column] = now
	}
	if target == constants.OrderStatusDelivered {
		updates["auto_progress"] = false
	}

	var credited *LoyaltyAccount
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		applied, err := orderRepo.TransitionStatus(order.ID, from, target, updates)
		if err != nil {
			return err
		}
		if !applied {
			return fmt.Errorf("%w: order %s changed concurrently", ErrInvalidTransition, order.OrderNo)
		}
		if err := orderRepo.CreateStatusLog(&models.OrderStatusLog{
			OrderID:    order.ID,
			FromStatus: from,
			ToStatus:   target,
			Source:     source,
			OperatorID: operatorID,
			CreatedAt:  now,
		}); err != nil {
			return err
		}
		if target != constants.OrderStatusDelivered {
			return nil
		}
		credited, err = s.creditDeliveredOrder(tx, order)
		return err
	})
	if err != nil {
		return nil, err
	}

	if target == constants.OrderStatusDelivered {
		s.onDelivered(ctx, order, credited)
	}

	updated, err := s.orderRepo.GetByID(order.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrOrderNotFound
	}
	s.publish(ctx, updated, constants.OrderEventStatusChanged, from, source)
	logger.Infow("order_status_changed",
		"order_id", updated.ID,
		"order_no", updated.OrderNo,
		"from_status", from,
		"to_status", target,
		"source", source,
		"operator_id", operatorID,
	)
	return updated, nil
}

// creditDeliveredOrder 与送达状态同一事务入账积分，入账失败则状态变更一并回滚
func (s *OrderService) creditDeliveredOrder(tx *gorm.DB, order *models.Order) (*LoyaltyAccount, error) {
	if s.loyalty == nil || order.UserID == 0 || order.PointsCredited {
		return nil, nil
	}
	account, applied, err := s.loyalty.creditOrderInTx(tx, order)
	if err != nil {
		return nil, err
	}
	if _, err := s.orderRepo.WithTx(tx).MarkPointsCredited(order.ID); err != nil {
		return nil, err
	}
	if !applied {
		return nil, nil
	}
	return account, nil
}

// onDelivered 送达后取消剩余调度
func (s *OrderService) onDelivered(ctx context.Context, order *models.Order, credited *LoyaltyAccount) {
	if s.scheduler != nil {
		if err := s.scheduler.Cancel(ctx, order.ID); err != nil {
			logger.Warnw("order_progress_cancel_failed",
				"order_id", order.ID,
				"error", err,
			)
		}
	}
	if credited != nil {
		logTierChange(credited, order.PointsEarned)
		logger.Infow("order_loyalty_credited",
			"order_id", order.ID,
			"user_id", order.UserID,
			"points", order.PointsEarned,
		)
	}
}

// StopAutoProgress 取消剩余的自动推进，改由后台手动操作
func (s *OrderService) StopAutoProgress(ctx context.Context, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if s.scheduler != nil {
		if err := s.scheduler.Cancel(ctx, order.ID); err != nil {
			return nil, err
		}
	}
	if order.AutoProgress {
		if err := s.orderRepo.UpdateAutoProgress(order.ID, false); err != nil {
			return nil, err
		}
		order.AutoProgress = false
	}
	return order, nil
}

// RestoreAutoProgress 进程重启后为仍在自动推进中的订单补登调度
func (s *OrderService) RestoreAutoProgress(ctx context.Context) (int, error) {
	if s.scheduler == nil {
		return 0, nil
	}
	orders, err := s.orderRepo.ListAutoProgressing([]string{
		constants.OrderStatusConfirmed,
		constants.OrderStatusPreparing,
		constants.OrderStatusReady,
	})
	if err != nil {
		return 0, err
	}
	now := s.clock.Now()
	restored := 0
	for _, order := range orders {
		steps := make([]OrderProgressStep, 0, 3)
		for _, step := range ProgressSteps(s.cfg) {
			if orderStatusRank(step.Status) <= orderStatusRank(order.Status) {
				continue
			}
			delay := order.CreatedAt.Add(step.Delay).Sub(now)
			if delay < 0 {
				delay = 0
			}
			steps = append(steps, OrderProgressStep{Status: step.Status, Delay: delay})
		}
		if len(steps) == 0 {
			continue
		}
		if err := s.scheduler.Schedule(ctx, order.ID, steps); err != nil {
			logger.Warnw("order_progress_restore_failed",
				"order_id", order.ID,
				"error", err,
			)
			continue
		}
		restored++
	}
	return restored, nil
}

func (s *OrderService) publish(ctx context.Context, order *models.Order, eventType, fromStatus, source string) {
	event := events.OrderEvent{
		Type:       eventType,
		OrderID:    order.ID,
		OrderNo:    order.OrderNo,
		UserID:     order.UserID,
		Status:     order.Status,
		FromStatus: fromStatus,
		Source:     source,
		Total:      order.TotalAmount.String(),
		Currency:   order.Currency,
		OccurredAt: s.clock.Now(),
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		logger.Warnw("order_event_publish_failed",
			"order_id", order.ID,
			"event_type", eventType,
			"error", err,
		)
	}
}

// generateOrderNo RS + 时间戳 + 6 位随机数
func generateOrderNo(now time.Time) string {
	return fmt.Sprintf("RS%s%s", now.Format("20060102150405"), randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(strconv.FormatInt(n.Int64(), 10))
	}
	return b.String()
}
