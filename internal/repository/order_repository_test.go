package repository

import (
	"testing"
	"time"

	"github.com/rasoi-next/internal/constants"
	"github.com/rasoi-next/internal/models"
)

func createTestOrder(t *testing.T, repo *GormOrderRepository, orderNo, email, status string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:             orderNo,
		Status:              status,
		PaymentMethod:       constants.PaymentMethodUPI,
		Currency:            constants.DefaultCurrency,
		Subtotal:            models.NewMoneyFromInt(160),
		DeliveryFee:         models.NewMoneyFromInt(40),
		TaxAmount:           models.NewMoneyFromInt(8),
		TotalAmount:         models.NewMoneyFromInt(208),
		CustomerName:        "Asha",
		CustomerEmail:       email,
		CustomerPhone:       "9876543210",
		DeliveryAddress:     "12 MG Road",
		EstimatedDeliveryAt: time.Now().Add(30 * time.Minute),
	}
	items := []models.OrderItem{{
		ItemID:     "1",
		Name:       "Traditional Shikanji",
		UnitPrice:  models.NewMoneyFromInt(80),
		Quantity:   2,
		TotalPrice: models.NewMoneyFromInt(160),
	}}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestOrderTransitionStatusIsConditional(t *testing.T) {
	repo := NewOrderRepository(openRepositoryTestDB(t))
	order := createTestOrder(t, repo, "RS-T-1", "asha@example.com", constants.OrderStatusConfirmed)

	ok, err := repo.TransitionStatus(order.ID, constants.OrderStatusConfirmed, constants.OrderStatusPreparing, nil)
	if err != nil || !ok {
		t.Fatalf("first transition should apply: ok=%v err=%v", ok, err)
	}
	ok, err = repo.TransitionStatus(order.ID, constants.OrderStatusConfirmed, constants.OrderStatusPreparing, nil)
	if err != nil {
		t.Fatalf("stale transition errored: %v", err)
	}
	if ok {
		t.Fatalf("stale transition should not match any row")
	}

	got, err := repo.GetByID(order.ID)
	if err != nil || got == nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if got.Status != constants.OrderStatusPreparing {
		t.Fatalf("status want preparing got %s", got.Status)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 2 {
		t.Fatalf("order items should be preloaded: %+v", got.Items)
	}
}

func TestOrderLookupsByEmail(t *testing.T) {
	repo := NewOrderRepository(openRepositoryTestDB(t))
	createTestOrder(t, repo, "RS-T-2", "Asha@Example.com", constants.OrderStatusConfirmed)
	createTestOrder(t, repo, "RS-T-3", "asha@example.com", constants.OrderStatusDelivered)
	createTestOrder(t, repo, "RS-T-4", "ravi@example.com", constants.OrderStatusConfirmed)

	rows, total, err := repo.ListByEmail("ASHA@example.com", 1, 20)
	if err != nil {
		t.Fatalf("list by email failed: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("want 2 orders for asha, got total=%d len=%d", total, len(rows))
	}
	if rows[0].OrderNo != "RS-T-3" {
		t.Fatalf("orders should be newest first, got %s", rows[0].OrderNo)
	}

	order, err := repo.GetByOrderNoAndEmail("RS-T-4", "asha@example.com")
	if err != nil {
		t.Fatalf("track lookup failed: %v", err)
	}
	if order != nil {
		t.Fatalf("tracking must not leak another customer's order")
	}
}

func TestOrderMarkPointsCreditedOnce(t *testing.T) {
	repo := NewOrderRepository(openRepositoryTestDB(t))
	order := createTestOrder(t, repo, "RS-T-5", "asha@example.com", constants.OrderStatusDelivered)

	first, err := repo.MarkPointsCredited(order.ID)
	if err != nil || !first {
		t.Fatalf("first mark should succeed: %v %v", first, err)
	}
	second, err := repo.MarkPointsCredited(order.ID)
	if err != nil || second {
		t.Fatalf("second mark should be a no-op: %v %v", second, err)
	}
}
