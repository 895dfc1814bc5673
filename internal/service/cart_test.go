package service

import (
	"errors"
	"math"
	"testing"

	"github.com/rasoi-next/internal/models"
)

func shikanji() models.CartItem {
	return models.CartItem{ItemID: "1", Name: "Traditional Shikanji", UnitPrice: models.NewMoneyFromInt(80)}
}

func TestCartAddItemMergesById(t *testing.T) {
	cart := NewCart()
	if _, err := cart.AddItem(shikanji(), 1); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	line, err := cart.AddItem(shikanji(), 1)
	if err != nil {
		t.Fatalf("add item again failed: %v", err)
	}
	if line.Quantity != 2 {
		t.Fatalf("quantity want 2 got %d", line.Quantity)
	}
	if len(cart.Items()) != 1 {
		t.Fatalf("cart should hold one line, got %d", len(cart.Items()))
	}
	if cart.Subtotal().String() != "160" {
		t.Fatalf("subtotal want 160 got %s", cart.Subtotal())
	}
	quote := DefaultPricingPolicy().Quote(cart.Subtotal())
	if quote.Total.String() != "208.00" {
		t.Fatalf("total want 208.00 got %s", quote.Total.String())
	}
}

func TestCartAddItemDefaultsQuantityAndKeepsOrder(t *testing.T) {
	cart := NewCart()
	_, _ = cart.AddItem(models.CartItem{ItemID: "b", UnitPrice: models.NewMoneyFromInt(10)}, 0)
	_, _ = cart.AddItem(models.CartItem{ItemID: "a", UnitPrice: models.NewMoneyFromInt(20)}, 1)

	items := cart.Items()
	if items[0].ItemID != "b" || items[1].ItemID != "a" {
		t.Fatalf("insertion order not kept: %+v", items)
	}
	for _, item := range items {
		if item.Quantity != 1 {
			t.Fatalf("new line quantity want 1, got %d", item.Quantity)
		}
	}
	if items[1].Position <= items[0].Position {
		t.Fatalf("positions should increase: %d %d", items[0].Position, items[1].Position)
	}
	if _, err := cart.AddItem(models.CartItem{ItemID: "c", UnitPrice: models.NewMoneyFromInt(5)}, -3); !errors.Is(err, ErrValidation) {
		t.Fatalf("negative quantity want validation error got %v", err)
	}
	if len(cart.Items()) != 2 {
		t.Fatalf("rejected add should not insert a line")
	}
}

func TestCartAddItemSumsQuantities(t *testing.T) {
	cases := []struct{ q1, q2 int }{{1, 0}, {2, 3}, {7, 0}, {40, 59}}
	for _, tc := range cases {
		cart := NewCart()
		if _, err := cart.AddItem(shikanji(), tc.q1); err != nil {
			t.Fatalf("add %d failed: %v", tc.q1, err)
		}
		line, err := cart.AddItem(shikanji(), tc.q2)
		if err != nil {
			t.Fatalf("add %d then %d failed: %v", tc.q1, tc.q2, err)
		}
		if line.Quantity != tc.q1+tc.q2 {
			t.Fatalf("add %d then %d want %d got %d", tc.q1, tc.q2, tc.q1+tc.q2, line.Quantity)
		}
	}
}

func TestCartAddItemRejectsOverflowingQuantity(t *testing.T) {
	cart := NewCart()
	if _, err := cart.AddItem(shikanji(), MaxLineQuantity); err != nil {
		t.Fatalf("add up to the hard limit failed: %v", err)
	}
	if _, err := cart.AddItem(shikanji(), math.MaxInt); !errors.Is(err, ErrValidation) {
		t.Fatalf("overflowing add want validation error got %v", err)
	}
	line, _ := cart.Get("1")
	if line.Quantity != MaxLineQuantity {
		t.Fatalf("rejected add changed quantity: %d", line.Quantity)
	}
	if cart.Subtotal().IsNegative() {
		t.Fatalf("subtotal went negative: %s", cart.Subtotal())
	}

	limited := NewCart()
	limited.SetLimit(3)
	if _, err := limited.AddItem(shikanji(), 2); err != nil {
		t.Fatalf("add under limit failed: %v", err)
	}
	if _, err := limited.AddItem(shikanji(), 2); !errors.Is(err, ErrQuantityTooLarge) {
		t.Fatalf("add over limit want ErrQuantityTooLarge got %v", err)
	}
	if _, err := limited.UpdateQuantity("1", 4); !errors.Is(err, ErrQuantityTooLarge) {
		t.Fatalf("update over limit want ErrQuantityTooLarge got %v", err)
	}
}

func TestCartAddItemRejectsInvalidLine(t *testing.T) {
	cart := NewCart()
	if _, err := cart.AddItem(models.CartItem{ItemID: " "}, 1); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty id want validation error got %v", err)
	}
	if _, err := cart.AddItem(models.CartItem{ItemID: "x", UnitPrice: models.NewMoneyFromInt(-1)}, 1); !errors.Is(err, ErrValidation) {
		t.Fatalf("negative price want validation error got %v", err)
	}
}

func TestCartUpdateQuantity(t *testing.T) {
	cart := NewCart()
	_, _ = cart.AddItem(shikanji(), 2)

	if _, err := cart.UpdateQuantity("1", -1); !errors.Is(err, ErrValidation) {
		t.Fatalf("negative quantity want validation error got %v", err)
	}
	if _, err := cart.UpdateQuantity("missing", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown id want not found got %v", err)
	}
	line, err := cart.UpdateQuantity("1", 5)
	if err != nil || line.Quantity != 5 {
		t.Fatalf("update quantity failed: %v %+v", err, line)
	}
	if _, err := cart.UpdateQuantity("1", 0); err != nil {
		t.Fatalf("zero quantity should remove: %v", err)
	}
	if !cart.IsEmpty() {
		t.Fatalf("cart should be empty after zero quantity")
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	cart := NewCart()
	_, _ = cart.AddItem(shikanji(), 1)
	_, _ = cart.AddItem(models.CartItem{ItemID: "2", UnitPrice: models.NewMoneyFromInt(60)}, 3)

	if cart.RemoveItem("absent") {
		t.Fatalf("removing unknown id should be a no-op")
	}
	if !cart.RemoveItem("1") {
		t.Fatalf("remove existing id failed")
	}
	if cart.ItemCount() != 3 || cart.Subtotal().String() != "180" {
		t.Fatalf("unexpected cart after remove: count=%d subtotal=%s", cart.ItemCount(), cart.Subtotal())
	}
	cart.Clear()
	if !cart.IsEmpty() || !cart.Subtotal().IsZero() {
		t.Fatalf("clear should empty the cart")
	}
}

func TestNewCartMergesDuplicates(t *testing.T) {
	a := shikanji()
	a.Quantity = 1
	b := shikanji()
	b.Quantity = 2
	cart := NewCart(a, b)
	if len(cart.Items()) != 1 || cart.ItemCount() != 3 {
		t.Fatalf("duplicates should merge, got %+v", cart.Items())
	}
}
