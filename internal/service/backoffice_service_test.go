package service

import (
	"errors"
	"testing"
	"time"

	"github.com/rasoi-next/internal/repository"
)

func TestInventoryAdjustNeverNegative(t *testing.T) {
	db := openServiceTestDB(t)
	svc := NewInventoryService(repository.NewInventoryRepository(db))

	item, err := svc.Create(InventoryItemInput{Name: "Basmati Rice", SKU: "rice-01", Unit: "KG", Quantity: "10", ReorderLevel: "4"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if item.SKU != "RICE-01" || item.Unit != "kg" {
		t.Fatalf("unexpected item: %+v", item)
	}
	if _, err := svc.Create(InventoryItemInput{Name: "Dup", SKU: "RICE-01", Unit: "kg", Quantity: "1"}); !errors.Is(err, ErrSKUExists) {
		t.Fatalf("expected sku exists, got %v", err)
	}

	updated, err := svc.Adjust(item.ID, AdjustInventoryInput{Delta: "-7.5"})
	if err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	if updated.Quantity.String() != "2.50" || !updated.IsLowStock() {
		t.Fatalf("unexpected quantity: %s", updated.Quantity.String())
	}
	if _, err := svc.Adjust(item.ID, AdjustInventoryInput{Delta: "-3"}); !errors.Is(err, ErrStockInsufficient) {
		t.Fatalf("expected stock insufficient, got %v", err)
	}
	if _, err := svc.Adjust(item.ID, AdjustInventoryInput{Delta: "0"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	reloaded, err := svc.Get(item.ID)
	if err != nil || reloaded.Quantity.String() != "2.50" {
		t.Fatalf("failed adjust must not persist: %v %+v", err, reloaded)
	}

	low, total, err := svc.ListLowStock(1, 20)
	if err != nil || total != 1 || len(low) != 1 {
		t.Fatalf("unexpected low stock: %v %d", err, total)
	}
	if err := svc.Delete(item.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(item.ID); !errors.Is(err, ErrInventoryItemNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStaffCRUD(t *testing.T) {
	db := openServiceTestDB(t)
	svc := NewStaffService(repository.NewStaffRepository(db))

	member, err := svc.Create(StaffInput{Name: "Vikram", Role: "Chef", Shift: "evening", Email: "Vikram@Rasoi.in"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if member.Role != "chef" || member.Email != "vikram@rasoi.in" || !member.IsActive {
		t.Fatalf("unexpected member: %+v", member)
	}
	if _, err := svc.Create(StaffInput{Name: "X", Role: "astronaut"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	off := false
	updated, err := svc.Update(member.ID, StaffInput{Name: "Vikram S", Role: "manager", IsActive: &off})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Role != "manager" || updated.IsActive {
		t.Fatalf("unexpected update: %+v", updated)
	}
	if err := svc.Delete(member.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(member.ID); !errors.Is(err, ErrStaffNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCampaignValidation(t *testing.T) {
	db := openServiceTestDB(t)
	svc := NewCampaignService(repository.NewCampaignRepository(db))
	start := time.Now().Add(-time.Hour)
	end := start.Add(48 * time.Hour)

	campaign, err := svc.Create(CampaignInput{Name: "Diwali Feast", Code: "diwali20", Type: "percent", Value: "20", StartsAt: &start, EndsAt: &end})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if campaign.Code != "DIWALI20" || !campaign.IsRunning(time.Now()) {
		t.Fatalf("unexpected campaign: %+v", campaign)
	}
	if _, err := svc.Create(CampaignInput{Name: "Dup", Code: "DIWALI20", Type: "fixed", Value: "50"}); !errors.Is(err, ErrCampaignCodeExists) {
		t.Fatalf("expected code exists, got %v", err)
	}
	if _, err := svc.Create(CampaignInput{Name: "Back", Code: "BACK", Type: "fixed", Value: "50", StartsAt: &end, EndsAt: &start}); !errors.Is(err, ErrCampaignWindowInvalid) {
		t.Fatalf("expected window invalid, got %v", err)
	}
	if _, err := svc.Create(CampaignInput{Name: "Too much", Code: "ALL", Type: "percent", Value: "150"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	running, err := svc.ListRunning(time.Now())
	if err != nil || len(running) != 1 {
		t.Fatalf("unexpected running campaigns: %v %+v", err, running)
	}
}
