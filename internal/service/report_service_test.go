package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rasoi-next/internal/repository"
)

type stubReportRepository struct {
	overview  repository.ReportOverviewRow
	trends    []repository.ReportDailyTrendRow
	lastStart time.Time
	lastEnd   time.Time
}

func (s *stubReportRepository) GetOverview(startAt, endAt time.Time) (repository.ReportOverviewRow, error) {
	s.lastStart, s.lastEnd = startAt, endAt
	return s.overview, nil
}

func (s *stubReportRepository) GetStatusCounts(startAt, endAt time.Time) ([]repository.ReportStatusCountRow, error) {
	return []repository.ReportStatusCountRow{{Status: "confirmed", Total: 1}, {Status: "delivered", Total: 2}}, nil
}

func (s *stubReportRepository) GetDailyTrends(startAt, endAt time.Time) ([]repository.ReportDailyTrendRow, error) {
	return s.trends, nil
}

func (s *stubReportRepository) GetTopMenuItems(startAt, endAt time.Time, limit int) ([]repository.ReportMenuItemRankingRow, error) {
	return []repository.ReportMenuItemRankingRow{{ItemID: "1", Name: " Royal Thali ", Orders: 2, Quantity: 3, Revenue: 450}}, nil
}

func (s *stubReportRepository) GetPaymentMethodBreakdown(startAt, endAt time.Time) ([]repository.ReportPaymentMethodRow, error) {
	return nil, nil
}

func TestReportOverviewAverageOrderValue(t *testing.T) {
	repo := &stubReportRepository{overview: repository.ReportOverviewRow{OrdersTotal: 3, Revenue: 731, LowStockItems: 2}}
	svc := NewReportService(repo, DefaultPricingPolicy())

	overview, err := svc.GetOverview(context.Background(), ReportQueryInput{Range: "today", Timezone: "Asia/Kolkata"})
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if overview.Revenue != "731.00" || overview.AverageOrderValue != "243.67" {
		t.Fatalf("unexpected money values: %+v", overview)
	}
	if overview.OrdersByStatus["delivered"] != 2 || overview.LowStockItems != 2 || overview.Currency != "INR" {
		t.Fatalf("unexpected overview: %+v", overview)
	}
	if len(overview.TopItems) != 1 || overview.TopItems[0].Name != "Royal Thali" || overview.TopItems[0].Revenue != "450.00" {
		t.Fatalf("unexpected top items: %+v", overview.TopItems)
	}
	if repo.lastEnd.Sub(repo.lastStart) != 24*time.Hour {
		t.Fatalf("today window should span one day: %v - %v", repo.lastStart, repo.lastEnd)
	}
}

func TestReportOverviewWithoutOrders(t *testing.T) {
	svc := NewReportService(&stubReportRepository{}, DefaultPricingPolicy())
	overview, err := svc.GetOverview(context.Background(), ReportQueryInput{Range: "30d"})
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if overview.AverageOrderValue != "0.00" {
		t.Fatalf("empty range should have zero aov: %s", overview.AverageOrderValue)
	}
}

func TestResolveReportWindow(t *testing.T) {
	now := time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC)
	window, err := resolveReportWindow(ReportQueryInput{Range: "7d", Timezone: "UTC"}, now)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !window.startAt.Equal(time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC)) || !window.endAt.Equal(time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected 7d window: %v - %v", window.startAt, window.endAt)
	}

	from := now.Add(-time.Hour)
	if _, err := resolveReportWindow(ReportQueryInput{Range: "custom", From: &now, To: &from}, now); !errors.Is(err, ErrReportRangeInvalid) {
		t.Fatalf("expected range invalid, got %v", err)
	}
	if _, err := resolveReportWindow(ReportQueryInput{Range: "custom"}, now); !errors.Is(err, ErrReportRangeInvalid) {
		t.Fatalf("expected range invalid, got %v", err)
	}
	if _, err := resolveReportWindow(ReportQueryInput{Range: "fortnight"}, now); !errors.Is(err, ErrReportRangeInvalid) {
		t.Fatalf("expected range invalid, got %v", err)
	}
}

func TestReportTrendsFillsEmptyDays(t *testing.T) {
	svc := NewReportService(&stubReportRepository{}, DefaultPricingPolicy())
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }
	trends, err := svc.GetTrends(context.Background(), ReportQueryInput{Range: "7d", Timezone: "UTC"})
	if err != nil {
		t.Fatalf("trends failed: %v", err)
	}
	if len(trends.Points) != 7 || trends.Points[0].Date != "2026-10-13" || trends.Points[6].Revenue != "0.00" {
		t.Fatalf("unexpected trend points: %+v", trends.Points)
	}
}
