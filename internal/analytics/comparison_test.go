package analytics

import (
	"math"
	"testing"
	"time"

	"salesdash-backend/internal/reportparser"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculatePeriodStatsCompleteMonth(t *testing.T) {
	data := []reportparser.SalesData{
		{
			Date:           "2025-01-06",
			TotalSales:     1000,
			TotalPax:       10,
			Reservations:   ip(8),
			WalkIns:        ip(2),
			FoodSales:      fp(600),
			PaymentMethods: map[string]float64{"Cash": 1000},
		},
		{
			Date:           "2025-01-07",
			TotalSales:     3000,
			TotalPax:       20,
			Reservations:   ip(20),
			NoShows:        ip(2),
			PaymentMethods: map[string]float64{"Visa": 3000},
		},
	}
	now := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	stats := CalculatePeriodStats(data, now)

	if stats.IsPartialPeriod {
		t.Fatal("a past month must not be flagged partial")
	}
	if stats.TotalSales != 4000 {
		t.Errorf("TotalSales = %v, want 4000 (no pro-rating)", stats.TotalSales)
	}
	if stats.AverageDailySales != 2000 {
		t.Errorf("AverageDailySales = %v, want 2000", stats.AverageDailySales)
	}
	if stats.BestDaySales != 3000 || stats.WorstDaySales != 1000 {
		t.Errorf("best/worst = %v/%v", stats.BestDaySales, stats.WorstDaySales)
	}
	if stats.CustomerMetrics.TotalCustomers != 30 {
		t.Errorf("TotalCustomers = %v, want 30", stats.CustomerMetrics.TotalCustomers)
	}
	if stats.PaymentMethods["Cash"] != 1000 || stats.PaymentMethods["Visa"] != 3000 {
		t.Errorf("PaymentMethods = %v", stats.PaymentMethods)
	}
	if stats.Label != "January 2025" {
		t.Errorf("Label = %q", stats.Label)
	}
	if stats.DaysInPeriod != 31 || stats.CompletedDays != 2 {
		t.Errorf("days = %d/%d, want 31/2", stats.DaysInPeriod, stats.CompletedDays)
	}
}

func TestCalculatePeriodStatsPartialMonthProRates(t *testing.T) {
	data := []reportparser.SalesData{
		{Date: "2025-01-06", TotalSales: 1000, FoodSales: fp(500), PaymentMethods: map[string]float64{"Cash": 1000}},
		{Date: "2025-01-07", TotalSales: 1000, FoodSales: fp(500), PaymentMethods: map[string]float64{"Cash": 1000}},
	}
	// Still inside January: the period is in progress.
	now := time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC)

	stats := CalculatePeriodStats(data, now)

	if !stats.IsPartialPeriod {
		t.Fatal("an in-progress month must be flagged partial")
	}

	// factor = 31 days / 2 completed = 15.5
	if !almostEqual(stats.TotalSales, 2000*15.5) {
		t.Errorf("TotalSales = %v, want %v", stats.TotalSales, 2000*15.5)
	}
	if !almostEqual(stats.CategorySales.Food, 1000*15.5) {
		t.Errorf("CategorySales.Food = %v, want %v", stats.CategorySales.Food, 1000*15.5)
	}
	if !almostEqual(stats.PaymentMethods["Cash"], 2000*15.5) {
		t.Errorf("PaymentMethods[Cash] = %v, want %v", stats.PaymentMethods["Cash"], 2000*15.5)
	}
	// The daily average reflects actual trading, never the projection.
	if stats.AverageDailySales != 1000 {
		t.Errorf("AverageDailySales = %v, want 1000", stats.AverageDailySales)
	}
}

func TestCalculatePeriodStatsServiceMetricsNotProRated(t *testing.T) {
	data := []reportparser.SalesData{
		{Date: "2025-01-06", TotalSales: 1000, PhoneCallsAnswered: ip(30), MissedPhoneCalls: ip(10)},
	}
	now := time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC)

	stats := CalculatePeriodStats(data, now)

	if stats.ServiceMetrics.PhoneCallsAnswered != 30 || stats.ServiceMetrics.MissedPhoneCalls != 10 {
		t.Errorf("service metrics scaled: %+v", stats.ServiceMetrics)
	}
	if stats.ServiceMetrics.AnswerRate != 75 {
		t.Errorf("AnswerRate = %v, want 75", stats.ServiceMetrics.AnswerRate)
	}
}

func TestCalculatePeriodStatsEmpty(t *testing.T) {
	stats := CalculatePeriodStats(nil, time.Now())
	if stats.TotalSales != 0 || stats.CompletedDays != 0 {
		t.Errorf("empty stats not zeroed: %+v", stats)
	}
	if stats.PaymentMethods == nil {
		t.Error("PaymentMethods must be an empty map, not nil")
	}
}

func TestCalculatePercentageChange(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		expected float64
	}{
		{"increase", 110, 100, 10},
		{"decrease", 50, 100, -50},
		{"unchanged", 100, 100, 0},
		{"zero previous", 100, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculatePercentageChange(tt.current, tt.previous); got != tt.expected {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}
