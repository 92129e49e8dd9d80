package analytics

import (
	"fmt"
	"time"

	"salesdash-backend/internal/reportparser"
)

const dateLayout = "2006-01-02"

// recordDate parses a record's ISO date. Records reaching analytics have
// already been validated, so a failure here means a programming error; the
// zero time keeps the record in the "unknown" bucket instead of panicking.
func recordDate(d reportparser.SalesData) time.Time {
	t, err := time.Parse(dateLayout, d.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// GroupByMonth buckets records under "2006-01" keys.
func GroupByMonth(data []reportparser.SalesData) map[string][]reportparser.SalesData {
	out := make(map[string][]reportparser.SalesData)
	for _, d := range data {
		key := recordDate(d).Format("2006-01")
		out[key] = append(out[key], d)
	}
	return out
}

// GroupByQuarter buckets records under "2006-Q1" keys.
func GroupByQuarter(data []reportparser.SalesData) map[string][]reportparser.SalesData {
	out := make(map[string][]reportparser.SalesData)
	for _, d := range data {
		t := recordDate(d)
		quarter := (int(t.Month())-1)/3 + 1
		key := fmt.Sprintf("%d-Q%d", t.Year(), quarter)
		out[key] = append(out[key], d)
	}
	return out
}

// GroupByYear buckets records under "2006" keys.
func GroupByYear(data []reportparser.SalesData) map[string][]reportparser.SalesData {
	out := make(map[string][]reportparser.SalesData)
	for _, d := range data {
		key := recordDate(d).Format("2006")
		out[key] = append(out[key], d)
	}
	return out
}

type BestDay struct {
	Date       string  `json:"date"`
	TotalSales float64 `json:"totalSales"`
}

type MonthStats struct {
	TotalSales         float64 `json:"totalSales"`
	BestDay            BestDay `json:"bestDay"`
	TotalCustomers     int     `json:"totalCustomers"`
	AveragePerCustomer float64 `json:"averagePerCustomer"`
	ReservationRate    float64 `json:"reservationRate"`
	NoShowRate         float64 `json:"noShowRate"`
	PhoneCallsAnswered int     `json:"phoneCallsAnswered"`
	MissedPhoneCalls   int     `json:"missedPhoneCalls"`
	AnswerRate         float64 `json:"answerRate"`
}

// customers sums the customer-flow balance over the period from the raw
// counters, not from the stored TotalPax.
func customers(data []reportparser.SalesData) int {
	total := 0
	for _, day := range data {
		total += reportparser.IntValue(day.Reservations) + reportparser.IntValue(day.WalkIns) -
			reportparser.IntValue(day.Cancellations) - reportparser.IntValue(day.NoShows)
	}
	return total
}

func GetMonthStats(data []reportparser.SalesData) MonthStats {
	if len(data) == 0 {
		return MonthStats{}
	}

	best := data[0]
	var totalSales float64
	var totalReservations, totalNoShows int
	var answered, missed int

	for _, day := range data {
		if day.TotalSales > best.TotalSales {
			best = day
		}
		totalSales += day.TotalSales
		totalReservations += reportparser.IntValue(day.Reservations)
		totalNoShows += reportparser.IntValue(day.NoShows)
		answered += reportparser.IntValue(day.PhoneCallsAnswered)
		missed += reportparser.IntValue(day.MissedPhoneCalls)
	}

	totalCustomers := customers(data)
	totalCalls := answered + missed

	stats := MonthStats{
		TotalSales:         totalSales,
		BestDay:            BestDay{Date: best.Date, TotalSales: best.TotalSales},
		TotalCustomers:     totalCustomers,
		PhoneCallsAnswered: answered,
		MissedPhoneCalls:   missed,
	}
	if totalCustomers != 0 {
		stats.AveragePerCustomer = totalSales / float64(totalCustomers)
		stats.ReservationRate = float64(totalReservations) / float64(totalCustomers) * 100
	}
	if totalReservations != 0 {
		stats.NoShowRate = float64(totalNoShows) / float64(totalReservations) * 100
	}
	if totalCalls != 0 {
		stats.AnswerRate = float64(answered) / float64(totalCalls) * 100
	}

	return stats
}

type QuarterStats struct {
	TotalSales         float64 `json:"totalSales"`
	TotalCustomers     int     `json:"totalCustomers"`
	AveragePerCustomer float64 `json:"averagePerCustomer"`
	ReservationRate    float64 `json:"reservationRate"`
}

func GetQuarterStats(data []reportparser.SalesData) QuarterStats {
	if len(data) == 0 {
		return QuarterStats{}
	}

	var totalSales float64
	var totalReservations int
	for _, day := range data {
		totalSales += day.TotalSales
		totalReservations += reportparser.IntValue(day.Reservations)
	}

	totalCustomers := customers(data)

	stats := QuarterStats{
		TotalSales:     totalSales,
		TotalCustomers: totalCustomers,
	}
	if totalCustomers != 0 {
		stats.AveragePerCustomer = totalSales / float64(totalCustomers)
		stats.ReservationRate = float64(totalReservations) / float64(totalCustomers) * 100
	}

	return stats
}

type YearlyStats struct {
	TotalSales          float64 `json:"totalSales"`
	AverageMonthlySales float64 `json:"averageMonthlySales"`
	TotalCustomers      int     `json:"totalCustomers"`
	AveragePerCustomer  float64 `json:"averagePerCustomer"`
	ReservationRate     float64 `json:"reservationRate"`
	NoShowRate          float64 `json:"noShowRate"`
}

func GetYearlyStats(data []reportparser.SalesData) YearlyStats {
	if len(data) == 0 {
		return YearlyStats{}
	}

	months := GroupByMonth(data)

	var totalSales float64
	var totalReservations, totalNoShows int
	for _, day := range data {
		totalSales += day.TotalSales
		totalReservations += reportparser.IntValue(day.Reservations)
		totalNoShows += reportparser.IntValue(day.NoShows)
	}

	totalCustomers := customers(data)

	stats := YearlyStats{
		TotalSales:          totalSales,
		AverageMonthlySales: totalSales / float64(len(months)),
		TotalCustomers:      totalCustomers,
	}
	if totalCustomers != 0 {
		stats.AveragePerCustomer = totalSales / float64(totalCustomers)
		stats.ReservationRate = float64(totalReservations) / float64(totalCustomers) * 100
	}
	if totalReservations != 0 {
		stats.NoShowRate = float64(totalNoShows) / float64(totalReservations) * 100
	}

	return stats
}

type CategoryTotals struct {
	Food float64 `json:"food"`
	Bar  float64 `json:"bar"`
	Wine float64 `json:"wine"`
}

func CalculateCategoryTotals(data []reportparser.SalesData) CategoryTotals {
	var totals CategoryTotals
	for _, day := range data {
		totals.Food += reportparser.FloatValue(day.FoodSales)
		totals.Bar += reportparser.FloatValue(day.BarSales)
		totals.Wine += reportparser.FloatValue(day.WineSales)
	}
	return totals
}

func CalculatePaymentMethodTotals(data []reportparser.SalesData) map[string]float64 {
	totals := make(map[string]float64)
	for _, day := range data {
		for method, amount := range day.PaymentMethods {
			totals[method] += amount
		}
	}
	return totals
}
