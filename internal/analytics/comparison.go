package analytics

import (
	"time"

	"salesdash-backend/internal/reportparser"
)

type CustomerMetrics struct {
	TotalCustomers  float64 `json:"totalCustomers"`
	Reservations    float64 `json:"reservations"`
	WalkIns         float64 `json:"walkIns"`
	NoShows         float64 `json:"noShows"`
	Cancellations   float64 `json:"cancellations"`
	ReservationRate float64 `json:"reservationRate"`
	NoShowRate      float64 `json:"noShowRate"`
}

type TimeBasedSales struct {
	HappyHour float64 `json:"happyHour"`
	Evening   float64 `json:"evening"`
	LateNight float64 `json:"lateNight"`
}

type ServiceMetrics struct {
	PhoneCallsAnswered int     `json:"phoneCallsAnswered"`
	MissedPhoneCalls   int     `json:"missedPhoneCalls"`
	AnswerRate         float64 `json:"answerRate"`
}

// PeriodStats is one side of a period comparison. When the period is still
// in progress its totals are pro-rated to a full-period estimate; daily
// averages and service metrics stay un-scaled actuals.
type PeriodStats struct {
	Label             string             `json:"label"`
	TotalSales        float64            `json:"totalSales"`
	AverageDailySales float64            `json:"averageDailySales"`
	BestDaySales      float64            `json:"bestDaySales"`
	WorstDaySales     float64            `json:"worstDaySales"`
	CustomerMetrics   CustomerMetrics    `json:"customerMetrics"`
	CategorySales     CategoryTotals     `json:"categorySales"`
	TimeBasedSales    TimeBasedSales     `json:"timeBasedSales"`
	ServiceMetrics    ServiceMetrics     `json:"serviceMetrics"`
	PaymentMethods    map[string]float64 `json:"paymentMethods"`
	IsPartialPeriod   bool               `json:"isPartialPeriod"`
	DaysInPeriod      int                `json:"daysInPeriod"`
	CompletedDays     int                `json:"completedDays"`
}

// isPartialPeriod reports whether the period's last record falls in the
// current calendar month.
func isPartialPeriod(data []reportparser.SalesData, now time.Time) bool {
	if len(data) == 0 {
		return false
	}
	last := recordDate(data[len(data)-1])
	return last.Year() == now.Year() && last.Month() == now.Month()
}

// proRateFactor scales a partial month up to a full one: days in the month
// over days of data.
func proRateFactor(data []reportparser.SalesData) float64 {
	if len(data) == 0 {
		return 1
	}
	last := recordDate(data[len(data)-1])
	daysInMonth := time.Date(last.Year(), last.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 1, -1).Day()
	return float64(daysInMonth) / float64(len(data))
}

// CalculatePeriodStats aggregates one comparison period. Records must be in
// date order.
func CalculatePeriodStats(data []reportparser.SalesData, now time.Time) PeriodStats {
	if len(data) == 0 {
		return PeriodStats{PaymentMethods: map[string]float64{}}
	}

	partial := isPartialPeriod(data, now)
	factor := 1.0
	if partial {
		factor = proRateFactor(data)
	}

	last := recordDate(data[len(data)-1])
	daysInPeriod := time.Date(last.Year(), last.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 1, -1).Day()

	var rawTotal float64
	best, worst := data[0].TotalSales, data[0].TotalSales
	payments := make(map[string]float64)

	var cust CustomerMetrics
	var timeBased TimeBasedSales
	var answered, missed int

	for _, day := range data {
		rawTotal += day.TotalSales
		if day.TotalSales > best {
			best = day.TotalSales
		}
		if day.TotalSales < worst {
			worst = day.TotalSales
		}
		for method, amount := range day.PaymentMethods {
			payments[method] += amount
		}

		cust.TotalCustomers += float64(day.TotalPax)
		cust.Reservations += float64(reportparser.IntValue(day.Reservations))
		cust.WalkIns += float64(reportparser.IntValue(day.WalkIns))
		cust.NoShows += float64(reportparser.IntValue(day.NoShows))
		cust.Cancellations += float64(reportparser.IntValue(day.Cancellations))

		timeBased.HappyHour += reportparser.FloatValue(day.HappyHourSales)
		timeBased.Evening += reportparser.FloatValue(day.SalesFrom7pmTo10pm)
		timeBased.LateNight += reportparser.FloatValue(day.After10pmSales)

		answered += reportparser.IntValue(day.PhoneCallsAnswered)
		missed += reportparser.IntValue(day.MissedPhoneCalls)
	}

	category := CalculateCategoryTotals(data)

	if partial {
		cust.TotalCustomers *= factor
		cust.Reservations *= factor
		cust.WalkIns *= factor
		cust.NoShows *= factor
		cust.Cancellations *= factor

		timeBased.HappyHour *= factor
		timeBased.Evening *= factor
		timeBased.LateNight *= factor

		category.Food *= factor
		category.Bar *= factor
		category.Wine *= factor

		for method := range payments {
			payments[method] *= factor
		}
	}

	if cust.TotalCustomers > 0 {
		cust.ReservationRate = cust.Reservations / cust.TotalCustomers * 100
	}
	if cust.Reservations > 0 {
		cust.NoShowRate = cust.NoShows / cust.Reservations * 100
	}

	service := ServiceMetrics{PhoneCallsAnswered: answered, MissedPhoneCalls: missed}
	if totalCalls := answered + missed; totalCalls > 0 {
		service.AnswerRate = float64(answered) / float64(totalCalls) * 100
	}

	totalSales := rawTotal
	if partial {
		totalSales = rawTotal * factor
	}

	return PeriodStats{
		Label:             last.Format("January 2006"),
		TotalSales:        totalSales,
		AverageDailySales: rawTotal / float64(len(data)),
		BestDaySales:      best,
		WorstDaySales:     worst,
		CustomerMetrics:   cust,
		CategorySales:     category,
		TimeBasedSales:    timeBased,
		ServiceMetrics:    service,
		PaymentMethods:    payments,
		IsPartialPeriod:   partial,
		DaysInPeriod:      daysInPeriod,
		CompletedDays:     len(data),
	}
}

// CalculatePercentageChange returns the relative change from previous to
// current, in percent. A zero previous value yields 0 rather than infinity.
func CalculatePercentageChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
