package analytics

import (
	"time"

	"salesdash-backend/internal/reportparser"
)

// BusinessDayConfig controls which calendar days count as working days.
// Sundays are excluded by default, except Sundays that actually have sales:
// an opened Sunday is a working day regardless of the rule.
type BusinessDayConfig struct {
	ExcludeSundays    bool
	ExcludeDates      []string
	IncludeSpecialDts []string
}

func DefaultBusinessDayConfig() BusinessDayConfig {
	return BusinessDayConfig{ExcludeSundays: true}
}

type BusinessDays struct {
	TotalDays            int `json:"totalDays"`
	WorkingDays          int `json:"workingDays"`
	ActualWorkingDays    int `json:"actualWorkingDays"`
	RemainingWorkingDays int `json:"remainingWorkingDays"`
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// CalculateBusinessDays walks the calendar month of the first record and
// classifies each day. "now" is injected so projections are reproducible.
func CalculateBusinessDays(data []reportparser.SalesData, cfg BusinessDayConfig, now time.Time) BusinessDays {
	if len(data) == 0 {
		return BusinessDays{}
	}

	first := recordDate(data[0])
	monthStart := time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	totalDays := monthEnd.Day()

	activeDates := make(map[string]bool, len(data))
	sundaysWithSales := 0
	for _, d := range data {
		activeDates[d.Date] = true
		if recordDate(d).Weekday() == time.Sunday {
			sundaysWithSales++
		}
	}

	result := BusinessDays{TotalDays: totalDays}

	for day := 1; day <= totalDays; day++ {
		current := time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
		dateStr := current.Format(dateLayout)
		isSunday := current.Weekday() == time.Sunday

		working := (!isSunday || activeDates[dateStr]) &&
			(!contains(cfg.ExcludeDates, dateStr) || contains(cfg.IncludeSpecialDts, dateStr))
		if !working {
			continue
		}

		result.WorkingDays++
		if activeDates[dateStr] {
			result.ActualWorkingDays++
		}
		if !current.Before(now.Truncate(24*time.Hour)) && !current.After(monthEnd) {
			result.RemainingWorkingDays++
		}
	}

	// Closed Sundays never count, but Sundays the restaurant opened add to
	// the working-day base used for projections.
	if cfg.ExcludeSundays {
		result.WorkingDays += sundaysWithSales
	}

	return result
}

// CalculateDailyTarget spreads the remaining gap to a monthly target over the
// remaining working days. Met or passed targets yield 0.
func CalculateDailyTarget(monthlyTarget float64, totalWorkingDays, completedDays int, actualSales float64) float64 {
	remainingDays := totalWorkingDays - completedDays
	if remainingDays <= 0 {
		return 0
	}

	remainingTarget := monthlyTarget - actualSales
	if remainingTarget <= 0 {
		return 0
	}
	return remainingTarget / float64(remainingDays)
}

type MonthlyProjection struct {
	Projection     float64 `json:"projection"`
	DailyAverage   float64 `json:"dailyAverage"`
	CompletionRate float64 `json:"completionRate"`
	IsPartialMonth bool    `json:"isPartialMonth"`
}

// CalculateMonthlyProjection extrapolates the month's total from the daily
// average over the working days seen so far.
func CalculateMonthlyProjection(data []reportparser.SalesData, cfg BusinessDayConfig, now time.Time) MonthlyProjection {
	days := CalculateBusinessDays(data, cfg, now)

	var totalSales float64
	for _, day := range data {
		totalSales += day.TotalSales
	}

	var proj MonthlyProjection
	if days.ActualWorkingDays > 0 {
		proj.DailyAverage = totalSales / float64(days.ActualWorkingDays)
	}
	proj.Projection = proj.DailyAverage * float64(days.WorkingDays)
	if days.WorkingDays > 0 {
		proj.CompletionRate = float64(days.ActualWorkingDays) / float64(days.WorkingDays) * 100
	}
	proj.IsPartialMonth = days.ActualWorkingDays < days.WorkingDays

	return proj
}
