package analytics

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"salesdash-backend/internal/reportparser"
	"salesdash-backend/internal/sales"

	"github.com/gofiber/fiber/v2"
)

func monthRange(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, -1)
}

func quarterRange(year, quarter int) (time.Time, time.Time) {
	from := time.Date(year, time.Month((quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 3, -1)
}

func queryInt(c *fiber.Ctx, name string, min, max int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" is required")
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min || v > max {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" is invalid")
	}
	return v, nil
}

// -------------------------------------------------
// GET /api/analytics/monthly?year=2025&month=1&target=150000
// -------------------------------------------------
func MonthlyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, err := queryInt(c, "year", 2000, 2100)
		if err != nil {
			return err
		}
		month, err := queryInt(c, "month", 1, 12)
		if err != nil {
			return err
		}

		from, to := monthRange(year, month)
		data, err := sales.LoadRecords(&from, &to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load sales records")
		}

		now := time.Now()
		cfg := DefaultBusinessDayConfig()
		days := CalculateBusinessDays(data, cfg, now)
		projection := CalculateMonthlyProjection(data, cfg, now)
		stats := GetMonthStats(data)

		resp := fiber.Map{
			"year":           year,
			"month":          month,
			"stats":          stats,
			"businessDays":   days,
			"projection":     projection,
			"categoryTotals": CalculateCategoryTotals(data),
			"paymentMethods": CalculatePaymentMethodTotals(data),
		}

		if targetStr := c.Query("target"); targetStr != "" {
			target, err := strconv.ParseFloat(targetStr, 64)
			if err != nil || target < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "target is invalid")
			}
			resp["dailyTarget"] = CalculateDailyTarget(target, days.WorkingDays, days.ActualWorkingDays, stats.TotalSales)
		}

		return c.JSON(resp)
	}
}

// -------------------------------------------------
// GET /api/analytics/quarterly?year=2025&quarter=1
// -------------------------------------------------
func QuarterlyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, err := queryInt(c, "year", 2000, 2100)
		if err != nil {
			return err
		}
		quarter, err := queryInt(c, "quarter", 1, 4)
		if err != nil {
			return err
		}

		from, to := quarterRange(year, quarter)
		data, err := sales.LoadRecords(&from, &to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load sales records")
		}

		return c.JSON(fiber.Map{
			"year":           year,
			"quarter":        quarter,
			"stats":          GetQuarterStats(data),
			"monthly":        monthStatsByKey(data),
			"categoryTotals": CalculateCategoryTotals(data),
			"paymentMethods": CalculatePaymentMethodTotals(data),
		})
	}
}

func monthStatsByKey(data []reportparser.SalesData) map[string]MonthStats {
	out := make(map[string]MonthStats)
	for key, month := range GroupByMonth(data) {
		out[key] = GetMonthStats(month)
	}
	return out
}

// -------------------------------------------------
// GET /api/analytics/yearly?year=2025
// -------------------------------------------------
func YearlyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, err := queryInt(c, "year", 2000, 2100)
		if err != nil {
			return err
		}

		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		data, err := sales.LoadRecords(&from, &to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load sales records")
		}

		quarters := make(map[string]QuarterStats)
		for key, quarter := range GroupByQuarter(data) {
			quarters[key] = GetQuarterStats(quarter)
		}

		return c.JSON(fiber.Map{
			"year":           year,
			"stats":          GetYearlyStats(data),
			"monthly":        monthStatsByKey(data),
			"quarterly":      quarters,
			"categoryTotals": CalculateCategoryTotals(data),
			"paymentMethods": CalculatePaymentMethodTotals(data),
		})
	}
}

var (
	monthKeyPattern   = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	quarterKeyPattern = regexp.MustCompile(`^(\d{4})-Q([1-4])$`)
)

// periodRange resolves a period key of the form "2025-01" (month) or
// "2025-Q1" (quarter) to its inclusive date range.
func periodRange(key string) (time.Time, time.Time, error) {
	if m := monthKeyPattern.FindStringSubmatch(key); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid month in period %q", key)
		}
		from, to := monthRange(year, month)
		return from, to, nil
	}
	if m := quarterKeyPattern.FindStringSubmatch(key); m != nil {
		year, _ := strconv.Atoi(m[1])
		quarter, _ := strconv.Atoi(m[2])
		from, to := quarterRange(year, quarter)
		return from, to, nil
	}
	return time.Time{}, time.Time{}, fmt.Errorf("period %q must look like '2025-01' or '2025-Q1'", key)
}

// -------------------------------------------------
// GET /api/analytics/comparison?period1=2025-01&period2=2025-02
// -------------------------------------------------
func ComparisonHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key1 := c.Query("period1")
		key2 := c.Query("period2")
		if key1 == "" || key2 == "" {
			return fiber.NewError(fiber.StatusBadRequest, "period1 and period2 are required")
		}

		now := time.Now()
		stats := make([]PeriodStats, 2)
		for i, key := range []string{key1, key2} {
			from, to, err := periodRange(key)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			data, err := sales.LoadRecords(&from, &to)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "failed to load sales records")
			}
			stats[i] = CalculatePeriodStats(data, now)
		}

		changes := fiber.Map{
			"totalSales":        CalculatePercentageChange(stats[1].TotalSales, stats[0].TotalSales),
			"averageDailySales": CalculatePercentageChange(stats[1].AverageDailySales, stats[0].AverageDailySales),
			"totalCustomers":    CalculatePercentageChange(stats[1].CustomerMetrics.TotalCustomers, stats[0].CustomerMetrics.TotalCustomers),
			"answerRate":        CalculatePercentageChange(stats[1].ServiceMetrics.AnswerRate, stats[0].ServiceMetrics.AnswerRate),
		}

		return c.JSON(fiber.Map{
			"period1": stats[0],
			"period2": stats[1],
			"changes": changes,
		})
	}
}
