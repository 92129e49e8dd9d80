package dashboard

import (
	"fmt"
	"sort"
	"time"

	"salesdash-backend/internal/database"

	"github.com/gofiber/fiber/v2"
)

type SalesChartPoint struct {
	Label string  `json:"label"` // day / week start / month start
	Total float64 `json:"total"`
	Food  float64 `json:"food"`
	Bar   float64 `json:"bar"`
	Wine  float64 `json:"wine"`
}

type SalesChartGrandTotals struct {
	Total float64 `json:"total"`
	Food  float64 `json:"food"`
	Bar   float64 `json:"bar"`
	Wine  float64 `json:"wine"`
}

type SalesChartResponse struct {
	Period      string                `json:"period"` // daily | weekly | monthly
	From        string                `json:"from"`
	To          string                `json:"to"`
	Points      []SalesChartPoint     `json:"points"`
	GrandTotals SalesChartGrandTotals `json:"grand_totals"`
}

// GET /api/dashboard/sales-chart?period=daily&count=7
func SalesChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		period := c.Query("period", "daily") // daily | weekly | monthly
		countStr := c.Query("count", "")

		var count int
		if countStr == "" {
			switch period {
			case "weekly":
				count = 8
			case "monthly":
				count = 12
			default:
				period = "daily"
				count = 7
			}
		} else {
			if _, err := fmt.Sscan(countStr, &count); err != nil || count <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "count is invalid")
			}
		}

		now := time.Now()
		loc := now.Location()
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		var start time.Time

		switch period {
		case "weekly":
			start = end.AddDate(0, 0, -7*(count-1))
		case "monthly":
			end = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
			start = end.AddDate(0, -(count - 1), 0)
			end = start.AddDate(0, count, 0).AddDate(0, 0, -1)
		default:
			period = "daily"
			start = end.AddDate(0, 0, -(count - 1))
		}

		type row struct {
			Bucket time.Time `gorm:"column:bucket"`
			Total  float64   `gorm:"column:total"`
			Food   float64   `gorm:"column:food"`
			Bar    float64   `gorm:"column:bar"`
			Wine   float64   `gorm:"column:wine"`
		}
		var rows []row

		var bucketExpr string
		switch period {
		case "weekly":
			bucketExpr = "date_trunc('week', date)::date"
		case "monthly":
			bucketExpr = "date_trunc('month', date)::date"
		default:
			bucketExpr = "date::date"
		}

		sql := fmt.Sprintf(`
			SELECT %s AS bucket,
				   SUM(total_sales) AS total,
				   SUM(COALESCE(food_sales, 0)) AS food,
				   SUM(COALESCE(bar_sales, 0)) AS bar,
				   SUM(COALESCE(wine_sales, 0)) AS wine
			FROM sales_records
			WHERE date >= ? AND date <= ?
			GROUP BY bucket
			ORDER BY bucket ASC;
		`, bucketExpr)

		if err := database.DB.Raw(sql, start, end).Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to aggregate sales")
		}

		sort.Slice(rows, func(i, j int) bool { return rows[i].Bucket.Before(rows[j].Bucket) })

		points := make([]SalesChartPoint, 0, len(rows))
		grand := SalesChartGrandTotals{}

		for _, r := range rows {
			points = append(points, SalesChartPoint{
				Label: r.Bucket.Format("2006-01-02"),
				Total: r.Total,
				Food:  r.Food,
				Bar:   r.Bar,
				Wine:  r.Wine,
			})

			grand.Total += r.Total
			grand.Food += r.Food
			grand.Bar += r.Bar
			grand.Wine += r.Wine
		}

		return c.JSON(SalesChartResponse{
			Period:      period,
			From:        start.Format("2006-01-02"),
			To:          end.Format("2006-01-02"),
			Points:      points,
			GrandTotals: grand,
		})
	}
}
