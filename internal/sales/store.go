package sales

import (
	"time"

	"salesdash-backend/internal/database"
	"salesdash-backend/internal/models"
	"salesdash-backend/internal/reportparser"
)

// LoadRecords reads persisted day records in date order, optionally bounded
// by an inclusive [from, to] range. It is the read path analytics builds on.
func LoadRecords(from, to *time.Time) ([]reportparser.SalesData, error) {
	dbq := database.DB.Model(&models.SalesRecord{}).
		Preload("PaymentMethods").
		Preload("Promotions")

	if from != nil {
		dbq = dbq.Where("date >= ?", *from)
	}
	if to != nil {
		dbq = dbq.Where("date <= ?", *to)
	}

	var recs []models.SalesRecord
	if err := dbq.Order("date asc").Find(&recs).Error; err != nil {
		return nil, err
	}

	out := make([]reportparser.SalesData, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toSalesData(rec))
	}
	return out, nil
}
