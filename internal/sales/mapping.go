package sales

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"salesdash-backend/internal/models"
	"salesdash-backend/internal/reportparser"
)

const dateLayout = "2006-01-02"

// toModel converts a parsed day record into its persistent form. Payment
// methods are emitted in sorted order so repeated imports of the same report
// produce identical child rows.
func toModel(d reportparser.SalesData) (models.SalesRecord, error) {
	date, err := time.Parse(dateLayout, d.Date)
	if err != nil {
		return models.SalesRecord{}, fmt.Errorf("invalid record date %q: %w", d.Date, err)
	}

	rec := models.SalesRecord{
		Date:               date,
		TotalSales:         d.TotalSales,
		HappyHourSales:     d.HappyHourSales,
		SalesFrom7pmTo10pm: d.SalesFrom7pmTo10pm,
		After10pmSales:     d.After10pmSales,
		FoodSales:          d.FoodSales,
		BarSales:           d.BarSales,
		WineSales:          d.WineSales,
		Reservations:       d.Reservations,
		Cancellations:      d.Cancellations,
		NoShows:            d.NoShows,
		WalkIns:            d.WalkIns,
		PhoneCallsAnswered: d.PhoneCallsAnswered,
		MissedPhoneCalls:   d.MissedPhoneCalls,
		Purezza:            d.Purezza,
		TotalPax:           d.TotalPax,
		PerHeadSpend:       d.PerHeadSpend,
		MTDSales:           d.MTDSales,
		Miscellaneous:      marshalSection(d.Miscellaneous),
		Entertainment:      marshalSection(d.Entertainment),
	}

	methods := make([]string, 0, len(d.PaymentMethods))
	for m := range d.PaymentMethods {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	for _, m := range methods {
		rec.PaymentMethods = append(rec.PaymentMethods, models.SalesPaymentMethod{
			Method: m,
			Amount: d.PaymentMethods[m],
		})
	}

	for _, p := range d.Promotions {
		rec.Promotions = append(rec.Promotions, models.SalesPromotion{
			Name:   p.Name,
			Amount: p.Amount,
			Sets:   p.Sets,
		})
	}

	return rec, nil
}

// toSalesData converts a persisted record back into the wire/parse shape.
func toSalesData(rec models.SalesRecord) reportparser.SalesData {
	d := reportparser.SalesData{
		Date:               rec.Date.Format(dateLayout),
		TotalSales:         rec.TotalSales,
		HappyHourSales:     rec.HappyHourSales,
		SalesFrom7pmTo10pm: rec.SalesFrom7pmTo10pm,
		After10pmSales:     rec.After10pmSales,
		FoodSales:          rec.FoodSales,
		BarSales:           rec.BarSales,
		WineSales:          rec.WineSales,
		Reservations:       rec.Reservations,
		Cancellations:      rec.Cancellations,
		NoShows:            rec.NoShows,
		WalkIns:            rec.WalkIns,
		PhoneCallsAnswered: rec.PhoneCallsAnswered,
		MissedPhoneCalls:   rec.MissedPhoneCalls,
		Purezza:            rec.Purezza,
		TotalPax:           rec.TotalPax,
		PerHeadSpend:       rec.PerHeadSpend,
		MTDSales:           rec.MTDSales,
		Miscellaneous:      unmarshalSection(rec.Miscellaneous),
		Entertainment:      unmarshalSection(rec.Entertainment),
		PaymentMethods:     map[string]float64{},
	}

	for _, pm := range rec.PaymentMethods {
		d.PaymentMethods[pm.Method] = pm.Amount
	}
	for _, p := range rec.Promotions {
		d.Promotions = append(d.Promotions, reportparser.Promotion{
			Name:   p.Name,
			Amount: p.Amount,
			Sets:   p.Sets,
		})
	}

	return d
}

func marshalSection(m map[string]any) string {
	if len(m) == 0 {
		return "null"
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "null"
	}
	return string(b)
}

func unmarshalSection(s string) map[string]any {
	if s == "" || s == "null" {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil
	}
	return m
}
