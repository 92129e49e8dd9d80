package sales

import (
	"reflect"
	"testing"

	"salesdash-backend/internal/reportparser"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func sampleDay() reportparser.SalesData {
	return reportparser.SalesData{
		Date:               "2025-01-06",
		TotalSales:         5230.50,
		HappyHourSales:     fp(820),
		FoodSales:          fp(3000),
		BarSales:           fp(1500),
		WineSales:          fp(730.50),
		Reservations:       ip(45),
		WalkIns:            ip(20),
		Cancellations:      ip(5),
		NoShows:            ip(3),
		PhoneCallsAnswered: ip(32),
		MissedPhoneCalls:   ip(4),
		Purezza:            ip(6),
		TotalPax:           57,
		PerHeadSpend:       5230.50 / 57,
		MTDSales:           fp(45000),
		PaymentMethods:     map[string]float64{"Visa": 2530.50, "Cash": 1200, "Amex": 1500},
		Promotions: []reportparser.Promotion{
			{Name: "Buy 1 Get 1", Amount: 20, Sets: 2},
			{Name: "Free Dessert", Amount: 0, Sets: 1},
		},
		Miscellaneous: map[string]any{"note": "private event upstairs"},
	}
}

func TestToModelRoundTrip(t *testing.T) {
	src := sampleDay()

	rec, err := toModel(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := toSalesData(rec)

	if !reflect.DeepEqual(got, src) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, src)
	}
}

func TestToModelSortsPaymentChildren(t *testing.T) {
	rec, err := toModel(sampleDay())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Amex", "Cash", "Visa"}
	if len(rec.PaymentMethods) != len(want) {
		t.Fatalf("got %d payment children, want %d", len(rec.PaymentMethods), len(want))
	}
	for i, pm := range rec.PaymentMethods {
		if pm.Method != want[i] {
			t.Errorf("child %d = %q, want %q", i, pm.Method, want[i])
		}
	}
}

func TestToModelPreservesPromotionOrder(t *testing.T) {
	rec, err := toModel(sampleDay())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rec.Promotions) != 2 {
		t.Fatalf("got %d promotions, want 2", len(rec.Promotions))
	}
	if rec.Promotions[0].Name != "Buy 1 Get 1" || rec.Promotions[1].Name != "Free Dessert" {
		t.Errorf("promotion order = %q, %q", rec.Promotions[0].Name, rec.Promotions[1].Name)
	}
	if rec.Promotions[1].Amount != 0 || rec.Promotions[1].Sets != 1 {
		t.Errorf("free promotion = %+v", rec.Promotions[1])
	}
}

func TestToModelRejectsBadDate(t *testing.T) {
	src := sampleDay()
	src.Date = "06/01/2025"

	if _, err := toModel(src); err == nil {
		t.Error("non-ISO date must be rejected")
	}
}

func TestMarshalSection(t *testing.T) {
	if got := marshalSection(nil); got != "null" {
		t.Errorf("nil section = %q, want null", got)
	}
	if got := marshalSection(map[string]any{}); got != "null" {
		t.Errorf("empty section = %q, want null", got)
	}
	if got := unmarshalSection("null"); got != nil {
		t.Errorf("null section = %v, want nil", got)
	}
	round := unmarshalSection(marshalSection(map[string]any{"k": "v"}))
	if round["k"] != "v" {
		t.Errorf("round trip = %v", round)
	}
}
