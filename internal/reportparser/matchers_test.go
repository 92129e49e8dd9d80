package reportparser

import "testing"

func TestMatchTotalSales(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"Total Sales: $5,230.50", 5230.50, true},
		{"total sales $900", 900, true},
		{"Total Sales 1200.00", 1200, true},
		{"M.T.D Sales: $45,000.00", 0, false},
		{"Food: $300", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := matchTotalSales(tt.input)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.expected {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMatchMTDSales(t *testing.T) {
	got, ok := matchMTDSales("M.T.D Sales: $45,000.00")
	if !ok || got != 45000 {
		t.Errorf("got (%v, %v), want (45000, true)", got, ok)
	}
	if _, ok := matchMTDSales("Total Sales: $100"); ok {
		t.Error("total sales line must not match MTD")
	}
}

func TestAmountMatcherTable(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, d *SalesData)
	}{
		{
			name:  "happy hour",
			input: "Happy Hour: $820.00",
			check: func(t *testing.T, d *SalesData) {
				if FloatValue(d.HappyHourSales) != 820 {
					t.Errorf("HappyHourSales = %v", d.HappyHourSales)
				}
			},
		},
		{
			name:  "evening window with to",
			input: "Sales from 7pm to 10pm: $2,400.00",
			check: func(t *testing.T, d *SalesData) {
				if FloatValue(d.SalesFrom7pmTo10pm) != 2400 {
					t.Errorf("SalesFrom7pmTo10pm = %v", d.SalesFrom7pmTo10pm)
				}
			},
		},
		{
			name:  "evening window with dash",
			input: "Sales from 7pm - 10pm: $2,100",
			check: func(t *testing.T, d *SalesData) {
				if FloatValue(d.SalesFrom7pmTo10pm) != 2100 {
					t.Errorf("SalesFrom7pmTo10pm = %v", d.SalesFrom7pmTo10pm)
				}
			},
		},
		{
			name:  "late night",
			input: "After 10pm Sales: $1,100",
			check: func(t *testing.T, d *SalesData) {
				if FloatValue(d.After10pmSales) != 1100 {
					t.Errorf("After10pmSales = %v", d.After10pmSales)
				}
			},
		},
		{
			name:  "two categories on one line",
			input: "Food: $3,000.00 Wine: $730.50",
			check: func(t *testing.T, d *SalesData) {
				if FloatValue(d.FoodSales) != 3000 {
					t.Errorf("FoodSales = %v", d.FoodSales)
				}
				if FloatValue(d.WineSales) != 730.50 {
					t.Errorf("WineSales = %v", d.WineSales)
				}
			},
		},
		{
			name:  "bar",
			input: "bar $1,500",
			check: func(t *testing.T, d *SalesData) {
				if FloatValue(d.BarSales) != 1500 {
					t.Errorf("BarSales = %v", d.BarSales)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d SalesData
			if !applyAmountMatchers(&d, tt.input) {
				t.Fatal("no amount matcher fired")
			}
			tt.check(t, &d)
		})
	}
}

func TestAmountMatchersNoMatch(t *testing.T) {
	var d SalesData
	if applyAmountMatchers(&d, "Total Reservation: 45") {
		t.Error("counter line must not fire the amount table")
	}
}

func TestMatchPaymentMethod(t *testing.T) {
	tests := []struct {
		input  string
		method string
		amount float64
		ok     bool
	}{
		{"Cash: $1,200", "Cash", 1200, true},
		{"Visa $2,530.50", "Visa", 2530.50, true},
		{"NETS: 75.00", "NETS", 75, true},
		{"MasterCard: $610", "MasterCard", 610, true},
		{"Amex: $1,500", "Amex", 1500, true},
		{"Paid in Cash: $100", "", 0, false}, // must start the line
		{"Cheque: $100", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			method, amount, ok := matchPaymentMethod(tt.input)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if method != tt.method || amount != tt.amount {
				t.Errorf("got (%q, %v), want (%q, %v)", method, amount, tt.method, tt.amount)
			}
		})
	}
}

func TestMatchPromotion(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Promotion
		ok       bool
	}{
		{
			name:     "amount with sets",
			input:    "Buy 1 Get 1: $20 (2 sets)",
			expected: Promotion{Name: "Buy 1 Get 1", Amount: 20, Sets: 2},
			ok:       true,
		},
		{
			name:     "free promotion defaults to zero",
			input:    "Free Dessert: Free (1 set)",
			expected: Promotion{Name: "Free Dessert", Amount: 0, Sets: 1},
			ok:       true,
		},
		{
			name:     "bulleted promotion",
			input:    "• Ladies Night: $150.00 (3 sets)",
			expected: Promotion{Name: "Ladies Night", Amount: 150, Sets: 3},
			ok:       true,
		},
		{
			name:  "no set count is not a promotion",
			input: "Ladies Night: $150.00",
			ok:    false,
		},
		{
			name:  "counter line is not a promotion",
			input: "Total Reservation: 45",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := matchPromotion(tt.input)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.expected {
				t.Errorf("got %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestApplyCustomerMetric(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(d *SalesData) (int, *int)
	}{
		{"reservations", "Total Reservation: 45", func(d *SalesData) (int, *int) { return 45, d.Reservations }},
		{"cancellations", "Total Cancellation: 5", func(d *SalesData) (int, *int) { return 5, d.Cancellations }},
		{"no shows", "Total No Show: 3", func(d *SalesData) (int, *int) { return 3, d.NoShows }},
		{"walk-ins with pax unit", "Total Walk-ins: 20 pax", func(d *SalesData) (int, *int) { return 20, d.WalkIns }},
		{"bulleted walk-ins", "• Total Walk-ins 12", func(d *SalesData) (int, *int) { return 12, d.WalkIns }},
		{"answered calls", "Received and Answered Phone Call: 32", func(d *SalesData) (int, *int) { return 32, d.PhoneCallsAnswered }},
		{"missed calls", "Missed Phone Calls: 4", func(d *SalesData) (int, *int) { return 4, d.MissedPhoneCalls }},
		{"purezza", "Total Purezza: 6", func(d *SalesData) (int, *int) { return 6, d.Purezza }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d SalesData
			if !applyCustomerMetric(&d, tt.input) {
				t.Fatal("no customer metric fired")
			}
			want, got := tt.check(&d)
			if got == nil || *got != want {
				t.Errorf("got %v, want %d", got, want)
			}
		})
	}
}

func TestCustomerMetricIntegerOnly(t *testing.T) {
	var d SalesData
	// "45.5" still matches the integer part; the decimals are not consumed.
	if !applyCustomerMetric(&d, "Total Reservation: 45.5") {
		t.Fatal("expected integer prefix match")
	}
	if d.Reservations == nil || *d.Reservations != 45 {
		t.Errorf("Reservations = %v, want 45", d.Reservations)
	}
}
