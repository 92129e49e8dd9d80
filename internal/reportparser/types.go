package reportparser

// Promotion is one promotion line from a daily report, in encounter order.
// Amount can legitimately be zero (a "Free" promotion); Sets is always a
// positive quantity.
type Promotion struct {
	Name   string  `json:"name" validate:"required"`
	Amount float64 `json:"amount" validate:"gte=0"`
	Sets   int     `json:"sets" validate:"gt=0"`
}

// SalesData is one business day's extracted performance record.
//
// Optional fields are pointers: an absent field and a reported zero are
// different things, and the distinction is only collapsed during
// aggregation, never in the record itself.
type SalesData struct {
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"`
	TotalSales float64 `json:"totalSales" validate:"gte=0"`

	// Time-windowed sales
	HappyHourSales     *float64 `json:"happyHourSales,omitempty" validate:"omitempty,gte=0"`
	SalesFrom7pmTo10pm *float64 `json:"salesFrom7pmTo10pm,omitempty" validate:"omitempty,gte=0"`
	After10pmSales     *float64 `json:"after10pmSales,omitempty" validate:"omitempty,gte=0"`

	// Category sales
	FoodSales *float64 `json:"foodSales,omitempty" validate:"omitempty,gte=0"`
	BarSales  *float64 `json:"barSales,omitempty" validate:"omitempty,gte=0"`
	WineSales *float64 `json:"wineSales,omitempty" validate:"omitempty,gte=0"`

	PaymentMethods map[string]float64 `json:"paymentMethods" validate:"dive,gte=0"`
	Promotions     []Promotion        `json:"promotions" validate:"dive"`

	// Customer-flow counters
	Reservations       *int `json:"reservations,omitempty" validate:"omitempty,gte=0"`
	Cancellations      *int `json:"cancellations,omitempty" validate:"omitempty,gte=0"`
	NoShows            *int `json:"noShows,omitempty" validate:"omitempty,gte=0"`
	WalkIns            *int `json:"walkIns,omitempty" validate:"omitempty,gte=0"`
	PhoneCallsAnswered *int `json:"phoneCallsAnswered,omitempty" validate:"omitempty,gte=0"`
	MissedPhoneCalls   *int `json:"missedPhoneCalls,omitempty" validate:"omitempty,gte=0"`
	Purezza            *int `json:"purezza,omitempty" validate:"omitempty,gte=0"`

	// Derived fields, only ever written by ComputeDerived
	TotalPax     int     `json:"totalPax"`
	PerHeadSpend float64 `json:"perHeadSpend" validate:"gte=0"`

	// Month-to-date running total, independent of TotalSales
	MTDSales *float64 `json:"mtdSales,omitempty" validate:"omitempty,gte=0"`

	// Extension points for fields not yet modeled
	Miscellaneous map[string]any `json:"miscellaneous"`
	Entertainment map[string]any `json:"entertainment"`
}

// SkipReason explains why a day-segment did not yield a record.
type SkipReason string

const (
	SkipEmpty        SkipReason = "empty"
	SkipNoDate       SkipReason = "no-date"
	SkipNoTotalSales SkipReason = "no-total-sales"
)

// SkippedSegment records a dropped day-segment so that callers can tell
// "no report for that day" apart from "segment failed to parse".
type SkippedSegment struct {
	Index   int        `json:"index"`
	Reason  SkipReason `json:"reason"`
	Preview string     `json:"preview"`
}

// ParseResult is the outcome of one parse invocation: admitted records in
// source order plus the segments that were dropped.
type ParseResult struct {
	Records []SalesData      `json:"records"`
	Skipped []SkippedSegment `json:"skipped,omitempty"`
}

// ComputeDerived recomputes TotalPax and PerHeadSpend from the raw
// counters. It is the single authoritative derivation point: the assembler
// calls it once per admitted record, and any later edit to the record must
// go through it again.
func ComputeDerived(d *SalesData) {
	pax := IntValue(d.Reservations) + IntValue(d.WalkIns) -
		IntValue(d.Cancellations) - IntValue(d.NoShows)
	d.TotalPax = pax
	if pax > 0 {
		d.PerHeadSpend = d.TotalSales / float64(pax)
	} else {
		d.PerHeadSpend = 0
	}
}

// IntValue collapses an optional counter to its aggregation default.
func IntValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// FloatValue collapses an optional amount to its aggregation default.
func FloatValue(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
