package reportparser

import (
	"regexp"
	"strconv"
	"strings"
)

// amountGroup is the shared amount grammar: thousands separators allowed,
// at most two decimal places, optional "$" prefix handled by the callers.
const amountGroup = `([\d,]+(?:\.\d{2})?)`

var (
	totalSalesPattern = regexp.MustCompile(`(?i)Total Sales\s*:?\s*\$?` + amountGroup)
	mtdSalesPattern   = regexp.MustCompile(`(?i)M\.T\.D Sales\s*:?\s*\$?` + amountGroup)

	// Payment-method lines are anchored to the line start and restricted to
	// the known method set. They are checked before the generic amount
	// matchers so a method name can never be swallowed by a label match.
	paymentMethodPattern = regexp.MustCompile(`(?i)^(Cash|Amex|MasterCard|Visa|NETS)\s*:?\s*\$?` + amountGroup)
)

// amountMatcher is one row of the generic label→field table: adding a new
// monetary field is adding a row, not writing a new matcher.
type amountMatcher struct {
	label  string
	re     *regexp.Regexp
	assign func(d *SalesData, amount float64)
}

// amountMatchers covers the time-windowed and category sales families.
// A single line may satisfy several rows ("Food: $10 Wine: $20"); rows are
// independent and all matches accumulate.
var amountMatchers = []amountMatcher{
	{label: `Happy Hour`, assign: func(d *SalesData, v float64) { d.HappyHourSales = &v }},
	{label: `Sales from 7pm (?:to|-) 10pm`, assign: func(d *SalesData, v float64) { d.SalesFrom7pmTo10pm = &v }},
	{label: `After 10pm Sales`, assign: func(d *SalesData, v float64) { d.After10pmSales = &v }},
	{label: `Food`, assign: func(d *SalesData, v float64) { d.FoodSales = &v }},
	{label: `Bar`, assign: func(d *SalesData, v float64) { d.BarSales = &v }},
	{label: `Wine`, assign: func(d *SalesData, v float64) { d.WineSales = &v }},
}

// customerMetric is one row of the label→counter table. Patterns tolerate
// a leading bullet and an optional trailing "pax" unit and match integers
// only.
type customerMetric struct {
	label  string
	re     *regexp.Regexp
	assign func(d *SalesData, value int)
}

var customerMetrics = []customerMetric{
	{label: `Total Reservation`, assign: func(d *SalesData, v int) { d.Reservations = &v }},
	{label: `Total Cancellation`, assign: func(d *SalesData, v int) { d.Cancellations = &v }},
	{label: `Total No Show`, assign: func(d *SalesData, v int) { d.NoShows = &v }},
	{label: `Total Walk-ins`, assign: func(d *SalesData, v int) { d.WalkIns = &v }},
	{label: `Received and Answered Phone Call`, assign: func(d *SalesData, v int) { d.PhoneCallsAnswered = &v }},
	{label: `Missed Phone Calls`, assign: func(d *SalesData, v int) { d.MissedPhoneCalls = &v }},
	{label: `Total Purezza`, assign: func(d *SalesData, v int) { d.Purezza = &v }},
}

// promotionPatterns in priority order: explicit amount, bulleted explicit
// amount, then the "Free" variant where the amount defaults to 0. All
// three require a set count; without one a line is not a promotion.
var promotionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(.*?):\s*\$?` + amountGroup + `\s*\((\d+)\s*sets?\)`),
	regexp.MustCompile(`(?i)^(?:•\s*)?(.*?):\s*\$?` + amountGroup + `\s*\((\d+)\s*sets?\)`),
	regexp.MustCompile(`(?i)^(?:•\s*)?(.*?):\s*(?:Free)?\s*(?:\$?` + amountGroup + `)?\s*\((\d+)\s*sets?\)`),
}

func init() {
	for i := range amountMatchers {
		amountMatchers[i].re = regexp.MustCompile(`(?i)` + amountMatchers[i].label + `\s*:?\s*\$?` + amountGroup)
	}
	for i := range customerMetrics {
		customerMetrics[i].re = regexp.MustCompile(`(?i)(?:•\s*)?` + customerMetrics[i].label + `\s*:?\s*(\d+)(?:\s*pax)?`)
	}
}

func matchTotalSales(line string) (float64, bool) {
	m := totalSalesPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	return ParseCurrency(m[1]), true
}

func matchMTDSales(line string) (float64, bool) {
	m := mtdSalesPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	return ParseCurrency(m[1]), true
}

func matchPaymentMethod(line string) (method string, amount float64, ok bool) {
	m := paymentMethodPattern.FindStringSubmatch(line)
	if m == nil {
		return "", 0, false
	}
	return strings.TrimSpace(m[1]), ParseCurrency(m[2]), true
}

// applyAmountMatchers runs every row of the amount table against the line,
// assigning each hit. Returns true if any row fired.
func applyAmountMatchers(d *SalesData, line string) bool {
	matched := false
	for _, am := range amountMatchers {
		if m := am.re.FindStringSubmatch(line); m != nil {
			am.assign(d, ParseCurrency(m[1]))
			matched = true
		}
	}
	return matched
}

func matchPromotion(line string) (Promotion, bool) {
	for _, re := range promotionPatterns {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		sets, err := strconv.Atoi(m[3])
		if err != nil {
			continue
		}
		promo := Promotion{
			Name: strings.TrimSpace(m[1]),
			Sets: sets,
		}
		if m[2] != "" {
			promo.Amount = ParseCurrency(m[2])
		}
		return promo, true
	}
	return Promotion{}, false
}

// applyCustomerMetric runs the counter table against the line and assigns
// the first hit.
func applyCustomerMetric(d *SalesData, line string) bool {
	for _, cm := range customerMetrics {
		if m := cm.re.FindStringSubmatch(line); m != nil {
			v, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			cm.assign(d, v)
			return true
		}
	}
	return false
}
