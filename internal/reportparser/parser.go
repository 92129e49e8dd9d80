package reportparser

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Parser turns free-form multi-day report text into validated-shape
// SalesData records. It holds no mutable state between calls: parsing is a
// pure function of its input, and concurrent calls need no coordination.
type Parser struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log}
}

var (
	// dayHeadingPattern marks the start of a new day-segment: an optionally
	// asterisk-wrapped weekday-prefixed date heading.
	dayHeadingPattern = regexp.MustCompile(
		`(?i)\*?(?:Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)\s*,?\s*\d{1,2}(?:st|nd|rd|th)?\s+\w+\s+\d{4}\*?`)

	// bracketHeadingPattern is the alternate heading form some exports use,
	// e.g. "[26/12, 22:41] ...".
	bracketHeadingPattern = regexp.MustCompile(`\[[\d/]+,`)

	// strippedChars removes bullets, brackets, asterisks and the zero-width
	// characters that chat exports sprinkle into pasted reports.
	strippedChars = regexp.MustCompile("[*\\[\\]\u2022\u2028\u2029\u200B\u200C\u200D\u2060]")
)

// Parse splits the raw report into day-segments, assembles a record per
// segment and returns admitted records in source order (not necessarily
// chronological; sorting is the caller's concern) along with a skip entry
// for every segment that failed admission. Any unexpected panic inside
// matching aborts the whole call with one umbrella error and no partial
// output.
func (p *Parser) Parse(report string) (result *ParseResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("failed to parse the report: %v", r)
		}
	}()

	result = &ParseResult{Records: []SalesData{}}

	for i, segment := range splitDayReports(report) {
		data, reason, ok := p.parseSegment(segment)
		if !ok {
			result.Skipped = append(result.Skipped, SkippedSegment{
				Index:   i,
				Reason:  reason,
				Preview: segmentPreview(segment),
			})
			continue
		}
		result.Records = append(result.Records, data)
	}

	return result, nil
}

// splitDayReports partitions the raw text at every point where a day
// heading begins. The first segment always starts at position 0, so text
// before the first heading stays attached to the first segment.
func splitDayReports(report string) []string {
	var bounds []int
	for _, loc := range dayHeadingPattern.FindAllStringIndex(report, -1) {
		bounds = append(bounds, loc[0])
	}
	for _, loc := range bracketHeadingPattern.FindAllStringIndex(report, -1) {
		bounds = append(bounds, loc[0])
	}
	sort.Ints(bounds)
	if len(bounds) == 0 || bounds[0] != 0 {
		bounds = append([]int{0}, bounds...)
	}

	var segments []string
	for i, start := range bounds {
		if i > 0 && start == bounds[i-1] {
			continue
		}
		end := len(report)
		if i+1 < len(bounds) {
			end = bounds[i+1]
		}
		if seg := report[start:end]; strings.TrimSpace(seg) != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

// normalizeLines strips decoration characters, trims and drops empties.
func normalizeLines(segment string) []string {
	raw := strings.Split(segment, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(strippedChars.ReplaceAllString(l, ""))
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// parseSegment scans one day-segment. Matchers accumulate into the draft
// record; the segment is admitted only when both a date and a total-sales
// figure were resolved.
func (p *Parser) parseSegment(segment string) (SalesData, SkipReason, bool) {
	data := SalesData{
		PaymentMethods: map[string]float64{},
		Promotions:     []Promotion{},
		Miscellaneous:  map[string]any{},
		Entertainment:  map[string]any{},
	}

	lines := normalizeLines(segment)
	if len(lines) == 0 {
		return data, SkipEmpty, false
	}

	// Date extraction runs once over the whole segment, first match wins.
	if plain, found := extractDateString(strings.Join(lines, " ")); found {
		if t, ok := tryParseDate(plain); ok {
			data.Date = formatISODate(t)
		} else {
			p.log.Warn("report date matched no known layout", zap.String("date", plain))
		}
	}

	hasTotalSales := false
	for _, line := range lines {
		if v, ok := matchTotalSales(line); ok {
			data.TotalSales = v
			hasTotalSales = true
			continue
		}

		// Payment methods before the generic amount table; a later line for
		// the same method overwrites the earlier one.
		if method, amount, ok := matchPaymentMethod(line); ok {
			data.PaymentMethods[method] = amount
			continue
		}

		// Time-window and category rows accumulate without consuming the
		// line: one line may carry several labeled amounts.
		applyAmountMatchers(&data, line)

		if promo, ok := matchPromotion(line); ok {
			data.Promotions = append(data.Promotions, promo)
			continue
		}

		if applyCustomerMetric(&data, line) {
			continue
		}

		if v, ok := matchMTDSales(line); ok {
			data.MTDSales = &v
			continue
		}
	}

	if data.Date == "" {
		return data, SkipNoDate, false
	}
	if !hasTotalSales {
		return data, SkipNoTotalSales, false
	}

	ComputeDerived(&data)
	return data, "", true
}

func segmentPreview(segment string) string {
	s := strings.TrimSpace(strippedChars.ReplaceAllString(segment, ""))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if r := []rune(s); len(r) > 80 {
		s = string(r[:80]) + "…"
	}
	return s
}
