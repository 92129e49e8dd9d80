package reportparser

import (
	"regexp"
	"strings"
	"time"
)

// weekdayDatePattern locates a day-of-week token followed by a day of
// month (with optional ordinal suffix), a month name and a 4-digit year,
// e.g. "Monday, 6th January 2025" or "tuesday 7 january 2025".
var weekdayDatePattern = regexp.MustCompile(
	`(?i)(?:Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)\s*,?\s*(\d{1,2})(?:st|nd|rd|th)?\s+(\w+)\s+(\d{4})`)

// dateLayouts is the ordered fallback list tried against the plain
// "<day> <month> <year>" string built from a heading match. The first
// layout that parses to a valid calendar date wins.
var dateLayouts = []string{
	"02 January 2006",
	"2 January 2006",
	"January 2 2006",
	"January 02 2006",
	"02/01/2006",
	"2/1/2006",
}

const isoDateLayout = "2006-01-02"

// extractDateString scans a segment's joined text for a weekday-prefixed
// date heading and returns the plain "<day> <month> <year>" form of the
// first match. The month token is normalized to title case so that the
// layout list can stay case-sensitive.
func extractDateString(text string) (string, bool) {
	m := weekdayDatePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1] + " " + titleCase(m[2]) + " " + m[3], true
}

// tryParseDate attempts each known layout in order and returns the first
// valid calendar date. There is no fabricated fallback: total failure is
// reported to the caller.
func tryParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func formatISODate(t time.Time) string {
	return t.Format(isoDateLayout)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
