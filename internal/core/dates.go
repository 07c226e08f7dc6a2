package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// excelEpoch is day zero of the 1900 date system as spreadsheets serialize
// it (the off-by-two of the Lotus leap-year bug already folded in).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var (
	isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	brDateRe  = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
)

// fallbackLayouts are tried last, in order, for values that are neither
// serials nor ISO nor DD/MM/YYYY.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02-01-2006",
	"Jan 2, 2006",
}

// ParseDate converts a raw cell value into a date. It accepts a numeric
// Excel serial (days since 1899-12-30, fractional part allowed), an ISO
// "YYYY-MM-DD" string, a Brazilian "DD/MM/YYYY" string, or one of a few
// generic layouts. ok is false on total failure; no error is ever raised.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	// Spreadsheet cells formatted as dates reach us as plain serial numbers.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		d := time.Duration(serial * 24 * float64(time.Hour))
		return excelEpoch.Add(d), true
	}

	if isoDateRe.MatchString(s) {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	if m := brDateRe.FindStringSubmatch(s); m != nil {
		t, err := time.Parse("2006-01-02", fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1]))
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsISODate reports whether a string is shaped like "YYYY-MM-DD". The
// importer uses it to reject date-shaped installment labels.
func IsISODate(s string) bool {
	return isoDateRe.MatchString(s)
}

// ToISODate formats a date as "YYYY-MM-DD", or "" for the zero time.
func ToISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// MonthKey formats a date as the "YYYY-MM" billing-month key, or "" for the
// zero time.
func MonthKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01")
}
