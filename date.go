package ratedoc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Date is the canonical calendar key of a decision.
// Day is not validated against the month's length: "31. februar" is kept as-is.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// String returns the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Before reports whether d sorts before other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// ParseDateString parses a YYYY-MM-DD string produced by Date.String.
func ParseDateString(s string) (Date, error) {
	m := isoDateRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Date{}, Errorf(EINVALID, "invalid date %q", s)
	}
	d := Date{Year: atoi(m[1]), Month: atoi(m[2]), Day: atoi(m[3])}
	if !validMonthDay(d.Month, d.Day) {
		return Date{}, Errorf(EINVALID, "invalid date %q", s)
	}
	return d, nil
}

// Months lists the Norwegian month names in calendar order.
var Months = [12]string{
	"januar", "februar", "mars", "april", "mai", "juni",
	"juli", "august", "september", "oktober", "november", "desember",
}

var (
	monthAlt = "(" + strings.Join(Months[:], "|") + ")"

	dayMonthYearRe = regexp.MustCompile(`(?i)(\d{1,2})\s*\.?\s*` + monthAlt + `\s+(\d{4})`)
	dayFirstRe     = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{4})`)
	yearFirstRe    = regexp.MustCompile(`(\d{4})[/-](\d{1,2})[/-](\d{1,2})`)
	dayMonthRe     = regexp.MustCompile(`(?i)(\d{1,2})\s*\.?\s*` + monthAlt)
	monthRe        = regexp.MustCompile(`(?i)\b` + monthAlt + `\b`)
	yearRe         = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
	isoDateRe      = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
)

// ParseDate extracts a date from a short text fragment.
//
// Pattern families are tried in order and the first that yields a match wins:
//   - "<day>[.] <month-name> <year>", e.g. "22. desember 1999"
//   - "DD/MM/YYYY", "DD-MM-YYYY", then "YYYY-MM-DD", "YYYY/MM/DD"
//   - "<day>[.] <month-name>" using fallbackYear; skipped when fallbackYear is 0
//
// Within a family the leftmost valid match wins. Matching is
// case-insensitive. The bool result is false when nothing matches.
func ParseDate(text string, fallbackYear int) (Date, bool) {
	if text == "" {
		return Date{}, false
	}

	for _, m := range dayMonthYearRe.FindAllStringSubmatch(text, -1) {
		d := Date{Year: atoi(m[3]), Month: monthNumber(m[2]), Day: atoi(m[1])}
		if validMonthDay(d.Month, d.Day) {
			return d, true
		}
	}

	for _, m := range dayFirstRe.FindAllStringSubmatch(text, -1) {
		d := Date{Year: atoi(m[3]), Month: atoi(m[2]), Day: atoi(m[1])}
		if validMonthDay(d.Month, d.Day) {
			return d, true
		}
	}
	for _, m := range yearFirstRe.FindAllStringSubmatch(text, -1) {
		d := Date{Year: atoi(m[1]), Month: atoi(m[2]), Day: atoi(m[3])}
		if validMonthDay(d.Month, d.Day) {
			return d, true
		}
	}

	if fallbackYear == 0 {
		return Date{}, false
	}
	for _, m := range dayMonthRe.FindAllStringSubmatch(text, -1) {
		d := Date{Year: fallbackYear, Month: monthNumber(m[2]), Day: atoi(m[1])}
		if validMonthDay(d.Month, d.Day) {
			return d, true
		}
	}

	return Date{}, false
}

// ParseDateOrURL is like ParseDate but falls back to href when text is empty.
func ParseDateOrURL(text, href string, fallbackYear int) (Date, bool) {
	if text == "" && href == "" {
		return Date{}, false
	}
	if text == "" {
		text = href
	}
	return ParseDate(text, fallbackYear)
}

// FindMonth returns the number of the first Norwegian month name in text.
func FindMonth(text string) (int, bool) {
	m := monthRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	return monthNumber(m[1]), true
}

// FindYear returns the first four-digit year (1900-2099) in text.
func FindYear(text string) (int, bool) {
	m := yearRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	return atoi(m[1]), true
}

func monthNumber(name string) int {
	name = strings.ToLower(name)
	for i, m := range Months {
		if m == name {
			return i + 1
		}
	}
	return 0
}

func validMonthDay(month, day int) bool {
	return month >= 1 && month <= 12 && day >= 1 && day <= 31
}

// atoi is only called on regexp digit groups.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
