package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Parser holds the per-run parsing policy. Year resolves bare
// month/day dates, which carry no year of their own; callers set it
// explicitly per import run instead of relying on a hidden default.
type Parser struct {
	Year int
}

// dateLayouts are tried in order. Non-padded layouts accept padded
// input, so "03/15/2026" and "3/15/2026" both match the first.
var dateLayouts = []string{
	"1/2/2006",
	"1/2/06",
	"2006-1-2",
}

// Date parses the loose date formats found in the spreadsheets:
// month/day/4-digit-year, month/day/2-digit-year, ISO year-month-day,
// and bare month/day (resolved against p.Year). A range like
// "2/26 - 3/18" yields its first bound. Unparseable or empty text is
// "no date", never an error; source rows are human-edited.
func (p Parser) Date(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	if t, err := time.Parse("1/2", s); err == nil {
		return withYear(t, p.Year), true
	}

	if first, _, found := strings.Cut(s, " - "); found {
		return p.Date(strings.TrimSpace(first))
	}

	return time.Time{}, false
}

func withYear(t time.Time, year int) time.Time {
	return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IntRange parses a bare integer or the first bound of a range like
// "14-21". Empty or non-numeric text is "no value", never an error.
func IntRange(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	first, _, _ := strings.Cut(s, "-")
	n, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Currency parses a money string like "$1,234.56" into an exact
// decimal. Unparseable text is "no value"; callers decide what to do
// with zero amounts.
func Currency(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
