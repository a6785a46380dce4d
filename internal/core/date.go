package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type (
	// Date is a parsed dd/mm/yyyy transaction date.
	Date struct {
		Day   int
		Month int
		Year  int
	}

	// MonthKey is the (month, year) bucket a transaction falls into.
	// It is always derived from the date text, never stored.
	MonthKey struct {
		Month int
		Year  int
	}
)

// ParseDate parses strict dd/mm/yyyy text. The boolean reports whether
// the text is a usable date; malformed dates are not an error, they
// just never join month-derived views.
func ParseDate(s string) (Date, bool) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return Date{}, false
	}
	if len(parts[0]) != 2 || len(parts[1]) != 2 || len(parts[2]) != 4 {
		return Date{}, false
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, false
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, false
	}
	if day < 1 || day > 31 || month < 1 || month > 12 || year < 1 {
		return Date{}, false
	}
	return Date{Day: day, Month: month, Year: year}, true
}

// DateOf formats a calendar day as ledger date text.
func DateOf(t time.Time) string {
	return t.Format("02/01/2006")
}

func (d Date) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, d.Month, d.Year)
}

func (d Date) MonthKey() MonthKey {
	return MonthKey{Month: d.Month, Year: d.Year}
}

// Time returns the midnight UTC instant of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// ParseMonthKey parses an mm/yyyy month label.
func ParseMonthKey(s string) (MonthKey, bool) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 4 {
		return MonthKey{}, false
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return MonthKey{}, false
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return MonthKey{}, false
	}
	if month < 1 || month > 12 || year < 1 {
		return MonthKey{}, false
	}
	return MonthKey{Month: month, Year: year}, true
}

// CurrentMonth is the bucket of the given instant.
func CurrentMonth(now time.Time) MonthKey {
	return MonthKey{Month: int(now.Month()), Year: now.Year()}
}

// Label renders the key in its mm/yyyy wire form.
func (k MonthKey) Label() string {
	return fmt.Sprintf("%02d/%04d", k.Month, k.Year)
}

// Before orders keys chronologically.
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}
