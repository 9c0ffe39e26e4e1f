// Package datetime checks the textual date (dd/mm/yyyy) and time (hh:mm)
// formats stored on agenda records. All functions are pure and total.
package datetime

import (
	"strconv"
	"strings"
)

// Date is a calendar date as written in a record, not normalized to time.Time
// so that years outside time's practical range still round-trip.
type Date struct {
	Day   uint32
	Month uint32
	Year  uint32
}

// Clock is an hour and minute of day.
type Clock struct {
	Hour   uint32
	Minute uint32
}

// ValidDate reports whether s is a real calendar date in dd/mm/yyyy form.
// Tokens need not be zero-padded.
func ValidDate(s string) bool {
	_, ok := ParseDate(s)
	return ok
}

// ValidTime reports whether s is a time of day in hh:mm form.
func ValidTime(s string) bool {
	_, ok := ParseTime(s)
	return ok
}

// ParseDate parses s as dd/mm/yyyy and checks the day against the length of
// the month, taking Gregorian leap years into account.
func ParseDate(s string) (Date, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return Date{}, false
	}

	var nums [3]uint32
	for i, p := range parts {
		n, ok := parseUint(p)
		if !ok {
			return Date{}, false
		}
		nums[i] = n
	}

	d := Date{Day: nums[0], Month: nums[1], Year: nums[2]}
	if d.Day == 0 || d.Month == 0 || d.Year == 0 {
		return Date{}, false
	}
	if d.Month > 12 || d.Day > DaysIn(d.Month, d.Year) {
		return Date{}, false
	}

	return d, true
}

// ParseTime parses s as hh:mm on a 24-hour clock.
func ParseTime(s string) (Clock, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return Clock{}, false
	}

	hour, ok := parseUint(parts[0])
	if !ok {
		return Clock{}, false
	}
	minute, ok := parseUint(parts[1])
	if !ok {
		return Clock{}, false
	}
	if hour >= 24 || minute >= 60 {
		return Clock{}, false
	}

	return Clock{Hour: hour, Minute: minute}, true
}

// DaysIn returns the number of days in month of year, or 0 for an invalid
// month.
func DaysIn(month, year uint32) uint32 {
	switch month {
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	default:
		return 0
	}
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year uint32) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// parseUint accepts only a non-empty run of ASCII digits. Signs, spaces and
// other characters strconv would tolerate are rejected.
func parseUint(s string) (uint32, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}
