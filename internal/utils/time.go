package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/validation"
)

// LocalDate returns the calendar date (YYYY-MM-DD) of t in t's own location.
// Callers pass local time; dates are never derived from UTC.
func LocalDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC so that day arithmetic is
// free of DST shifts.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// DaysApart returns the absolute number of whole days between two dates
func DaysApart(a, b string) (int, error) {
	ta, err := ParseDate(a)
	if err != nil {
		return 0, err
	}
	tb, err := ParseDate(b)
	if err != nil {
		return 0, err
	}
	days := int(tb.Sub(ta).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days, nil
}

// AddDays shifts a date by n calendar days
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat), nil
}

// DaysInMonth returns the number of days in a YYYY-MM month
func DaysInMonth(month string) (int, error) {
	t, err := time.Parse(constants.MonthFormat, month)
	if err != nil {
		return 0, fmt.Errorf("invalid month %q: %w", month, err)
	}
	// Day 0 of the next month is the last day of this one
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day(), nil
}

// ResolveDate returns date when set, otherwise today's local date
func ResolveDate(date string, now time.Time) (string, error) {
	if date == "" {
		return LocalDate(now), nil
	}
	if err := validation.ValidateDate(date); err != nil {
		return "", err
	}
	return date, nil
}

// EndTime renders the end of a block starting at start and lasting durationMin
// minutes as "h:mm AM/PM". start may be 24h or 12h formatted.
func EndTime(start string, durationMin int) (string, error) {
	minutes, err := validation.ParseTimeOfDay(start)
	if err != nil {
		return "", err
	}
	end := (minutes + durationMin) % (24 * 60)
	if end < 0 {
		end += 24 * 60
	}
	t := time.Date(2000, 1, 1, end/60, end%60, 0, 0, time.UTC)
	return t.Format("3:04 PM"), nil
}
