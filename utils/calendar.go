package utils

import (
	"time"

	"github.com/radhian/sip-engine/consts"
)

// DateLayout is the day-granularity layout used in requests and logs.
const DateLayout = "2006-01-02"

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TruncateToDay drops the time of day, keeping the calendar day as seen in t's location.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

func DaysInMonth(year int, month time.Month) int {
	if month == time.February && IsLeapYear(year) {
		return 29
	}
	return daysInMonth[month-1]
}

func AddWeeks(date time.Time, weeks int) time.Time {
	return date.AddDate(0, 0, 7*weeks)
}

// AddMonths moves date by the given number of calendar months. A day that does
// not exist in the target month is clamped to its last day (Jan 31 + 1 -> Feb 28/29).
func AddMonths(date time.Time, months int) time.Time {
	year, month, day := date.Date()

	index := int(month) - 1 + months
	year += index / 12
	index %= 12
	if index < 0 {
		index += 12
		year--
	}
	target := time.Month(index + 1)

	if last := DaysInMonth(year, target); day > last {
		day = last
	}

	hour, min, sec := date.Clock()
	return time.Date(year, target, day, hour, min, sec, date.Nanosecond(), date.Location())
}

func AddQuarters(date time.Time, quarters int) time.Time {
	return AddMonths(date, 3*quarters)
}

// IsOnOrBefore compares at day granularity.
func IsOnOrBefore(a, b time.Time) bool {
	return !TruncateToDay(a).After(TruncateToDay(b))
}

func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return TruncateToDay(d), nil
}

// NextExecutionDate returns the installment date following current for the given frequency.
func NextExecutionDate(current time.Time, frequency int) time.Time {
	switch frequency {
	case consts.FrequencyWeekly:
		return AddWeeks(current, 1)
	case consts.FrequencyQuarterly:
		return AddQuarters(current, 1)
	default:
		return AddMonths(current, 1)
	}
}
