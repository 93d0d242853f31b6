package utils

import (
	"testing"
	"time"

	"github.com/radhian/sip-engine/consts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMonths(t *testing.T) {
	testCases := []struct {
		name   string
		date   time.Time
		months int
		want   time.Time
	}{
		{"plain", Date(2024, 1, 15), 1, Date(2024, 2, 15)},
		{"clamp to leap february", Date(2024, 1, 31), 1, Date(2024, 2, 29)},
		{"clamp to february", Date(2023, 1, 31), 1, Date(2023, 2, 28)},
		{"clamp to 30 day month", Date(2024, 3, 31), 1, Date(2024, 4, 30)},
		{"year rollover", Date(2024, 12, 10), 1, Date(2025, 1, 10)},
		{"many months", Date(2024, 5, 31), 21, Date(2026, 2, 28)},
		{"negative", Date(2024, 1, 31), -2, Date(2023, 11, 30)},
		{"negative across two years", Date(2024, 1, 5), -13, Date(2022, 12, 5)},
		{"century is not leap", Date(2100, 1, 31), 1, Date(2100, 2, 28)},
		{"400 years is leap", Date(2000, 1, 31), 1, Date(2000, 2, 29)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AddMonths(tc.date, tc.months))
		})
	}
}

func TestAddMonthsDoesNotRecoverClampedDay(t *testing.T) {
	feb := AddMonths(Date(2023, 1, 31), 1)
	assert.Equal(t, Date(2023, 3, 28), AddMonths(feb, 1))
}

func TestAddWeeksAndQuarters(t *testing.T) {
	assert.Equal(t, Date(2024, 1, 8), AddWeeks(Date(2024, 1, 1), 1))
	assert.Equal(t, Date(2024, 3, 4), AddWeeks(Date(2024, 2, 26), 1))
	assert.Equal(t, Date(2024, 2, 29), AddQuarters(Date(2023, 11, 30), 1))
	assert.Equal(t, Date(2025, 1, 31), AddQuarters(Date(2024, 1, 31), 4))
}

func TestIsOnOrBefore(t *testing.T) {
	day := Date(2024, 6, 1)
	assert.True(t, IsOnOrBefore(day, day))
	assert.True(t, IsOnOrBefore(day, day.Add(23*time.Hour)))
	assert.True(t, IsOnOrBefore(day.Add(20*time.Hour), day))
	assert.True(t, IsOnOrBefore(Date(2024, 5, 31), day))
	assert.False(t, IsOnOrBefore(Date(2024, 6, 2), day))
}

func TestFormatAndParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, Date(2024, 2, 29), d)
	assert.Equal(t, "2024-02-29", FormatDate(d))

	_, err = ParseDate("2023-02-29")
	assert.Error(t, err)
}

func TestNextExecutionDateIsStrictlyLater(t *testing.T) {
	start := Date(2024, 1, 31)
	for _, freq := range []int{consts.FrequencyWeekly, consts.FrequencyMonthly, consts.FrequencyQuarterly} {
		current := start
		for i := 0; i < 30; i++ {
			next := NextExecutionDate(current, freq)
			assert.True(t, next.After(current), "frequency %s step %d", consts.FrequencyName(freq), i)
			current = next
		}
	}

	assert.Equal(t, Date(2024, 2, 7), NextExecutionDate(start, consts.FrequencyWeekly))
	assert.Equal(t, Date(2024, 2, 29), NextExecutionDate(start, consts.FrequencyMonthly))
	assert.Equal(t, Date(2024, 4, 30), NextExecutionDate(start, consts.FrequencyQuarterly))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 28, DaysInMonth(1900, time.February))
	assert.Equal(t, 31, DaysInMonth(2024, time.December))
	assert.True(t, IsLeapYear(2000))
	assert.False(t, IsLeapYear(2023))
}
