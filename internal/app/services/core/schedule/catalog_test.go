package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlotsForDate_EligibleWeekdayHasFourSlots(t *testing.T) {
	// Monday through Friday, 2025-01-20 week.
	for day := 20; day <= 24; day++ {
		date := time.Date(2025, time.January, day, 0, 0, 0, 0, time.Local)
		assert.Len(t, SlotsForDate(date), 4, date.Weekday().String())
	}
}

func TestSlotsForDate_WeekendHasNone(t *testing.T) {
	saturday := time.Date(2025, time.January, 25, 0, 0, 0, 0, time.Local)
	sunday := time.Date(2025, time.January, 26, 0, 0, 0, 0, time.Local)
	assert.Empty(t, SlotsForDate(saturday))
	assert.Empty(t, SlotsForDate(sunday))
}

func TestSlotsForDate_CatalogOrder(t *testing.T) {
	date := time.Date(2025, time.January, 21, 0, 0, 0, 0, time.Local)
	slots := SlotsForDate(date)
	starts := make([]string, 0, len(slots))
	for _, slot := range slots {
		starts = append(starts, slot.TimeStart)
	}
	assert.Equal(t, []string{"09:00", "11:00", "13:00", "14:00"}, starts)
}

func TestMatchSlot(t *testing.T) {
	assert.True(t, MatchSlot("09:00", "11:00"))
	assert.True(t, MatchSlot("14:00", "16:00"))
	assert.False(t, MatchSlot("09:00", "10:00"))
	assert.False(t, MatchSlot("11:00", "09:00"))
	assert.False(t, MatchSlot("9:00", "11:00"))
}

func TestToISODate_ZeroPadded(t *testing.T) {
	date := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "2025-03-05", ToISODate(date))
}

func TestToISODate_UsesCalendarFieldsNotUTC(t *testing.T) {
	zone := time.FixedZone("UTC+13", 13*3600)
	// 00:30 local is the previous day in UTC; the ISO date must not shift.
	date := time.Date(2025, time.March, 5, 0, 30, 0, 0, zone)
	assert.Equal(t, "2025-03-05", ToISODate(date))
}

func TestNormalizeISODate(t *testing.T) {
	normalized, err := NormalizeISODate("2025-03-05")
	assert.NoError(t, err)
	assert.Equal(t, "2025-03-05", normalized)

	_, err = NormalizeISODate("05-03-2025")
	assert.Error(t, err)
}

func TestCombineDateTime(t *testing.T) {
	date := time.Date(2025, time.January, 21, 0, 0, 0, 0, time.Local)
	instant, err := CombineDateTime(date, "13:00")
	assert.NoError(t, err)
	assert.Equal(t, 13, instant.Hour())
	assert.Equal(t, 0, instant.Minute())
	assert.Equal(t, date.Day(), instant.Day())

	_, err = CombineDateTime(date, "25:00")
	assert.Error(t, err)
}

func TestStartOfDay(t *testing.T) {
	instant := time.Date(2025, time.January, 21, 17, 45, 12, 99, time.Local)
	start := StartOfDay(instant)
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, instant.Day(), start.Day())
}
