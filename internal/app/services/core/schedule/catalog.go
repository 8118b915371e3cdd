package schedule

import (
	"fmt"
	"nutriplan-service/internal/app/models"
	"nutriplan-service/internal/pkg/constvars"
	"time"
)

// SlotWindow is one bookable window of the fixed daily catalog.
type SlotWindow struct {
	TimeStart string
	TimeEnd   string
}

// DailySlots is the full catalog, in booking order. The 13:00-15:00 and
// 14:00-16:00 windows overlap on the wall clock on purpose; exclusivity is
// enforced per exact window, never by overlap.
var DailySlots = []SlotWindow{
	{TimeStart: "09:00", TimeEnd: "11:00"},
	{TimeStart: "11:00", TimeEnd: "13:00"},
	{TimeStart: "13:00", TimeEnd: "15:00"},
	{TimeStart: "14:00", TimeEnd: "16:00"},
}

func (w SlotWindow) Key() models.SlotKey {
	return models.SlotKey{TimeStart: w.TimeStart, TimeEnd: w.TimeEnd}
}

// IsEligibleWeekday reports whether the date can carry slots at all.
// Saturday and Sunday never produce slots.
func IsEligibleWeekday(date time.Time) bool {
	weekday := date.Weekday()
	return weekday != time.Saturday && weekday != time.Sunday
}

// SlotsForDate returns the catalog windows for a date, in catalog order, or
// nothing on ineligible weekdays.
func SlotsForDate(date time.Time) []SlotWindow {
	if !IsEligibleWeekday(date) {
		return nil
	}
	slots := make([]SlotWindow, len(DailySlots))
	copy(slots, DailySlots)
	return slots
}

// MatchSlot reports whether the pair is an exact catalog entry.
func MatchSlot(timeStart, timeEnd string) bool {
	for _, slot := range DailySlots {
		if slot.TimeStart == timeStart && slot.TimeEnd == timeEnd {
			return true
		}
	}
	return false
}

// ToISODate formats from calendar fields rather than converting through UTC,
// so a date near midnight never shifts a day under a non-UTC local zone.
func ToISODate(date time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", date.Year(), int(date.Month()), date.Day())
}

// ParseISODate reads a YYYY-MM-DD string as a local wall-clock date.
func ParseISODate(date string) (time.Time, error) {
	return time.ParseInLocation(constvars.ISODateLayout, date, time.Local)
}

// NormalizeISODate re-renders any parseable date string as zero-padded ISO so
// string comparisons never miss on formatting differences.
func NormalizeISODate(date string) (string, error) {
	parsed, err := ParseISODate(date)
	if err != nil {
		return "", err
	}
	return ToISODate(parsed), nil
}

// CombineDateTime builds the local instant a slot starts or ends at.
func CombineDateTime(date time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse(constvars.SlotTimeLayout, clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, time.Local,
	), nil
}

// StartOfDay truncates an instant to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
