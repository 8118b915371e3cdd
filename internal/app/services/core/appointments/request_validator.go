package appointments

import (
	"nutriplan-service/internal/app/services/core/schedule"
	"nutriplan-service/internal/pkg/constvars"
	"nutriplan-service/internal/pkg/dto/requests"
	"nutriplan-service/internal/pkg/exceptions"
	"strings"
	"time"
)

// ValidateSchedulingRules runs the pure precondition checks of a booking
// request. It performs no I/O; every failure is a client-correctable
// validation error with a displayable message.
func ValidateSchedulingRules(request *requests.CreateAppointmentRequest, now time.Time) error {
	if strings.TrimSpace(request.PatientID) == "" {
		return exceptions.ErrScheduling(constvars.ErrClientPatientIDRequired)
	}
	if strings.TrimSpace(request.NutritionistID) == "" {
		return exceptions.ErrScheduling(constvars.ErrClientNutritionistIDRequired)
	}

	// HH:MM ordering is lexicographic, and the pair must be an exact catalog
	// window. Wall-clock overlap with another window is not checked.
	if request.TimeStart >= request.TimeEnd || !schedule.MatchSlot(request.TimeStart, request.TimeEnd) {
		return exceptions.ErrScheduling(constvars.ErrClientInvalidTimeSlot)
	}

	date, err := schedule.ParseISODate(request.Date)
	if err != nil {
		return exceptions.ErrCannotParseDate(err)
	}
	if !schedule.IsEligibleWeekday(date) {
		return exceptions.ErrScheduling(constvars.ErrClientIneligibleWeekday)
	}

	slotStart, err := schedule.CombineDateTime(date, request.TimeStart)
	if err != nil {
		return exceptions.ErrCannotParseDate(err)
	}
	if slotStart.Before(now) {
		return exceptions.ErrScheduling(constvars.ErrClientSlotInThePast)
	}
	return nil
}
