package availability

import (
	"context"
	"nutriplan-service/internal/app/contracts"
	"nutriplan-service/internal/app/models"
	"nutriplan-service/internal/app/services/core/schedule"
	"nutriplan-service/internal/pkg/constvars"
	"nutriplan-service/internal/pkg/exceptions"
	"nutriplan-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type availabilityUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	Clock                 contracts.Clock
	Log                   *zap.Logger
}

func NewAvailabilityUsecase(
	appointmentRepository contracts.AppointmentRepository,
	clock contracts.Clock,
	logger *zap.Logger,
) contracts.AvailabilityUsecase {
	return &availabilityUsecase{
		AppointmentRepository: appointmentRepository,
		Clock:                 clock,
		Log:                   logger,
	}
}

func (uc *availabilityUsecase) GetAvailableSlots(ctx context.Context, input *contracts.GetAvailableSlotsInput) ([]models.TimeSlot, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("availabilityUsecase.GetAvailableSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDateKey, input.Date),
		zap.String(constvars.LoggingNutritionistIDKey, input.NutritionistID),
	)

	date, err := schedule.ParseISODate(input.Date)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}

	now := uc.Clock()
	if !schedule.IsEligibleWeekday(date) || date.Before(schedule.StartOfDay(now)) {
		return []models.TimeSlot{}, nil
	}

	occupied, err := uc.occupiedSlots(ctx, schedule.ToISODate(date), input.NutritionistID)
	if err != nil {
		uc.Log.Error("availabilityUsecase.GetAvailableSlots error fetching occupied slots",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	blocked := map[models.SlotKey]bool{}
	if input.PatientID != "" {
		patientAppointments, err := uc.AppointmentRepository.FindByPatient(ctx, input.PatientID)
		if err != nil {
			uc.Log.Error("availabilityUsecase.GetAvailableSlots error fetching patient appointments",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
		blocked = patientBlockedSlots(patientAppointments)[schedule.ToISODate(date)]
	}

	slots := availableSlotsForDay(date, now, occupied, blocked)

	uc.Log.Info("availabilityUsecase.GetAvailableSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(slots)),
	)
	return slots, nil
}

func (uc *availabilityUsecase) GetAvailableSlotsForRange(ctx context.Context, input *contracts.GetAvailableSlotsForRangeInput) (map[string][]models.TimeSlot, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("availabilityUsecase.GetAvailableSlotsForRange called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("start_date", input.StartDate),
		zap.String("end_date", input.EndDate),
		zap.String(constvars.LoggingNutritionistIDKey, input.NutritionistID),
	)

	startDate, err := schedule.ParseISODate(input.StartDate)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	endDate, err := schedule.ParseISODate(input.EndDate)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	if startDate.After(endDate) {
		return nil, exceptions.ErrScheduling(constvars.ErrClientInvalidDateRange)
	}

	// One ranged query plus one patient fetch instead of a repository
	// round-trip per day.
	accepted, err := uc.AppointmentRepository.FindAcceptedByDateRange(
		ctx,
		schedule.ToISODate(startDate),
		schedule.ToISODate(endDate),
		input.NutritionistID,
	)
	if err != nil {
		uc.Log.Error("availabilityUsecase.GetAvailableSlotsForRange error fetching accepted appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	occupiedByDate := map[string]map[models.SlotKey]bool{}
	for _, appointment := range accepted {
		isoDate, err := schedule.NormalizeISODate(appointment.Date)
		if err != nil {
			continue
		}
		if occupiedByDate[isoDate] == nil {
			occupiedByDate[isoDate] = map[models.SlotKey]bool{}
		}
		occupiedByDate[isoDate][appointment.SlotKey()] = true
	}

	blockedByDate := map[string]map[models.SlotKey]bool{}
	if input.PatientID != "" {
		patientAppointments, err := uc.AppointmentRepository.FindByPatient(ctx, input.PatientID)
		if err != nil {
			uc.Log.Error("availabilityUsecase.GetAvailableSlotsForRange error fetching patient appointments",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
		blockedByDate = patientBlockedSlots(patientAppointments)
	}

	now := uc.Clock()
	today := schedule.StartOfDay(now)
	result := map[string][]models.TimeSlot{}
	for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
		if !schedule.IsEligibleWeekday(day) || day.Before(today) {
			continue
		}
		isoDate := schedule.ToISODate(day)
		result[isoDate] = availableSlotsForDay(day, now, occupiedByDate[isoDate], blockedByDate[isoDate])
	}

	uc.Log.Info("availabilityUsecase.GetAvailableSlotsForRange succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(result)),
	)
	return result, nil
}

func (uc *availabilityUsecase) HasAvailabilityOnDate(ctx context.Context, input *contracts.GetAvailableSlotsInput) (bool, error) {
	slots, err := uc.GetAvailableSlots(ctx, input)
	if err != nil {
		return false, err
	}
	return len(slots) > 0, nil
}

func (uc *availabilityUsecase) occupiedSlots(ctx context.Context, isoDate, nutritionistID string) (map[models.SlotKey]bool, error) {
	appointments, err := uc.AppointmentRepository.FindByDate(ctx, isoDate, nutritionistID)
	if err != nil {
		return nil, err
	}
	occupied := map[models.SlotKey]bool{}
	for _, appointment := range appointments {
		if appointment.IsAccepted() {
			occupied[appointment.SlotKey()] = true
		}
	}
	return occupied, nil
}

// patientBlockedSlots maps ISO date to the slots the patient already holds a
// pending request for. Only pending blocks here; the duplicate rules at
// request time are stricter.
func patientBlockedSlots(appointments []models.Appointment) map[string]map[models.SlotKey]bool {
	blocked := map[string]map[models.SlotKey]bool{}
	for _, appointment := range appointments {
		if !appointment.IsPending() {
			continue
		}
		isoDate, err := schedule.NormalizeISODate(appointment.Date)
		if err != nil {
			continue
		}
		if blocked[isoDate] == nil {
			blocked[isoDate] = map[models.SlotKey]bool{}
		}
		blocked[isoDate][appointment.SlotKey()] = true
	}
	return blocked
}

// availableSlotsForDay applies the catalog-order exclusion rules for one day.
// A slot whose start instant is at or before now is gone; that only bites
// when the day is today, since past days were already filtered out.
func availableSlotsForDay(day time.Time, now time.Time, occupied, blocked map[models.SlotKey]bool) []models.TimeSlot {
	isoDate := schedule.ToISODate(day)
	slots := []models.TimeSlot{}
	for _, window := range schedule.SlotsForDate(day) {
		if occupied[window.Key()] || blocked[window.Key()] {
			continue
		}
		slotStart, err := schedule.CombineDateTime(day, window.TimeStart)
		if err != nil || !slotStart.After(now) {
			continue
		}
		slots = append(slots, models.TimeSlot{
			Date:      isoDate,
			TimeStart: window.TimeStart,
			TimeEnd:   window.TimeEnd,
			Available: true,
		})
	}
	return slots
}
