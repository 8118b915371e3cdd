package appointments

import (
	"context"
	"nutriplan-service/internal/app/contracts"
	"nutriplan-service/internal/app/models"
	"nutriplan-service/internal/app/services/core/schedule"
	"nutriplan-service/internal/pkg/constvars"
	"nutriplan-service/internal/pkg/dto/requests"
	"nutriplan-service/internal/pkg/exceptions"
	"nutriplan-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	NotificationQueue     contracts.NotificationQueueService
	Clock                 contracts.Clock
	Log                   *zap.Logger
}

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	notificationQueue contracts.NotificationQueueService,
	clock contracts.Clock,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	return &appointmentUsecase{
		AppointmentRepository: appointmentRepository,
		NotificationQueue:     notificationQueue,
		Clock:                 clock,
		Log:                   logger,
	}
}

func (uc *appointmentUsecase) CreateAppointment(ctx context.Context, request *requests.CreateAppointmentRequest) (*models.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
		zap.String(constvars.LoggingNutritionistIDKey, request.NutritionistID),
		zap.String(constvars.LoggingDateKey, request.Date),
		zap.String(constvars.LoggingSlotKey, request.TimeStart+"-"+request.TimeEnd),
	)

	now := uc.Clock()

	// Fail fast before any repository access.
	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	if err := ValidateSchedulingRules(request, now); err != nil {
		return nil, err
	}

	isoDate, err := schedule.NormalizeISODate(request.Date)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	slotKey := models.SlotKey{TimeStart: request.TimeStart, TimeEnd: request.TimeEnd}

	// A patient holding a pending or cancelled request for the exact slot may
	// not file another one. Rejected requests do not block.
	patientAppointments, err := uc.AppointmentRepository.FindByPatient(ctx, request.PatientID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.CreateAppointment error fetching patient appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	for i := range patientAppointments {
		existing := &patientAppointments[i]
		if !existing.IsPending() && !existing.IsCancelled() {
			continue
		}
		existingDate, err := schedule.NormalizeISODate(existing.Date)
		if err != nil {
			continue
		}
		if existingDate == isoDate && existing.SlotKey() == slotKey {
			return nil, exceptions.ErrScheduling(constvars.ErrClientDuplicateRequest)
		}
	}

	occupied, err := uc.slotIsOccupied(ctx, isoDate, request.NutritionistID, slotKey)
	if err != nil {
		uc.Log.Error("appointmentUsecase.CreateAppointment error checking occupancy",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if occupied {
		return nil, exceptions.ErrScheduling(constvars.ErrClientSlotOccupied)
	}

	appointmentID := request.AppointmentID
	if appointmentID == "" {
		appointmentID = uuid.NewString()
	}
	appointment := &models.Appointment{
		ID:             appointmentID,
		PatientID:      request.PatientID,
		NutritionistID: request.NutritionistID,
		Date:           isoDate,
		TimeStart:      request.TimeStart,
		TimeEnd:        request.TimeEnd,
		Status:         models.AppointmentStatusPending,
		Observations:   request.Observations,
	}
	appointment.SetCreatedAtUpdatedAt(now)

	created, err := uc.AppointmentRepository.Create(ctx, appointment)
	if err != nil {
		uc.Log.Error("appointmentUsecase.CreateAppointment error persisting appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	enqueueAppointmentEvent(ctx, uc.NotificationQueue, uc.Log, created, constvars.NotificationEventRequested)

	uc.Log.Info("appointmentUsecase.CreateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, created.ID),
	)
	return created, nil
}

func (uc *appointmentUsecase) FindByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.FindByPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	appointments, err := uc.AppointmentRepository.FindByPatient(ctx, patientID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.FindByPatient error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return appointments, nil
}

func (uc *appointmentUsecase) FindByDate(ctx context.Context, date, nutritionistID string) ([]models.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.FindByDate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDateKey, date),
		zap.String(constvars.LoggingNutritionistIDKey, nutritionistID),
	)

	isoDate, err := schedule.NormalizeISODate(date)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	appointments, err := uc.AppointmentRepository.FindByDate(ctx, isoDate, nutritionistID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.FindByDate error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return appointments, nil
}

func (uc *appointmentUsecase) FindByStatus(ctx context.Context, status, nutritionistID string) ([]models.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.FindByStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingStatusKey, status),
		zap.String(constvars.LoggingNutritionistIDKey, nutritionistID),
	)

	parsedStatus, ok := parseStatus(status)
	if !ok {
		return nil, exceptions.ErrScheduling(constvars.ErrClientUnknownStatus)
	}
	appointments, err := uc.AppointmentRepository.FindByStatus(ctx, parsedStatus, nutritionistID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.FindByStatus error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return appointments, nil
}

func (uc *appointmentUsecase) FindAgendaByPatient(ctx context.Context, patientID string) (map[string][]models.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.FindAgendaByPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	appointments, err := uc.AppointmentRepository.FindByPatient(ctx, patientID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.FindAgendaByPatient error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	agenda := map[string][]models.Appointment{}
	for _, appointment := range appointments {
		isoDate, err := schedule.NormalizeISODate(appointment.Date)
		if err != nil {
			isoDate = appointment.Date
		}
		agenda[isoDate] = append(agenda[isoDate], appointment)
	}
	return agenda, nil
}

func (uc *appointmentUsecase) slotIsOccupied(ctx context.Context, isoDate, nutritionistID string, slotKey models.SlotKey) (bool, error) {
	appointments, err := uc.AppointmentRepository.FindByDate(ctx, isoDate, nutritionistID)
	if err != nil {
		return false, err
	}
	for i := range appointments {
		if appointments[i].IsAccepted() && appointments[i].SlotKey() == slotKey {
			return true, nil
		}
	}
	return false, nil
}

func parseStatus(status string) (models.AppointmentStatus, bool) {
	switch models.AppointmentStatus(status) {
	case models.AppointmentStatusPending,
		models.AppointmentStatusAccepted,
		models.AppointmentStatusRejected,
		models.AppointmentStatusCancelled:
		return models.AppointmentStatus(status), true
	}
	return "", false
}

// enqueueAppointmentEvent queues a push-notification event. Queue failures are
// warnings only; a committed appointment write is never rolled back or failed
// over a notification.
func enqueueAppointmentEvent(
	ctx context.Context,
	queue contracts.NotificationQueueService,
	logger *zap.Logger,
	appointment *models.Appointment,
	event string,
) {
	if queue == nil {
		return
	}
	err := queue.Enqueue(ctx, &contracts.AppointmentEvent{
		AppointmentID:  appointment.ID,
		PatientID:      appointment.PatientID,
		NutritionistID: appointment.NutritionistID,
		Date:           appointment.Date,
		TimeStart:      appointment.TimeStart,
		TimeEnd:        appointment.TimeEnd,
		Status:         appointment.Status,
		Event:          event,
	})
	if err != nil {
		logger.Warn("appointments.enqueueAppointmentEvent failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.String("event", event),
			zap.Error(err),
		)
	}
}
