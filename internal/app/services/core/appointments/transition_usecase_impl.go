package appointments

import (
	"context"
	"nutriplan-service/internal/app/contracts"
	"nutriplan-service/internal/app/models"
	"nutriplan-service/internal/pkg/constvars"
	"nutriplan-service/internal/pkg/exceptions"
	"nutriplan-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type transitionUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	NotificationQueue     contracts.NotificationQueueService
	Log                   *zap.Logger
}

func NewTransitionUsecase(
	appointmentRepository contracts.AppointmentRepository,
	notificationQueue contracts.NotificationQueueService,
	logger *zap.Logger,
) contracts.TransitionUsecase {
	return &transitionUsecase{
		AppointmentRepository: appointmentRepository,
		NotificationQueue:     notificationQueue,
		Log:                   logger,
	}
}

// AcceptAppointment commits the exclusive accept. Occupancy is re-verified
// from a fresh slot read immediately before the write, because multiple
// patients may race to request and accept the same slot. The reject cascade
// over the slot's other pendings is best effort: a cascade failure is logged,
// never unwinds the committed accept.
func (uc *transitionUsecase) AcceptAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("transitionUsecase.AcceptAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.loadAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !appointment.IsPending() {
		return nil, exceptions.ErrScheduling(constvars.ErrClientOnlyPendingAcceptable)
	}

	slotMates, err := uc.findSlotMates(ctx, appointment)
	if err != nil {
		return nil, err
	}
	for i := range slotMates {
		if slotMates[i].IsAccepted() {
			return nil, exceptions.ErrSlotConflict(nil)
		}
	}

	if err := uc.AppointmentRepository.UpdateStatus(ctx, appointment.ID, models.AppointmentStatusAccepted); err != nil {
		uc.Log.Error("transitionUsecase.AcceptAppointment error committing accept",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	var pendingMates []models.Appointment
	for i := range slotMates {
		if slotMates[i].IsPending() {
			pendingMates = append(pendingMates, slotMates[i])
		}
	}
	cascadeStatus(ctx, uc.AppointmentRepository, uc.NotificationQueue, uc.Log, pendingMates, models.AppointmentStatusRejected, constvars.NotificationEventRejected)

	return uc.finishTransition(ctx, appointment, models.AppointmentStatusAccepted, constvars.NotificationEventAccepted)
}

func (uc *transitionUsecase) RejectAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("transitionUsecase.RejectAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.loadAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !appointment.IsPending() {
		return nil, exceptions.ErrScheduling(constvars.ErrClientOnlyPendingRejectable)
	}

	if err := uc.AppointmentRepository.UpdateStatus(ctx, appointment.ID, models.AppointmentStatusRejected); err != nil {
		return nil, err
	}
	return uc.finishTransition(ctx, appointment, models.AppointmentStatusRejected, constvars.NotificationEventRejected)
}

func (uc *transitionUsecase) CancelAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("transitionUsecase.CancelAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.loadAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !appointment.IsAccepted() {
		return nil, exceptions.ErrScheduling(constvars.ErrClientOnlyAcceptedCancelable)
	}

	if err := uc.AppointmentRepository.UpdateStatus(ctx, appointment.ID, models.AppointmentStatusCancelled); err != nil {
		return nil, err
	}
	return uc.finishTransition(ctx, appointment, models.AppointmentStatusCancelled, constvars.NotificationEventCancelled)
}

// ReactivateAppointment tries to bring a cancelled appointment back to
// accepted. It never overwrites an existing occupant: when the slot already
// holds an accepted appointment the caller gets a conflict error and is
// expected to go through conflict resolution instead.
func (uc *transitionUsecase) ReactivateAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("transitionUsecase.ReactivateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.loadAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !appointment.IsCancelled() {
		return nil, exceptions.ErrScheduling(constvars.ErrClientOnlyCancelledRevivable)
	}

	slotMates, err := uc.findSlotMates(ctx, appointment)
	if err != nil {
		return nil, err
	}
	for i := range slotMates {
		if slotMates[i].IsAccepted() {
			return nil, exceptions.ErrSlotConflict(nil)
		}
	}

	if err := uc.AppointmentRepository.UpdateStatus(ctx, appointment.ID, models.AppointmentStatusAccepted); err != nil {
		return nil, err
	}
	return uc.finishTransition(ctx, appointment, models.AppointmentStatusAccepted, constvars.NotificationEventReactivated)
}

func (uc *transitionUsecase) loadAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil)
	}
	return appointment, nil
}

// findSlotMates returns every other appointment sharing the target's exact
// slot, from a read taken after the target was loaded.
func (uc *transitionUsecase) findSlotMates(ctx context.Context, target *models.Appointment) ([]models.Appointment, error) {
	slotAppointments, err := uc.AppointmentRepository.FindByDate(ctx, target.Date, target.NutritionistID)
	if err != nil {
		return nil, err
	}
	var mates []models.Appointment
	for i := range slotAppointments {
		if slotAppointments[i].ID != target.ID && target.SameSlot(&slotAppointments[i]) {
			mates = append(mates, slotAppointments[i])
		}
	}
	return mates, nil
}

// finishTransition re-reads the committed appointment so the caller sees the
// backend-refreshed updatedAt, then queues the notification event.
func (uc *transitionUsecase) finishTransition(ctx context.Context, appointment *models.Appointment, status models.AppointmentStatus, event string) (*models.Appointment, error) {
	updated, err := uc.AppointmentRepository.FindByID(ctx, appointment.ID)
	if err != nil || updated == nil {
		uc.Log.Warn("transitionUsecase.finishTransition re-read failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
		updated = appointment
		updated.Status = status
	}
	enqueueAppointmentEvent(ctx, uc.NotificationQueue, uc.Log, updated, event)

	uc.Log.Info("transitionUsecase transition succeeded",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingAppointmentIDKey, updated.ID),
		zap.String(constvars.LoggingStatusKey, string(updated.Status)),
	)
	return updated, nil
}
