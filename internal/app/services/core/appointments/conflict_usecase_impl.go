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

// conflictUsecase restores the at-most-one-accepted-per-slot invariant when a
// slot accumulates more than one live appointment. Pending and rejected
// appointments are never part of a conflict.
type conflictUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	NotificationQueue     contracts.NotificationQueueService
	Log                   *zap.Logger
}

func NewConflictUsecase(
	appointmentRepository contracts.AppointmentRepository,
	notificationQueue contracts.NotificationQueueService,
	logger *zap.Logger,
) contracts.ConflictUsecase {
	return &conflictUsecase{
		AppointmentRepository: appointmentRepository,
		NotificationQueue:     notificationQueue,
		Log:                   logger,
	}
}

// ListConflictsBySlot lists every live (accepted or cancelled) appointment in
// the exact slot of the given appointment, the entry appointment included.
func (uc *conflictUsecase) ListConflictsBySlot(ctx context.Context, appointmentID string) ([]models.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("conflictUsecase.ListConflictsBySlot called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	entry, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil)
	}

	slotAppointments, err := uc.AppointmentRepository.FindByDate(ctx, entry.Date, entry.NutritionistID)
	if err != nil {
		uc.Log.Error("conflictUsecase.ListConflictsBySlot error reading slot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	conflicts := []models.Appointment{}
	for i := range slotAppointments {
		candidate := &slotAppointments[i]
		if !entry.SameSlot(candidate) && candidate.ID != entry.ID {
			continue
		}
		if candidate.IsAccepted() || candidate.IsCancelled() {
			conflicts = append(conflicts, *candidate)
		}
	}

	uc.Log.Info("conflictUsecase.ListConflictsBySlot succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAppointmentCountKey, len(conflicts)),
	)
	return conflicts, nil
}

// ResolveConflict makes the selected appointment the slot's single accepted
// one. Idempotent: selecting an already accepted appointment issues no
// writes. Every other accepted appointment in the slot is cancelled through a
// best-effort cascade computed from a fresh slot read.
func (uc *conflictUsecase) ResolveConflict(ctx context.Context, selectedAppointmentID string) (*models.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("conflictUsecase.ResolveConflict called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, selectedAppointmentID),
	)

	selected, err := uc.AppointmentRepository.FindByID(ctx, selectedAppointmentID)
	if err != nil {
		return nil, err
	}
	if selected == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil)
	}
	if !selected.IsAccepted() && !selected.IsCancelled() {
		return nil, exceptions.ErrScheduling(constvars.ErrClientNotResolvable)
	}
	if selected.IsAccepted() {
		return selected, nil
	}

	slotAppointments, err := uc.AppointmentRepository.FindByDate(ctx, selected.Date, selected.NutritionistID)
	if err != nil {
		uc.Log.Error("conflictUsecase.ResolveConflict error reading slot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := uc.AppointmentRepository.UpdateStatus(ctx, selected.ID, models.AppointmentStatusAccepted); err != nil {
		uc.Log.Error("conflictUsecase.ResolveConflict error committing selection",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	var displaced []models.Appointment
	for i := range slotAppointments {
		candidate := &slotAppointments[i]
		if candidate.ID != selected.ID && selected.SameSlot(candidate) && candidate.IsAccepted() {
			displaced = append(displaced, *candidate)
		}
	}
	cascadeStatus(ctx, uc.AppointmentRepository, uc.NotificationQueue, uc.Log, displaced, models.AppointmentStatusCancelled, constvars.NotificationEventCancelled)

	updated, err := uc.AppointmentRepository.FindByID(ctx, selected.ID)
	if err != nil || updated == nil {
		uc.Log.Warn("conflictUsecase.ResolveConflict re-read failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, selected.ID),
			zap.Error(err),
		)
		updated = selected
		updated.Status = models.AppointmentStatusAccepted
	}
	enqueueAppointmentEvent(ctx, uc.NotificationQueue, uc.Log, updated, constvars.NotificationEventResolved)

	uc.Log.Info("conflictUsecase.ResolveConflict succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, updated.ID),
	)
	return updated, nil
}
