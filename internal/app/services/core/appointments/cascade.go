package appointments

import (
	"context"
	"nutriplan-service/internal/app/contracts"
	"nutriplan-service/internal/app/models"
	"nutriplan-service/internal/pkg/constvars"
	"nutriplan-service/internal/pkg/utils"
	"sync"

	"go.uber.org/zap"
)

// cascadeStatus dispatches the secondary writes of a primary transition
// concurrently and waits for all of them. The writes are independent
// per-document updates, not a transaction; an individual failure is logged as
// a warning and never unwinds the already-committed primary write.
func cascadeStatus(
	ctx context.Context,
	repository contracts.AppointmentRepository,
	queue contracts.NotificationQueueService,
	logger *zap.Logger,
	targets []models.Appointment,
	status models.AppointmentStatus,
	event string,
) {
	requestID := utils.GetRequestID(ctx)
	var wg sync.WaitGroup
	for i := range targets {
		wg.Add(1)
		go func(target models.Appointment) {
			defer wg.Done()
			if err := repository.UpdateStatus(ctx, target.ID, status); err != nil {
				logger.Warn("appointments.cascadeStatus write failed",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingAppointmentIDKey, target.ID),
					zap.String(constvars.LoggingStatusKey, string(status)),
					zap.Error(err),
				)
				return
			}
			target.Status = status
			enqueueAppointmentEvent(ctx, queue, logger, &target, event)
		}(targets[i])
	}
	wg.Wait()
}
