package notifqueue

import (
	"context"
	"nutriplan-service/internal/app/contracts"
	"nutriplan-service/internal/app/models"
	"nutriplan-service/internal/pkg/constvars"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Dispatcher subscribes to every nutritionist's live pending feed and queues
// a notification whenever the feed changes, so nutritionists get pinged about
// new work without polling. Pushes are throttled through a shared limiter; a
// burst of cascade writes collapses into however many events the limiter
// lets through.
type Dispatcher struct {
	AppointmentRepository contracts.AppointmentRepository
	UserUsecase           contracts.UserUsecase
	Queue                 contracts.NotificationQueueService
	Limiter               *rate.Limiter
	Log                   *zap.Logger

	mu           sync.Mutex
	unsubscribes []func()
}

func NewDispatcher(
	appointmentRepository contracts.AppointmentRepository,
	userUsecase contracts.UserUsecase,
	queue contracts.NotificationQueueService,
	limiter *rate.Limiter,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		AppointmentRepository: appointmentRepository,
		UserUsecase:           userUsecase,
		Queue:                 queue,
		Limiter:               limiter,
		Log:                   logger,
	}
}

// Start opens one pending-feed subscription per nutritionist. The
// subscriptions live until Stop or until ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) error {
	nutritionists, err := d.UserUsecase.GetByRole(ctx, constvars.NutriplanRoleNutritionist)
	if err != nil {
		return err
	}

	for _, nutritionist := range nutritionists {
		nutritionistID := nutritionist.ID
		unsubscribe, err := d.AppointmentRepository.OnNutritionistPendingChange(ctx, nutritionistID, func(pending []models.Appointment) {
			d.push(ctx, nutritionistID, pending)
		})
		if err != nil {
			d.Stop()
			return err
		}
		d.mu.Lock()
		d.unsubscribes = append(d.unsubscribes, unsubscribe)
		d.mu.Unlock()
	}

	d.Log.Info("notifqueue.Dispatcher started",
		zap.Int("subscriptions", len(nutritionists)),
	)
	return nil
}

func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, unsubscribe := range d.unsubscribes {
		unsubscribe()
	}
	d.unsubscribes = nil
}

func (d *Dispatcher) push(ctx context.Context, nutritionistID string, pending []models.Appointment) {
	if err := d.Limiter.Wait(ctx); err != nil {
		return
	}

	event := &contracts.AppointmentEvent{
		NutritionistID: nutritionistID,
		Event:          constvars.NotificationEventPendingWork,
	}
	// Carry the newest pending request when one exists.
	if len(pending) > 0 {
		newest := pending[len(pending)-1]
		event.AppointmentID = newest.ID
		event.PatientID = newest.PatientID
		event.Date = newest.Date
		event.TimeStart = newest.TimeStart
		event.TimeEnd = newest.TimeEnd
		event.Status = newest.Status
	}

	if err := d.Queue.Enqueue(ctx, event); err != nil {
		d.Log.Warn("notifqueue.Dispatcher enqueue failed",
			zap.String(constvars.LoggingNutritionistIDKey, nutritionistID),
			zap.Error(err),
		)
	}
}
