package contracts

import (
	"context"
	"nutriplan-service/internal/app/models"
)

// AppointmentEvent is the payload queued for the external push-notification
// delivery service. Delivery itself is outside this service.
type AppointmentEvent struct {
	AppointmentID  string                   `json:"appointment_id"`
	PatientID      string                   `json:"patient_id"`
	NutritionistID string                   `json:"nutritionist_id"`
	Date           string                   `json:"date"`
	TimeStart      string                   `json:"time_start"`
	TimeEnd        string                   `json:"time_end"`
	Status         models.AppointmentStatus `json:"status"`
	Event          string                   `json:"event"`
}

type NotificationQueueService interface {
	// Enqueue is best-effort from the caller's perspective: engines log
	// failures as warnings and never fail a committed transition over them.
	Enqueue(ctx context.Context, event *AppointmentEvent) error
}
