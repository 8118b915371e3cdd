package contracts

import (
	"context"
	"nutriplan-service/internal/app/models"
	"nutriplan-service/internal/pkg/dto/requests"
)

// AppointmentRepository is the only shared mutable resource of the scheduling
// core. All engines depend on it and never cache writable state beyond a
// single call. Backend failures surface as repository CustomErrors; a missing
// document is (nil, nil), not an error.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	// FindByDate lists a nutritionist's appointments on one calendar date.
	// Empty nutritionistID means all nutritionists.
	FindByDate(ctx context.Context, date, nutritionistID string) ([]models.Appointment, error)
	FindByStatus(ctx context.Context, status models.AppointmentStatus, nutritionistID string) ([]models.Appointment, error)
	FindAcceptedByDateRange(ctx context.Context, startDate, endDate, nutritionistID string) ([]models.Appointment, error)
	// UpdateStatus also refreshes updatedAt.
	UpdateStatus(ctx context.Context, appointmentID string, status models.AppointmentStatus) error
	// OnPatientAppointmentsChange pushes the patient's full appointment list on
	// every change until the returned unsubscribe func is called.
	OnPatientAppointmentsChange(ctx context.Context, patientID string, callback func([]models.Appointment)) (func(), error)
	OnNutritionistPendingChange(ctx context.Context, nutritionistID string, callback func([]models.Appointment)) (func(), error)
}

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, request *requests.CreateAppointmentRequest) (*models.Appointment, error)
	FindByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	FindByDate(ctx context.Context, date, nutritionistID string) ([]models.Appointment, error)
	FindByStatus(ctx context.Context, status, nutritionistID string) ([]models.Appointment, error)
	// FindAgendaByPatient groups the patient's appointments by ISO date.
	FindAgendaByPatient(ctx context.Context, patientID string) (map[string][]models.Appointment, error)
}

// TransitionUsecase is the accept/reject/cancel/reactivate state machine.
type TransitionUsecase interface {
	AcceptAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error)
	RejectAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error)
	ReactivateAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error)
}

// ConflictUsecase detects and resolves slots left with more than one live
// (accepted or cancelled) appointment.
type ConflictUsecase interface {
	ListConflictsBySlot(ctx context.Context, appointmentID string) ([]models.Appointment, error)
	ResolveConflict(ctx context.Context, selectedAppointmentID string) (*models.Appointment, error)
}
