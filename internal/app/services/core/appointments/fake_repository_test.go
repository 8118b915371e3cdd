package appointments

import (
	"context"
	"errors"
	"nutriplan-service/internal/app/contracts"
	"nutriplan-service/internal/app/models"
	"sync"
	"time"
)

// memoryAppointmentRepository is an in-memory stand-in with a write counter
// and per-id write failure injection, safe for the concurrent cascades.
type memoryAppointmentRepository struct {
	mu           sync.Mutex
	appointments map[string]models.Appointment
	order        []string
	updateCalls  int
	failUpdate   map[string]error
	now          contracts.Clock
}

func newMemoryRepository(clock contracts.Clock) *memoryAppointmentRepository {
	return &memoryAppointmentRepository{
		appointments: map[string]models.Appointment{},
		failUpdate:   map[string]error{},
		now:          clock,
	}
}

func (m *memoryAppointmentRepository) seed(appointment models.Appointment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.appointments[appointment.ID]; !exists {
		m.order = append(m.order, appointment.ID)
	}
	m.appointments[appointment.ID] = appointment
}

func (m *memoryAppointmentRepository) get(appointmentID string) models.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appointments[appointmentID]
}

func (m *memoryAppointmentRepository) updateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateCalls
}

func (m *memoryAppointmentRepository) Create(_ context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	m.seed(*appointment)
	created := *appointment
	return &created, nil
}

func (m *memoryAppointmentRepository) FindByID(_ context.Context, appointmentID string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if appointment, ok := m.appointments[appointmentID]; ok {
		found := appointment
		return &found, nil
	}
	return nil, nil
}

func (m *memoryAppointmentRepository) FindByPatient(_ context.Context, patientID string) ([]models.Appointment, error) {
	return m.filter(func(a models.Appointment) bool {
		return a.PatientID == patientID
	}), nil
}

func (m *memoryAppointmentRepository) FindByDate(_ context.Context, date, nutritionistID string) ([]models.Appointment, error) {
	return m.filter(func(a models.Appointment) bool {
		return a.Date == date && (nutritionistID == "" || a.NutritionistID == nutritionistID)
	}), nil
}

func (m *memoryAppointmentRepository) FindByStatus(_ context.Context, status models.AppointmentStatus, nutritionistID string) ([]models.Appointment, error) {
	return m.filter(func(a models.Appointment) bool {
		return a.Status == status && (nutritionistID == "" || a.NutritionistID == nutritionistID)
	}), nil
}

func (m *memoryAppointmentRepository) FindAcceptedByDateRange(_ context.Context, startDate, endDate, nutritionistID string) ([]models.Appointment, error) {
	return m.filter(func(a models.Appointment) bool {
		return a.IsAccepted() && a.Date >= startDate && a.Date <= endDate &&
			(nutritionistID == "" || a.NutritionistID == nutritionistID)
	}), nil
}

func (m *memoryAppointmentRepository) UpdateStatus(_ context.Context, appointmentID string, status models.AppointmentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	if err, ok := m.failUpdate[appointmentID]; ok {
		return err
	}
	appointment, ok := m.appointments[appointmentID]
	if !ok {
		return errors.New("appointment not found")
	}
	appointment.Status = status
	appointment.UpdatedAt = m.now()
	m.appointments[appointmentID] = appointment
	return nil
}

func (m *memoryAppointmentRepository) OnPatientAppointmentsChange(context.Context, string, func([]models.Appointment)) (func(), error) {
	return func() {}, nil
}

func (m *memoryAppointmentRepository) OnNutritionistPendingChange(context.Context, string, func([]models.Appointment)) (func(), error) {
	return func() {}, nil
}

func (m *memoryAppointmentRepository) filter(keep func(models.Appointment) bool) []models.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []models.Appointment{}
	for _, id := range m.order {
		if appointment := m.appointments[id]; keep(appointment) {
			result = append(result, appointment)
		}
	}
	return result
}

// capturingQueue records enqueued events.
type capturingQueue struct {
	mu     sync.Mutex
	events []contracts.AppointmentEvent
}

func (q *capturingQueue) Enqueue(_ context.Context, event *contracts.AppointmentEvent) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, *event)
	return nil
}

func (q *capturingQueue) eventNames() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	names := make([]string, 0, len(q.events))
	for _, event := range q.events {
		names = append(names, event.Event)
	}
	return names
}

// Monday 2025-01-20, mid-day.
func mondayNoonClock() contracts.Clock {
	return func() time.Time {
		return time.Date(2025, time.January, 20, 12, 30, 0, 0, time.Local)
	}
}

func pendingAppointment(id, patientID, nutritionistID, date, timeStart, timeEnd string) models.Appointment {
	return models.Appointment{
		ID:             id,
		PatientID:      patientID,
		NutritionistID: nutritionistID,
		Date:           date,
		TimeStart:      timeStart,
		TimeEnd:        timeEnd,
		Status:         models.AppointmentStatusPending,
	}
}

func withStatus(appointment models.Appointment, status models.AppointmentStatus) models.Appointment {
	appointment.Status = status
	return appointment
}
