package availability

import (
	"context"
	"nutriplan-service/internal/app/contracts"
	"nutriplan-service/internal/app/models"
	"nutriplan-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeAppointmentRepository struct {
	appointments []models.Appointment
}

func (f *fakeAppointmentRepository) Create(_ context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	f.appointments = append(f.appointments, *appointment)
	return appointment, nil
}

func (f *fakeAppointmentRepository) FindByID(_ context.Context, appointmentID string) (*models.Appointment, error) {
	for i := range f.appointments {
		if f.appointments[i].ID == appointmentID {
			found := f.appointments[i]
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentRepository) FindByPatient(_ context.Context, patientID string) ([]models.Appointment, error) {
	var result []models.Appointment
	for _, appointment := range f.appointments {
		if appointment.PatientID == patientID {
			result = append(result, appointment)
		}
	}
	return result, nil
}

func (f *fakeAppointmentRepository) FindByDate(_ context.Context, date, nutritionistID string) ([]models.Appointment, error) {
	var result []models.Appointment
	for _, appointment := range f.appointments {
		if appointment.Date != date {
			continue
		}
		if nutritionistID != "" && appointment.NutritionistID != nutritionistID {
			continue
		}
		result = append(result, appointment)
	}
	return result, nil
}

func (f *fakeAppointmentRepository) FindByStatus(_ context.Context, status models.AppointmentStatus, nutritionistID string) ([]models.Appointment, error) {
	var result []models.Appointment
	for _, appointment := range f.appointments {
		if appointment.Status != status {
			continue
		}
		if nutritionistID != "" && appointment.NutritionistID != nutritionistID {
			continue
		}
		result = append(result, appointment)
	}
	return result, nil
}

func (f *fakeAppointmentRepository) FindAcceptedByDateRange(_ context.Context, startDate, endDate, nutritionistID string) ([]models.Appointment, error) {
	var result []models.Appointment
	for _, appointment := range f.appointments {
		if !appointment.IsAccepted() || appointment.Date < startDate || appointment.Date > endDate {
			continue
		}
		if nutritionistID != "" && appointment.NutritionistID != nutritionistID {
			continue
		}
		result = append(result, appointment)
	}
	return result, nil
}

func (f *fakeAppointmentRepository) UpdateStatus(_ context.Context, appointmentID string, status models.AppointmentStatus) error {
	for i := range f.appointments {
		if f.appointments[i].ID == appointmentID {
			f.appointments[i].Status = status
		}
	}
	return nil
}

func (f *fakeAppointmentRepository) OnPatientAppointmentsChange(context.Context, string, func([]models.Appointment)) (func(), error) {
	return func() {}, nil
}

func (f *fakeAppointmentRepository) OnNutritionistPendingChange(context.Context, string, func([]models.Appointment)) (func(), error) {
	return func() {}, nil
}

// Monday 2025-01-20, mid-day.
func frozenClock() contracts.Clock {
	return func() time.Time {
		return time.Date(2025, time.January, 20, 12, 30, 0, 0, time.Local)
	}
}

func newTestUsecase(repo contracts.AppointmentRepository, clock contracts.Clock) contracts.AvailabilityUsecase {
	return NewAvailabilityUsecase(repo, clock, zap.NewNop())
}

func slotStarts(slots []models.TimeSlot) []string {
	starts := make([]string, 0, len(slots))
	for _, slot := range slots {
		starts = append(starts, slot.TimeStart)
	}
	return starts
}

func TestGetAvailableSlots_TodayExcludesStartedSlots(t *testing.T) {
	uc := newTestUsecase(&fakeAppointmentRepository{}, frozenClock())

	slots, err := uc.GetAvailableSlots(context.Background(), &contracts.GetAvailableSlotsInput{
		Date:           "2025-01-20",
		NutritionistID: "nutri-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"13:00", "14:00"}, slotStarts(slots))
}

func TestGetAvailableSlots_FutureWeekdayHasFullCatalog(t *testing.T) {
	uc := newTestUsecase(&fakeAppointmentRepository{}, frozenClock())

	slots, err := uc.GetAvailableSlots(context.Background(), &contracts.GetAvailableSlotsInput{
		Date:           "2025-01-21",
		NutritionistID: "nutri-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"09:00", "11:00", "13:00", "14:00"}, slotStarts(slots))
}

func TestGetAvailableSlots_WeekendIsEmpty(t *testing.T) {
	uc := newTestUsecase(&fakeAppointmentRepository{}, frozenClock())

	slots, err := uc.GetAvailableSlots(context.Background(), &contracts.GetAvailableSlotsInput{
		Date:           "2025-01-25",
		NutritionistID: "nutri-1",
	})

	assert.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailableSlots_PastDateIsEmpty(t *testing.T) {
	uc := newTestUsecase(&fakeAppointmentRepository{}, frozenClock())

	slots, err := uc.GetAvailableSlots(context.Background(), &contracts.GetAvailableSlotsInput{
		Date:           "2025-01-17",
		NutritionistID: "nutri-1",
	})

	assert.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailableSlots_AcceptedSlotIsOccupied(t *testing.T) {
	repo := &fakeAppointmentRepository{appointments: []models.Appointment{
		{ID: "a1", PatientID: "pat-9", NutritionistID: "nutri-1", Date: "2025-01-21", TimeStart: "11:00", TimeEnd: "13:00", Status: models.AppointmentStatusAccepted},
		{ID: "a2", PatientID: "pat-9", NutritionistID: "nutri-1", Date: "2025-01-21", TimeStart: "13:00", TimeEnd: "15:00", Status: models.AppointmentStatusRejected},
	}}
	uc := newTestUsecase(repo, frozenClock())

	slots, err := uc.GetAvailableSlots(context.Background(), &contracts.GetAvailableSlotsInput{
		Date:           "2025-01-21",
		NutritionistID: "nutri-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"09:00", "13:00", "14:00"}, slotStarts(slots))
}

func TestGetAvailableSlots_OverlappingWindowStaysAvailable(t *testing.T) {
	repo := &fakeAppointmentRepository{appointments: []models.Appointment{
		{ID: "a1", PatientID: "pat-9", NutritionistID: "nutri-1", Date: "2025-01-21", TimeStart: "13:00", TimeEnd: "15:00", Status: models.AppointmentStatusAccepted},
	}}
	uc := newTestUsecase(repo, frozenClock())

	slots, err := uc.GetAvailableSlots(context.Background(), &contracts.GetAvailableSlotsInput{
		Date:           "2025-01-21",
		NutritionistID: "nutri-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"09:00", "11:00", "14:00"}, slotStarts(slots))
}

func TestGetAvailableSlots_PatientPendingBlocksOnlyThatPatient(t *testing.T) {
	repo := &fakeAppointmentRepository{appointments: []models.Appointment{
		{ID: "a1", PatientID: "pat-1", NutritionistID: "nutri-1", Date: "2025-01-21", TimeStart: "09:00", TimeEnd: "11:00", Status: models.AppointmentStatusPending},
	}}
	uc := newTestUsecase(repo, frozenClock())

	blocked, err := uc.GetAvailableSlots(context.Background(), &contracts.GetAvailableSlotsInput{
		Date:           "2025-01-21",
		NutritionistID: "nutri-1",
		PatientID:      "pat-1",
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"11:00", "13:00", "14:00"}, slotStarts(blocked))

	open, err := uc.GetAvailableSlots(context.Background(), &contracts.GetAvailableSlotsInput{
		Date:           "2025-01-21",
		NutritionistID: "nutri-1",
		PatientID:      "pat-2",
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"09:00", "11:00", "13:00", "14:00"}, slotStarts(open))
}

func TestGetAvailableSlots_InvalidDate(t *testing.T) {
	uc := newTestUsecase(&fakeAppointmentRepository{}, frozenClock())

	_, err := uc.GetAvailableSlots(context.Background(), &contracts.GetAvailableSlotsInput{
		Date:           "21-01-2025",
		NutritionistID: "nutri-1",
	})

	assert.Error(t, err)
	assert.True(t, exceptions.IsValidationError(err))
}

func TestGetAvailableSlotsForRange_SkipsWeekendsAndPastDays(t *testing.T) {
	uc := newTestUsecase(&fakeAppointmentRepository{}, frozenClock())

	result, err := uc.GetAvailableSlotsForRange(context.Background(), &contracts.GetAvailableSlotsForRangeInput{
		StartDate:      "2025-01-17",
		EndDate:        "2025-01-21",
		NutritionistID: "nutri-1",
	})

	assert.NoError(t, err)
	// 17th is past, 18th/19th are a weekend.
	assert.Len(t, result, 2)
	assert.Contains(t, result, "2025-01-20")
	assert.Contains(t, result, "2025-01-21")
	assert.Equal(t, []string{"13:00", "14:00"}, slotStarts(result["2025-01-20"]))
	assert.Equal(t, []string{"09:00", "11:00", "13:00", "14:00"}, slotStarts(result["2025-01-21"]))
}

func TestGetAvailableSlotsForRange_InvertedRange(t *testing.T) {
	uc := newTestUsecase(&fakeAppointmentRepository{}, frozenClock())

	_, err := uc.GetAvailableSlotsForRange(context.Background(), &contracts.GetAvailableSlotsForRangeInput{
		StartDate:      "2025-01-22",
		EndDate:        "2025-01-21",
		NutritionistID: "nutri-1",
	})

	assert.Error(t, err)
	assert.True(t, exceptions.IsValidationError(err))
}

func TestHasAvailabilityOnDate(t *testing.T) {
	uc := newTestUsecase(&fakeAppointmentRepository{}, frozenClock())

	has, err := uc.HasAvailabilityOnDate(context.Background(), &contracts.GetAvailableSlotsInput{
		Date:           "2025-01-21",
		NutritionistID: "nutri-1",
	})
	assert.NoError(t, err)
	assert.True(t, has)

	has, err = uc.HasAvailabilityOnDate(context.Background(), &contracts.GetAvailableSlotsInput{
		Date:           "2025-01-25",
		NutritionistID: "nutri-1",
	})
	assert.NoError(t, err)
	assert.False(t, has)
}
