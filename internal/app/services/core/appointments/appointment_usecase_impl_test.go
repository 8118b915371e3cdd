package appointments

import (
	"context"
	"nutriplan-service/internal/app/contracts"
	"nutriplan-service/internal/app/models"
	"nutriplan-service/internal/pkg/constvars"
	"nutriplan-service/internal/pkg/dto/requests"
	"nutriplan-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newAppointmentTestUsecase(repo *memoryAppointmentRepository, queue contracts.NotificationQueueService) contracts.AppointmentUsecase {
	return NewAppointmentUsecase(repo, queue, mondayNoonClock(), zap.NewNop())
}

func createRequest() *requests.CreateAppointmentRequest {
	return &requests.CreateAppointmentRequest{
		PatientID:      "pat-1",
		NutritionistID: "nutri-1",
		Date:           "2025-01-21",
		TimeStart:      "13:00",
		TimeEnd:        "15:00",
		Observations:   "first consultation",
	}
}

func TestCreateAppointment_RoundTrip(t *testing.T) {
	repo := newMemoryRepository(mondayNoonClock())
	queue := &capturingQueue{}
	uc := newAppointmentTestUsecase(repo, queue)

	created, err := uc.CreateAppointment(context.Background(), createRequest())
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.AppointmentStatusPending, created.Status)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	stored, err := repo.FindByID(context.Background(), created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created, stored)
	assert.Equal(t, []string{constvars.NotificationEventRequested}, queue.eventNames())
}

func TestCreateAppointment_KeepsClientSuppliedID(t *testing.T) {
	uc := newAppointmentTestUsecase(newMemoryRepository(mondayNoonClock()), nil)

	request := createRequest()
	request.AppointmentID = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

	created, err := uc.CreateAppointment(context.Background(), request)
	assert.NoError(t, err)
	assert.Equal(t, request.AppointmentID, created.ID)
}

func TestCreateAppointment_PendingDuplicateBlocked(t *testing.T) {
	repo := newMemoryRepository(mondayNoonClock())
	repo.seed(pendingAppointment("a1", "pat-1", "nutri-1", "2025-01-21", "13:00", "15:00"))
	uc := newAppointmentTestUsecase(repo, nil)

	_, err := uc.CreateAppointment(context.Background(), createRequest())
	assertSchedulingError(t, err, constvars.ErrClientDuplicateRequest)
}

func TestCreateAppointment_CancelledDuplicateBlocked(t *testing.T) {
	repo := newMemoryRepository(mondayNoonClock())
	repo.seed(withStatus(pendingAppointment("a1", "pat-1", "nutri-1", "2025-01-21", "13:00", "15:00"), models.AppointmentStatusCancelled))
	uc := newAppointmentTestUsecase(repo, nil)

	_, err := uc.CreateAppointment(context.Background(), createRequest())
	assertSchedulingError(t, err, constvars.ErrClientDuplicateRequest)
}

func TestCreateAppointment_RejectedDoesNotBlock(t *testing.T) {
	repo := newMemoryRepository(mondayNoonClock())
	repo.seed(withStatus(pendingAppointment("a1", "pat-1", "nutri-1", "2025-01-21", "13:00", "15:00"), models.AppointmentStatusRejected))
	uc := newAppointmentTestUsecase(repo, nil)

	created, err := uc.CreateAppointment(context.Background(), createRequest())
	assert.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusPending, created.Status)
}

func TestCreateAppointment_OccupiedSlotBlocked(t *testing.T) {
	repo := newMemoryRepository(mondayNoonClock())
	repo.seed(withStatus(pendingAppointment("a1", "pat-9", "nutri-1", "2025-01-21", "13:00", "15:00"), models.AppointmentStatusAccepted))
	uc := newAppointmentTestUsecase(repo, nil)

	_, err := uc.CreateAppointment(context.Background(), createRequest())
	assertSchedulingError(t, err, constvars.ErrClientSlotOccupied)
}

func TestCreateAppointment_OverlappingWindowNotOccupied(t *testing.T) {
	repo := newMemoryRepository(mondayNoonClock())
	repo.seed(withStatus(pendingAppointment("a1", "pat-9", "nutri-1", "2025-01-21", "14:00", "16:00"), models.AppointmentStatusAccepted))
	uc := newAppointmentTestUsecase(repo, nil)

	// 13:00-15:00 overlaps 14:00-16:00 on the wall clock but is a distinct
	// catalog window, so it stays requestable.
	created, err := uc.CreateAppointment(context.Background(), createRequest())
	assert.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusPending, created.Status)
}

func TestCreateAppointment_ValidatesBeforeAnyWrite(t *testing.T) {
	repo := newMemoryRepository(mondayNoonClock())
	uc := newAppointmentTestUsecase(repo, nil)

	request := createRequest()
	request.Date = "2025-01-25"

	_, err := uc.CreateAppointment(context.Background(), request)
	assert.Error(t, err)
	appointments, _ := repo.FindByPatient(context.Background(), "pat-1")
	assert.Empty(t, appointments)
}

func TestFindByStatus_UnknownStatus(t *testing.T) {
	uc := newAppointmentTestUsecase(newMemoryRepository(mondayNoonClock()), nil)

	_, err := uc.FindByStatus(context.Background(), "confirmed", "nutri-1")
	assertSchedulingError(t, err, constvars.ErrClientUnknownStatus)
}

func TestFindAgendaByPatient_GroupsByDate(t *testing.T) {
	repo := newMemoryRepository(mondayNoonClock())
	repo.seed(pendingAppointment("a1", "pat-1", "nutri-1", "2025-01-21", "09:00", "11:00"))
	repo.seed(pendingAppointment("a2", "pat-1", "nutri-1", "2025-01-21", "13:00", "15:00"))
	repo.seed(pendingAppointment("a3", "pat-1", "nutri-2", "2025-01-22", "09:00", "11:00"))
	repo.seed(pendingAppointment("a4", "pat-2", "nutri-1", "2025-01-21", "11:00", "13:00"))
	uc := newAppointmentTestUsecase(repo, nil)

	agenda, err := uc.FindAgendaByPatient(context.Background(), "pat-1")
	assert.NoError(t, err)
	assert.Len(t, agenda, 2)
	assert.Len(t, agenda["2025-01-21"], 2)
	assert.Len(t, agenda["2025-01-22"], 1)
}

func TestCreateAppointment_ValidationErrorsAreNotRetriable(t *testing.T) {
	uc := newAppointmentTestUsecase(newMemoryRepository(mondayNoonClock()), nil)

	request := createRequest()
	request.PatientID = ""

	_, err := uc.CreateAppointment(context.Background(), request)
	assert.Error(t, err)
	assert.True(t, exceptions.IsValidationError(err))
	assert.False(t, exceptions.IsConflictError(err))
}
