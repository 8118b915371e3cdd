package notifqueue

import (
	"context"
	"nutriplan-service/internal/app/contracts"
	"nutriplan-service/internal/app/models"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type stubRepository struct {
	mu            sync.Mutex
	callbacks     map[string]func([]models.Appointment)
	unsubscribed  int
	subscribeErrs map[string]error
}

func (s *stubRepository) Create(context.Context, *models.Appointment) (*models.Appointment, error) {
	return nil, nil
}
func (s *stubRepository) FindByID(context.Context, string) (*models.Appointment, error) {
	return nil, nil
}
func (s *stubRepository) FindByPatient(context.Context, string) ([]models.Appointment, error) {
	return nil, nil
}
func (s *stubRepository) FindByDate(context.Context, string, string) ([]models.Appointment, error) {
	return nil, nil
}
func (s *stubRepository) FindByStatus(context.Context, models.AppointmentStatus, string) ([]models.Appointment, error) {
	return nil, nil
}
func (s *stubRepository) FindAcceptedByDateRange(context.Context, string, string, string) ([]models.Appointment, error) {
	return nil, nil
}
func (s *stubRepository) UpdateStatus(context.Context, string, models.AppointmentStatus) error {
	return nil
}
func (s *stubRepository) OnPatientAppointmentsChange(context.Context, string, func([]models.Appointment)) (func(), error) {
	return func() {}, nil
}

func (s *stubRepository) OnNutritionistPendingChange(_ context.Context, nutritionistID string, callback func([]models.Appointment)) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.subscribeErrs[nutritionistID]; ok {
		return nil, err
	}
	if s.callbacks == nil {
		s.callbacks = map[string]func([]models.Appointment){}
	}
	s.callbacks[nutritionistID] = callback
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.unsubscribed++
	}, nil
}

func (s *stubRepository) fire(nutritionistID string, pending []models.Appointment) {
	s.mu.Lock()
	callback := s.callbacks[nutritionistID]
	s.mu.Unlock()
	callback(pending)
}

type stubUserUsecase struct {
	users []models.User
}

func (s *stubUserUsecase) GetUserByID(context.Context, string) (*models.User, error) {
	return nil, nil
}
func (s *stubUserUsecase) GetByRole(context.Context, string) ([]models.User, error) {
	return s.users, nil
}

type recordingQueue struct {
	mu     sync.Mutex
	events []contracts.AppointmentEvent
}

func (q *recordingQueue) Enqueue(_ context.Context, event *contracts.AppointmentEvent) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, *event)
	return nil
}

func TestDispatcher_PushesOnPendingChange(t *testing.T) {
	repo := &stubRepository{}
	users := &stubUserUsecase{users: []models.User{
		{ID: "nutri-1", Role: "nutritionist"},
		{ID: "nutri-2", Role: "nutritionist"},
	}}
	queue := &recordingQueue{}
	dispatcher := NewDispatcher(repo, users, queue, rate.NewLimiter(rate.Inf, 1), zap.NewNop())

	assert.NoError(t, dispatcher.Start(context.Background()))
	assert.Len(t, repo.callbacks, 2)

	repo.fire("nutri-1", []models.Appointment{
		{ID: "a1", PatientID: "pat-1", NutritionistID: "nutri-1", Date: "2025-01-21", TimeStart: "09:00", TimeEnd: "11:00", Status: models.AppointmentStatusPending},
	})

	assert.Len(t, queue.events, 1)
	assert.Equal(t, "nutri-1", queue.events[0].NutritionistID)
	assert.Equal(t, "a1", queue.events[0].AppointmentID)

	dispatcher.Stop()
	assert.Equal(t, 2, repo.unsubscribed)
}

func TestDispatcher_EmptyFeedStillNotifies(t *testing.T) {
	repo := &stubRepository{}
	users := &stubUserUsecase{users: []models.User{{ID: "nutri-1", Role: "nutritionist"}}}
	queue := &recordingQueue{}
	dispatcher := NewDispatcher(repo, users, queue, rate.NewLimiter(rate.Inf, 1), zap.NewNop())

	assert.NoError(t, dispatcher.Start(context.Background()))
	repo.fire("nutri-1", nil)

	assert.Len(t, queue.events, 1)
	assert.Empty(t, queue.events[0].AppointmentID)
	dispatcher.Stop()
}
