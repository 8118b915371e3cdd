package appointments

import (
	"context"
	"nutriplan-service/internal/app/contracts"
	"nutriplan-service/internal/app/models"
	"nutriplan-service/internal/pkg/constvars"
	"nutriplan-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newConflictTestUsecase(repo *memoryAppointmentRepository) contracts.ConflictUsecase {
	return NewConflictUsecase(repo, nil, zap.NewNop())
}

func TestListConflictsBySlot_OnlyLiveStatuses(t *testing.T) {
	repo := newMemoryRepository(mondayNoonClock())
	repo.seed(withStatus(pendingAppointment("X", "pat-1", "nutri-1", "2025-03-10", "09:00", "11:00"), models.AppointmentStatusAccepted))
	repo.seed(withStatus(pendingAppointment("Y", "pat-2", "nutri-1", "2025-03-10", "09:00", "11:00"), models.AppointmentStatusCancelled))
	repo.seed(pendingAppointment("P", "pat-3", "nutri-1", "2025-03-10", "09:00", "11:00"))
	repo.seed(withStatus(pendingAppointment("R", "pat-4", "nutri-1", "2025-03-10", "09:00", "11:00"), models.AppointmentStatusRejected))
	repo.seed(withStatus(pendingAppointment("Z", "pat-5", "nutri-1", "2025-03-10", "11:00", "13:00"), models.AppointmentStatusAccepted))
	uc := newConflictTestUsecase(repo)

	conflicts, err := uc.ListConflictsBySlot(context.Background(), "X")
	assert.NoError(t, err)

	ids := make([]string, 0, len(conflicts))
	for _, conflict := range conflicts {
		ids = append(ids, conflict.ID)
	}
	assert.ElementsMatch(t, []string{"X", "Y"}, ids)
}

func TestListConflictsBySlot_UnknownEntry(t *testing.T) {
	uc := newConflictTestUsecase(newMemoryRepository(mondayNoonClock()))

	_, err := uc.ListConflictsBySlot(context.Background(), "missing")
	assertSchedulingError(t, err, constvars.ErrClientAppointmentNotFound)
}

func TestResolveConflict_IdempotentOnAccepted(t *testing.T) {
	repo := newMemoryRepository(mondayNoonClock())
	repo.seed(withStatus(pendingAppointment("X", "pat-1", "nutri-1", "2025-03-10", "09:00", "11:00"), models.AppointmentStatusAccepted))
	uc := newConflictTestUsecase(repo)

	resolved, err := uc.ResolveConflict(context.Background(), "X")
	assert.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusAccepted, resolved.Status)
	assert.Zero(t, repo.updateCount())
}

func TestResolveConflict_SelectsCancelledAndDisplacesAccepted(t *testing.T) {
	repo := newMemoryRepository(mondayNoonClock())
	repo.seed(withStatus(pendingAppointment("X", "pat-1", "nutri-1", "2025-03-10", "09:00", "11:00"), models.AppointmentStatusAccepted))
	repo.seed(withStatus(pendingAppointment("Y", "pat-2", "nutri-1", "2025-03-10", "09:00", "11:00"), models.AppointmentStatusCancelled))
	uc := newConflictTestUsecase(repo)

	resolved, err := uc.ResolveConflict(context.Background(), "Y")
	assert.NoError(t, err)
	assert.Equal(t, "Y", resolved.ID)
	assert.Equal(t, models.AppointmentStatusAccepted, resolved.Status)
	assert.Equal(t, models.AppointmentStatusCancelled, repo.get("X").Status)
}

func TestResolveConflict_RejectsNonLiveSelection(t *testing.T) {
	repo := newMemoryRepository(mondayNoonClock())
	repo.seed(pendingAppointment("P", "pat-1", "nutri-1", "2025-03-10", "09:00", "11:00"))
	uc := newConflictTestUsecase(repo)

	_, err := uc.ResolveConflict(context.Background(), "P")
	assertSchedulingError(t, err, constvars.ErrClientNotResolvable)
}

func TestResolveConflict_UnknownSelection(t *testing.T) {
	uc := newConflictTestUsecase(newMemoryRepository(mondayNoonClock()))

	_, err := uc.ResolveConflict(context.Background(), "missing")
	assert.Error(t, err)
	assert.True(t, exceptions.IsValidationError(err))
}

// Full lifecycle: accepted X is cancelled by the patient, X gets re-accepted
// by a concurrent writer before cancelled Y can be reactivated, and
// resolution repairs the slot in Y's favor.
func TestConflictCycle(t *testing.T) {
	repo := newMemoryRepository(mondayNoonClock())
	repo.seed(withStatus(pendingAppointment("X", "pat-1", "nutri-1", "2025-03-10", "09:00", "11:00"), models.AppointmentStatusAccepted))
	repo.seed(withStatus(pendingAppointment("Y", "pat-2", "nutri-1", "2025-03-10", "09:00", "11:00"), models.AppointmentStatusCancelled))

	transitions := NewTransitionUsecase(repo, nil, zap.NewNop())
	conflicts := newConflictTestUsecase(repo)

	// While X holds the slot, Y cannot come back.
	_, err := transitions.ReactivateAppointment(context.Background(), "Y")
	assert.True(t, exceptions.IsConflictError(err))

	cancelled, err := transitions.CancelAppointment(context.Background(), "X")
	assert.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusCancelled, cancelled.Status)

	// A concurrent writer re-accepts X behind the engine's back, so Y's
	// reactivation loses the slot again.
	repo.seed(withStatus(repo.get("X"), models.AppointmentStatusAccepted))
	_, err = transitions.ReactivateAppointment(context.Background(), "Y")
	assert.True(t, exceptions.IsConflictError(err))

	live, err := conflicts.ListConflictsBySlot(context.Background(), "Y")
	assert.NoError(t, err)
	ids := make([]string, 0, len(live))
	for _, appointment := range live {
		ids = append(ids, appointment.ID)
	}
	assert.ElementsMatch(t, []string{"X", "Y"}, ids)

	resolved, err := conflicts.ResolveConflict(context.Background(), "Y")
	assert.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusAccepted, resolved.Status)
	assert.Equal(t, models.AppointmentStatusCancelled, repo.get("X").Status)
}
