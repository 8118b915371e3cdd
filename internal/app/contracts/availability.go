package contracts

import (
	"context"
	"nutriplan-service/internal/app/models"
)

type GetAvailableSlotsInput struct {
	// Date is an ISO calendar date (YYYY-MM-DD).
	Date           string
	NutritionistID string
	// PatientID is optional; when set, slots the patient already holds a
	// pending request for are excluded.
	PatientID string
}

type GetAvailableSlotsForRangeInput struct {
	StartDate      string
	EndDate        string
	NutritionistID string
	PatientID      string
}

type AvailabilityUsecase interface {
	GetAvailableSlots(ctx context.Context, input *GetAvailableSlotsInput) ([]models.TimeSlot, error)
	// GetAvailableSlotsForRange maps ISO date to that day's open slots. Only
	// eligible, non-past dates appear as keys.
	GetAvailableSlotsForRange(ctx context.Context, input *GetAvailableSlotsForRangeInput) (map[string][]models.TimeSlot, error)
	HasAvailabilityOnDate(ctx context.Context, input *GetAvailableSlotsInput) (bool, error)
}
