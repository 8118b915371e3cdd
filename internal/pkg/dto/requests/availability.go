package requests

type GetAvailabilityRequest struct {
	Date           string `json:"date" validate:"required,iso_date"`
	NutritionistID string `json:"nutritionistId" validate:"required"`
	PatientID      string `json:"patientId,omitempty"`
}

type GetAvailabilityRangeRequest struct {
	StartDate      string `json:"startDate" validate:"required,iso_date"`
	EndDate        string `json:"endDate" validate:"required,iso_date"`
	NutritionistID string `json:"nutritionistId" validate:"required"`
	PatientID      string `json:"patientId,omitempty"`
}
