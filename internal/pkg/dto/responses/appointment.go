package responses

import "time"

type Appointment struct {
	ID               string    `json:"id"`
	Status           string    `json:"status"`
	PatientID        string    `json:"patient_id"`
	PatientName      string    `json:"patient_name,omitempty"`
	NutritionistID   string    `json:"nutritionist_id"`
	NutritionistName string    `json:"nutritionist_name,omitempty"`
	Date             string    `json:"date"`
	TimeStart        string    `json:"time_start"`
	TimeEnd          string    `json:"time_end"`
	Observations     string    `json:"observations,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
