package requests

type CreateAppointmentRequest struct {
	// AppointmentID lets offline-created requests keep their client id.
	AppointmentID  string `json:"appointmentId,omitempty" validate:"omitempty,uuid"`
	PatientID      string `json:"patientId" validate:"required"`
	NutritionistID string `json:"nutritionistId" validate:"required"`
	Date           string `json:"date" validate:"required,iso_date"`
	TimeStart      string `json:"timeStart" validate:"required,slot_time"`
	TimeEnd        string `json:"timeEnd" validate:"required,slot_time"`
	Observations   string `json:"observations,omitempty" validate:"omitempty,max=500"`
}
