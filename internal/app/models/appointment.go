package models

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusAccepted  AppointmentStatus = "accepted"
	AppointmentStatusRejected  AppointmentStatus = "rejected"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// SlotKey identifies one catalog window inside a day. A struct key rather than
// a concatenated string so a stray separator in the time fields can never
// collide two different windows.
type SlotKey struct {
	TimeStart string
	TimeEnd   string
}

// Appointment is the central scheduling entity. It is never physically
// deleted: rejection and cancellation are terminal-but-reactivatable states.
type Appointment struct {
	ID             string            `json:"id" bson:"_id"`
	PatientID      string            `json:"patientId" bson:"patientId"`
	NutritionistID string            `json:"nutritionistId" bson:"nutritionistId"`
	// Date is a local wall-clock calendar date (YYYY-MM-DD), no timezone.
	Date         string            `json:"date" bson:"date"`
	TimeStart    string            `json:"timeStart" bson:"timeStart"`
	TimeEnd      string            `json:"timeEnd" bson:"timeEnd"`
	Status       AppointmentStatus `json:"status" bson:"status"`
	Observations string            `json:"observations,omitempty" bson:"observations,omitempty"`
	TimeModel    `bson:",inline"`
}

func (a *Appointment) SlotKey() SlotKey {
	return SlotKey{TimeStart: a.TimeStart, TimeEnd: a.TimeEnd}
}

func (a *Appointment) IsPending() bool   { return a.Status == AppointmentStatusPending }
func (a *Appointment) IsAccepted() bool  { return a.Status == AppointmentStatusAccepted }
func (a *Appointment) IsRejected() bool  { return a.Status == AppointmentStatusRejected }
func (a *Appointment) IsCancelled() bool { return a.Status == AppointmentStatusCancelled }

// SameSlot reports whether other occupies the exact same nutritionist slot.
// Exclusivity is policed per exact window match, never by wall-clock overlap.
func (a *Appointment) SameSlot(other *Appointment) bool {
	return a.NutritionistID == other.NutritionistID &&
		a.Date == other.Date &&
		a.SlotKey() == other.SlotKey()
}
