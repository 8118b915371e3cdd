package models

// TimeSlot is the availability value object produced by the availability
// engine. It is never persisted.
type TimeSlot struct {
	Date      string `json:"date"`
	TimeStart string `json:"timeStart"`
	TimeEnd   string `json:"timeEnd"`
	Available bool   `json:"available"`
}
