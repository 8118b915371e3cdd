package responses

type AvailableSlot struct {
	Date      string `json:"date"`
	TimeStart string `json:"time_start"`
	TimeEnd   string `json:"time_end"`
	Available bool   `json:"available"`
}

type DayAvailability struct {
	Date  string          `json:"date"`
	Slots []AvailableSlot `json:"slots"`
}
