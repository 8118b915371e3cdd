package models

type Session struct {
	SessionID      string `json:"sessionId"`
	UserID         string `json:"userId"`
	Role           string `json:"role"`
	PatientID      string `json:"patientId,omitempty"`
	NutritionistID string `json:"nutritionistId,omitempty"`
}

func (s *Session) IsPatient() bool         { return s.Role == "patient" }
func (s *Session) IsNutritionist() bool    { return s.Role == "nutritionist" }
func (s *Session) IsNotPatient() bool      { return !s.IsPatient() }
func (s *Session) IsNotNutritionist() bool { return !s.IsNutritionist() }
