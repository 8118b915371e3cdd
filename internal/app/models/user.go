package models

type User struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	Name      string `json:"name" bson:"name"`
	Email     string `json:"email" bson:"email"`
	Role      string `json:"role" bson:"role"`
	TimeModel `bson:",inline"`
}

func (u *User) IsPatient() bool      { return u.Role == "patient" }
func (u *User) IsNutritionist() bool { return u.Role == "nutritionist" }
