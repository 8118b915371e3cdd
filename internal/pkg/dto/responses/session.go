package responses

type Session struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}
