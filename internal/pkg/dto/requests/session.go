package requests

type CreateSessionRequest struct {
	UserID string `json:"userId" validate:"required"`
}
