package contracts

import (
	"context"
	"nutriplan-service/internal/app/models"
)

type UserRepository interface {
	FindByID(ctx context.Context, userID string) (*models.User, error)
	FindByRole(ctx context.Context, role string) ([]models.User, error)
}

// UserUsecase resolves display data only; it plays no part in scheduling
// correctness.
type UserUsecase interface {
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetByRole(ctx context.Context, role string) ([]models.User, error)
}
