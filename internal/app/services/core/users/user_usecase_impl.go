package users

import (
	"context"
	"nutriplan-service/internal/app/contracts"
	"nutriplan-service/internal/app/models"
	"nutriplan-service/internal/pkg/constvars"
	"nutriplan-service/internal/pkg/exceptions"
	"nutriplan-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const userCacheTTL = 15 * time.Minute

// userUsecase resolves display data. Lookups go through a redis read cache
// since appointment listings resolve the same few names over and over; a
// cache failure falls back to the database.
type userUsecase struct {
	UserRepository  contracts.UserRepository
	RedisRepository contracts.RedisRepository
	Log             *zap.Logger
}

func NewUserUsecase(
	userRepository contracts.UserRepository,
	redisRepository contracts.RedisRepository,
	logger *zap.Logger,
) contracts.UserUsecase {
	return &userUsecase{
		UserRepository:  userRepository,
		RedisRepository: redisRepository,
		Log:             logger,
	}
}

func (uc *userUsecase) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	requestID := utils.GetRequestID(ctx)
	cacheKey := constvars.RedisUserNameKeyPrefix + userID

	if cached, err := uc.RedisRepository.Get(ctx, cacheKey); err == nil && cached != "" {
		var user models.User
		if err := json.Unmarshal([]byte(cached), &user); err == nil {
			return &user, nil
		}
	} else if err != nil {
		uc.Log.Warn("userUsecase.GetUserByID cache read failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	user, err := uc.UserRepository.FindByID(ctx, userID)
	if err != nil {
		uc.Log.Error("userUsecase.GetUserByID error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	if err := uc.RedisRepository.Set(ctx, cacheKey, user, userCacheTTL); err != nil {
		uc.Log.Warn("userUsecase.GetUserByID cache write failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	return user, nil
}

func (uc *userUsecase) GetByRole(ctx context.Context, role string) ([]models.User, error) {
	if role != constvars.NutriplanRolePatient && role != constvars.NutriplanRoleNutritionist {
		return nil, exceptions.ErrNotMatchRoleType(nil)
	}
	users, err := uc.UserRepository.FindByRole(ctx, role)
	if err != nil {
		uc.Log.Error("userUsecase.GetByRole error",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return nil, err
	}
	return users, nil
}
