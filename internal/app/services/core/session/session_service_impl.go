package session

import (
	"context"
	"nutriplan-service/internal/app/contracts"
	"nutriplan-service/internal/app/models"
	"nutriplan-service/internal/pkg/constvars"
	"nutriplan-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
)

// sessionService stores sessions as JSON blobs in redis under a shared key
// prefix with a sliding TTL.
type sessionService struct {
	RedisRepository contracts.RedisRepository
	SessionTTL      time.Duration
}

func NewSessionService(redisRepository contracts.RedisRepository, sessionTTL time.Duration) contracts.SessionService {
	return &sessionService{
		RedisRepository: redisRepository,
		SessionTTL:      sessionTTL,
	}
}

func (s *sessionService) ParseSessionData(_ context.Context, sessionData string) (*models.Session, error) {
	var session models.Session
	if err := json.Unmarshal([]byte(sessionData), &session); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return &session, nil
}

func (s *sessionService) GetSessionData(ctx context.Context, sessionID string) (string, error) {
	sessionData, err := s.RedisRepository.Get(ctx, constvars.RedisSessionKeyPrefix+sessionID)
	if err != nil {
		return "", err
	}
	if sessionData == "" {
		return "", exceptions.ErrMissingSessionData(nil)
	}
	return sessionData, nil
}

func (s *sessionService) SaveSession(ctx context.Context, session *models.Session) error {
	return s.RedisRepository.Set(ctx, constvars.RedisSessionKeyPrefix+session.SessionID, session, s.SessionTTL)
}

func (s *sessionService) DeleteSession(ctx context.Context, sessionID string) error {
	return s.RedisRepository.Delete(ctx, constvars.RedisSessionKeyPrefix+sessionID)
}
