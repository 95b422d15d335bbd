// Package session persists assessment sessions between questionnaire stages.
package session

import (
	"context"

	"robo-advisor-workers/internal/common/config"
	"robo-advisor-workers/internal/common/database"
	"robo-advisor-workers/internal/models"
)

// Mutator edits a session in place. Returning an error aborts the update and
// leaves the stored session unchanged.
type Mutator func(s *models.AssessmentSession) error

// Store maps session ids to assessment sessions. Update is an atomic
// read-modify-write per session id.
type Store interface {
	Create(ctx context.Context, s *models.AssessmentSession) error
	Get(ctx context.Context, id string) (*models.AssessmentSession, error)
	Update(ctx context.Context, id string, mutate Mutator) (*models.AssessmentSession, error)
}

// New builds the store selected by cfg.Backend. The redis client is only
// used by the redis backend.
func New(cfg config.SessionConfig, redisClient *database.RedisClient) Store {
	if cfg.Backend == config.SessionBackendMemory || redisClient == nil {
		return NewMemoryStore()
	}
	return NewRedisStore(redisClient.Client, RedisStoreConfig{
		KeyPrefix:  cfg.KeyPrefix,
		TTL:        cfg.TTLDuration(),
		MaxRetries: cfg.MaxUpdateRetries,
	})
}
