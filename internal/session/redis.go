package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperrors "robo-advisor-workers/internal/common/errors"
	"robo-advisor-workers/internal/common/metrics"
	"robo-advisor-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

type RedisStoreConfig struct {
	KeyPrefix  string
	TTL        time.Duration // 0 = no expiry
	MaxRetries int
}

// RedisStore keeps each session as a JSON document under KeyPrefix+id.
// Updates use WATCH/MULTI and are retried when another writer wins.
type RedisStore struct {
	client redis.UniversalClient
	config RedisStoreConfig
}

func NewRedisStore(client redis.UniversalClient, cfg RedisStoreConfig) *RedisStore {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "assessment:session:"
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}
	return &RedisStore{client: client, config: cfg}
}

func (r *RedisStore) key(id string) string {
	return r.config.KeyPrefix + id
}

func (r *RedisStore) Create(ctx context.Context, s *models.AssessmentSession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return apperrors.NewInternalError(fmt.Errorf("marshal session: %w", err))
	}

	created, err := r.client.SetNX(ctx, r.key(s.ID), data, r.config.TTL).Result()
	if err != nil {
		return apperrors.NewSessionStoreFailedError("create", err)
	}
	if !created {
		return apperrors.NewSessionConflictError(s.ID, "session already exists")
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (*models.AssessmentSession, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.NewSessionNotFoundError(id)
	}
	if err != nil {
		return nil, apperrors.NewSessionStoreFailedError("get", err)
	}
	return decodeSession(raw)
}

func (r *RedisStore) Update(ctx context.Context, id string, mutate Mutator) (*models.AssessmentSession, error) {
	key := r.key(id)

	for attempt := 0; attempt < r.config.MaxRetries; attempt++ {
		var (
			updated   *models.AssessmentSession
			domainErr error
		)

		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			raw, err := tx.Get(ctx, key).Bytes()
			if errors.Is(err, redis.Nil) {
				domainErr = apperrors.NewSessionNotFoundError(id)
				return domainErr
			}
			if err != nil {
				return err
			}

			s, err := decodeSession(raw)
			if err != nil {
				domainErr = err
				return err
			}
			if err := mutate(s); err != nil {
				domainErr = err
				return err
			}

			data, err := json.Marshal(s)
			if err != nil {
				domainErr = apperrors.NewInternalError(fmt.Errorf("marshal session: %w", err))
				return domainErr
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, data, r.config.TTL)
				return nil
			})
			if err == nil {
				updated = s
			}
			return err
		}, key)

		switch {
		case err == nil:
			return updated, nil
		case domainErr != nil:
			return nil, domainErr
		case errors.Is(err, redis.TxFailedErr):
			metrics.SessionStoreConflicts.Inc()
			continue
		default:
			return nil, apperrors.NewSessionStoreFailedError("update", err)
		}
	}

	return nil, apperrors.NewSessionStoreFailedError("update",
		fmt.Errorf("session %s: gave up after %d concurrent modifications", id, r.config.MaxRetries))
}

func decodeSession(raw []byte) (*models.AssessmentSession, error) {
	var s models.AssessmentSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, apperrors.NewSessionStoreFailedError("decode", err)
	}
	return &s, nil
}
