package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/erpmobile/stock_journal_engine/internal/apperrors"
	"github.com/erpmobile/stock_journal_engine/internal/core/domain"
	portsrepo "github.com/erpmobile/stock_journal_engine/internal/core/ports/repositories"
)

const sessionKeyPrefix = "sje:session:"

// RedisSessionRepository persists composition sessions as JSON documents
// with a sliding TTL. Abandoned sessions expire on their own.
type RedisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

var _ portsrepo.SessionRepository = (*RedisSessionRepository)(nil)

// NewRedisSessionRepository creates a session repository over the given client.
func NewRedisSessionRepository(client *redis.Client, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{client: client, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

// SaveSession writes the session and resets its TTL.
func (r *RedisSessionRepository) SaveSession(ctx context.Context, session *domain.CompositionSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", session.SessionID, err)
	}
	if err := r.client.Set(ctx, sessionKey(session.SessionID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session %s: %w", session.SessionID, err)
	}
	return nil
}

// FindSessionByID loads a session. Missing or expired keys map to ErrNotFound.
func (r *RedisSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.CompositionSession, error) {
	payload, err := r.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: session %s", apperrors.ErrNotFound, sessionID)
		}
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	var session domain.CompositionSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", sessionID, err)
	}
	return &session, nil
}

// DeleteSession removes a session. Deleting an absent session is not an error.
func (r *RedisSessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	return nil
}
