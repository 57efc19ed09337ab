package repositories

import (
	"context"

	"github.com/erpmobile/stock_journal_engine/internal/core/domain"
)

// SessionRepository persists composition sessions between requests. Sessions
// carry their full state (builder plus catalog snapshot), so any instance of
// the service can continue an edit started on another.
type SessionRepository interface {
	// SaveSession stores the session and refreshes its idle TTL.
	SaveSession(ctx context.Context, session *domain.CompositionSession) error

	// FindSessionByID returns the session, or apperrors.ErrNotFound when it
	// does not exist or has expired.
	FindSessionByID(ctx context.Context, sessionID string) (*domain.CompositionSession, error)

	// DeleteSession removes the session. Deleting an absent session is not an
	// error.
	DeleteSession(ctx context.Context, sessionID string) error
}
