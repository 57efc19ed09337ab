package services

import (
	"context"

	"github.com/erpmobile/stock_journal_engine/internal/core/domain"
	"github.com/erpmobile/stock_journal_engine/internal/dto"
)

// SessionComposerSvc owns composition sessions: opening, mutating and
// closing the draft state a client edits before submission.
type SessionComposerSvc interface {
	// OpenSession starts a session for a new entry of the given type, or,
	// when entryID is non-empty, for editing that existing draft. The product
	// catalog snapshot is fetched once here and frozen into the session.
	OpenSession(ctx context.Context, entryType domain.EntryType, entryID string) (*domain.CompositionSession, error)

	// GetSession returns the current session state.
	GetSession(ctx context.Context, sessionID string) (*domain.CompositionSession, error)

	// CloseSession abandons the session and cancels any pending searches.
	CloseSession(ctx context.Context, sessionID string) error

	// UpdateHeader applies entry-level field changes.
	UpdateHeader(ctx context.Context, sessionID string, req dto.UpdateHeaderRequest) (*domain.CompositionSession, error)

	// AddLine appends an empty line (side is required for transfers) and
	// returns the refreshed session plus the new line's ID.
	AddLine(ctx context.Context, sessionID string, side domain.TransferSide) (*domain.CompositionSession, string, error)

	// RemoveLine removes a line and cancels its pending search, if any.
	RemoveLine(ctx context.Context, sessionID string, lineID string) (*domain.CompositionSession, error)

	// UpdateLine applies last-write-wins field mutations to one line.
	UpdateLine(ctx context.Context, sessionID string, lineID string, req dto.UpdateLineRequest) (*domain.CompositionSession, error)

	// SearchProducts answers a per-line product search from the session's
	// snapshot and schedules a debounced upstream query keyed by the line.
	SearchProducts(ctx context.Context, sessionID string, lineID string, query string) ([]domain.Product, error)
}

// SessionValidatorSvc runs the local pre-submission checks.
type SessionValidatorSvc interface {
	// Validate returns the complete list of violations; nil means ready.
	Validate(ctx context.Context, sessionID string) (domain.ValidationErrors, error)
}

// SessionSubmitterSvc pushes a validated session to the upstream API.
type SessionSubmitterSvc interface {
	// Submit validates the session, sends the payload upstream and returns
	// the server-confirmed entry. The session is closed on success.
	Submit(ctx context.Context, sessionID string, action domain.SubmitAction) (*domain.JournalEntry, error)
}

// SessionSvcFacade combines all composition session operations.
type SessionSvcFacade interface {
	SessionComposerSvc
	SessionValidatorSvc
	SessionSubmitterSvc
}

// LifecycleSvcFacade performs the guarded, server-confirmed entry
// transitions. All methods return the refreshed server state; nothing is
// patched locally.
type LifecycleSvcFacade interface {
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	PostEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	CancelEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	DeleteEntry(ctx context.Context, entryID string) error
}
