package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/erpmobile/stock_journal_engine/internal/apperrors"
	"github.com/erpmobile/stock_journal_engine/internal/core/domain"
	"github.com/erpmobile/stock_journal_engine/internal/core/ports/gateways"
	portsrepo "github.com/erpmobile/stock_journal_engine/internal/core/ports/repositories"
	portssvc "github.com/erpmobile/stock_journal_engine/internal/core/ports/services"
	"github.com/erpmobile/stock_journal_engine/internal/dto"
	"github.com/erpmobile/stock_journal_engine/internal/middleware"
	"github.com/erpmobile/stock_journal_engine/pkg/scheduler"
)

// sessionService owns composition sessions: the draft builder and catalog
// snapshot persisted between requests, the debounced upstream product search,
// and the final validate-and-submit handshake.
type sessionService struct {
	sessionRepo      portsrepo.SessionRepository
	gateway          gateways.SubmissionGateway
	catalog          gateways.ProductCatalog
	debouncer        *scheduler.Debouncer
	debounceInterval time.Duration
	searchTimeout    time.Duration
}

// NewSessionService creates a new session service.
func NewSessionService(
	sessionRepo portsrepo.SessionRepository,
	gateway gateways.SubmissionGateway,
	catalog gateways.ProductCatalog,
	debouncer *scheduler.Debouncer,
	debounceInterval time.Duration,
) portssvc.SessionSvcFacade {
	return &sessionService{
		sessionRepo:      sessionRepo,
		gateway:          gateway,
		catalog:          catalog,
		debouncer:        debouncer,
		debounceInterval: debounceInterval,
		searchTimeout:    10 * time.Second,
	}
}

var _ portssvc.SessionSvcFacade = (*sessionService)(nil)

// searchKey is the debounce key for one line's product search. Rescheduling
// the same line replaces its pending upstream query.
func searchKey(sessionID, lineID string) string {
	return sessionID + ":" + lineID
}

// OpenSession starts a composition session. The catalog snapshot is fetched
// once here and stays frozen for the life of the session.
func (s *sessionService) OpenSession(ctx context.Context, entryType domain.EntryType, entryID string) (*domain.CompositionSession, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	catalog, err := s.catalog.FetchCatalog(ctx)
	if err != nil {
		logger.Error("Failed to fetch product catalog", slog.String("error", err.Error()))
		return nil, err
	}

	var builder *domain.JournalEntryBuilder
	if entryID != "" {
		entry, err := s.gateway.GetEntry(ctx, entryID)
		if err != nil {
			return nil, err
		}
		if !entry.CanEdit {
			return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrEntryImmutable, entryID, entry.Status)
		}
		builder = domain.NewBuilderFromEntry(entry, catalog)
	} else {
		if !entryType.Valid() {
			return nil, fmt.Errorf("%w: unknown entry type %q", apperrors.ErrValidation, entryType)
		}
		builder = domain.NewJournalEntryBuilder(entryType)
	}

	now := time.Now().UTC()
	session := &domain.CompositionSession{
		SessionID: uuid.NewString(),
		Builder:   builder,
		Catalog:   catalog,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessionRepo.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	logger.Info("Composition session opened",
		slog.String("session_id", session.SessionID),
		slog.String("entry_type", string(builder.EntryType)),
		slog.String("entry_id", builder.EntryID),
	)
	return session, nil
}

// GetSession returns the current session state.
func (s *sessionService) GetSession(ctx context.Context, sessionID string) (*domain.CompositionSession, error) {
	return s.sessionRepo.FindSessionByID(ctx, sessionID)
}

// CloseSession abandons a session and cancels its pending searches.
func (s *sessionService) CloseSession(ctx context.Context, sessionID string) error {
	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return err
	}
	s.cancelPendingSearches(session)
	if err := s.sessionRepo.DeleteSession(ctx, sessionID); err != nil {
		return err
	}
	middleware.GetLoggerFromCtx(ctx).Info("Composition session closed", slog.String("session_id", sessionID))
	return nil
}

// UpdateHeader applies entry-level field changes.
func (s *sessionService) UpdateHeader(ctx context.Context, sessionID string, req dto.UpdateHeaderRequest) (*domain.CompositionSession, error) {
	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	journalDate, err := req.ParseJournalDate()
	if err != nil {
		return nil, err
	}
	if journalDate != nil {
		if err := session.Builder.SetJournalDate(*journalDate); err != nil {
			return nil, err
		}
	}
	if req.ReferenceNumber != nil {
		if err := session.Builder.SetReferenceNumber(*req.ReferenceNumber); err != nil {
			return nil, err
		}
	}
	if req.Narration != nil {
		if err := session.Builder.SetNarration(*req.Narration); err != nil {
			return nil, err
		}
	}

	return s.save(ctx, session)
}

// AddLine appends an empty line. Transfer entries require a side; other
// entries reject one.
func (s *sessionService) AddLine(ctx context.Context, sessionID string, side domain.TransferSide) (*domain.CompositionSession, string, error) {
	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	var lineID string
	if session.Builder.Transfer != nil {
		if !side.Valid() {
			return nil, "", fmt.Errorf("%w: transfer lines require a side", apperrors.ErrValidation)
		}
		lineID, err = session.Builder.AddTransferLine(side)
	} else {
		if side != "" {
			return nil, "", fmt.Errorf("%w: %s entries have no transfer sides", apperrors.ErrValidation, session.Builder.EntryType)
		}
		lineID, err = session.Builder.AddLine()
	}
	if err != nil {
		return nil, "", err
	}

	saved, err := s.save(ctx, session)
	if err != nil {
		return nil, "", err
	}
	return saved, lineID, nil
}

// RemoveLine removes a line and cancels its pending upstream search.
func (s *sessionService) RemoveLine(ctx context.Context, sessionID string, lineID string) (*domain.CompositionSession, error) {
	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Builder.RemoveLine(lineID); err != nil {
		return nil, err
	}
	s.debouncer.Cancel(searchKey(sessionID, lineID))
	return s.save(ctx, session)
}

// UpdateLine applies last-write-wins field mutations to one line.
func (s *sessionService) UpdateLine(ctx context.Context, sessionID string, lineID string, req dto.UpdateLineRequest) (*domain.CompositionSession, error) {
	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	builder := session.Builder

	if req.ProductID != nil {
		if err := builder.SetLineProduct(lineID, session.Catalog, *req.ProductID); err != nil {
			return nil, err
		}
	}
	if movementType := req.DomainMovementType(); movementType != "" {
		if err := builder.SetLineMovementType(lineID, movementType); err != nil {
			return nil, err
		}
	}
	if req.Quantity != nil {
		if err := builder.SetLineQuantity(lineID, *req.Quantity); err != nil {
			return nil, err
		}
	}
	if req.Rate != nil {
		if err := builder.SetLineRate(lineID, *req.Rate); err != nil {
			return nil, err
		}
	}
	if req.BatchNumber != nil {
		if err := builder.SetLineBatchNumber(lineID, *req.BatchNumber); err != nil {
			return nil, err
		}
	}
	if req.Remarks != nil {
		if err := builder.SetLineRemarks(lineID, *req.Remarks); err != nil {
			return nil, err
		}
	}

	return s.save(ctx, session)
}

// SearchProducts answers immediately from the session's catalog snapshot and
// schedules a debounced upstream query for the same line. Upstream results
// merge new products into the snapshot; stock figures of products already in
// it are never refreshed mid-session.
func (s *sessionService) SearchProducts(ctx context.Context, sessionID string, lineID string, query string) ([]domain.Product, error) {
	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, found := session.Builder.Line(lineID); !found {
		return nil, fmt.Errorf("%w: line %s", apperrors.ErrNotFound, lineID)
	}

	results := session.Catalog.Search(query)

	if query != "" {
		s.scheduleUpstreamSearch(ctx, sessionID, lineID, query)
	} else {
		s.debouncer.Cancel(searchKey(sessionID, lineID))
	}

	return results, nil
}

// scheduleUpstreamSearch debounces the upstream query per line. The task runs
// detached from the request, so it carries the caller's credential and logger
// into a fresh context.
func (s *sessionService) scheduleUpstreamSearch(ctx context.Context, sessionID, lineID, query string) {
	logger := middleware.GetLoggerFromCtx(ctx)
	token, hasToken := middleware.GetAuthTokenFromCtx(ctx)

	s.debouncer.Schedule(searchKey(sessionID, lineID), s.debounceInterval, func() {
		taskCtx, cancel := context.WithTimeout(context.Background(), s.searchTimeout)
		defer cancel()
		if hasToken {
			taskCtx = middleware.WithAuthToken(taskCtx, token)
		}

		products, err := s.catalog.SearchProducts(taskCtx, query)
		if err != nil {
			logger.Warn("Upstream product search failed",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()),
			)
			return
		}
		if len(products) == 0 {
			return
		}

		// Reload before merging so concurrent edits are not clobbered.
		session, err := s.sessionRepo.FindSessionByID(taskCtx, sessionID)
		if err != nil {
			return
		}
		session.Catalog = session.Catalog.Merge(products)
		session.UpdatedAt = time.Now().UTC()
		if err := s.sessionRepo.SaveSession(taskCtx, session); err != nil {
			logger.Warn("Failed to persist merged catalog",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()),
			)
		}
	})
}

// Validate runs the local pre-submission checks and returns every violation.
func (s *sessionService) Validate(ctx context.Context, sessionID string) (domain.ValidationErrors, error) {
	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session.Builder.Validate(), nil
}

// Submit validates the session and pushes the payload upstream. The upstream
// response is the confirmed entry; the session is deleted on success so a
// closed session cannot be submitted twice.
func (s *sessionService) Submit(ctx context.Context, sessionID string, action domain.SubmitAction) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if errs := session.Builder.Validate(); len(errs) > 0 {
		return nil, errs
	}

	submission := session.Builder.Submission(action)

	var entry *domain.JournalEntry
	if session.Builder.EntryID != "" {
		entry, err = s.gateway.UpdateEntry(ctx, session.Builder.EntryID, submission)
	} else {
		entry, err = s.gateway.CreateEntry(ctx, submission)
	}
	if err != nil {
		logger.Warn("Entry submission failed",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.cancelPendingSearches(session)
	if err := s.sessionRepo.DeleteSession(ctx, sessionID); err != nil {
		logger.Error("Failed to delete submitted session",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	logger.Info("Entry submitted",
		slog.String("session_id", sessionID),
		slog.String("entry_id", entry.EntryID),
		slog.String("status", string(entry.Status)),
	)
	return entry, nil
}

func (s *sessionService) save(ctx context.Context, session *domain.CompositionSession) (*domain.CompositionSession, error) {
	session.UpdatedAt = time.Now().UTC()
	if err := s.sessionRepo.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) cancelPendingSearches(session *domain.CompositionSession) {
	builder := session.Builder
	lines := builder.Lines
	if builder.Transfer != nil {
		lines = builder.Transfer.MergedLines()
	}
	for i := range lines {
		s.debouncer.Cancel(searchKey(session.SessionID, lines[i].LineID))
	}
}
