package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/erpmobile/stock_journal_engine/internal/apperrors"
	"github.com/erpmobile/stock_journal_engine/internal/core/domain"
	"github.com/erpmobile/stock_journal_engine/internal/core/ports/gateways"
	portssvc "github.com/erpmobile/stock_journal_engine/internal/core/ports/services"
	"github.com/erpmobile/stock_journal_engine/internal/middleware"
)

// lifecycleService performs the guarded entry transitions. Guards run against
// the freshly reloaded entry and its server-computed capability flags, never
// against client-side state, and every transition returns the refreshed
// server entry.
type lifecycleService struct {
	gateway gateways.SubmissionGateway
	catalog gateways.ProductCatalog
}

// NewLifecycleService creates a new lifecycle service.
func NewLifecycleService(gateway gateways.SubmissionGateway, catalog gateways.ProductCatalog) portssvc.LifecycleSvcFacade {
	return &lifecycleService{
		gateway: gateway,
		catalog: catalog,
	}
}

var _ portssvc.LifecycleSvcFacade = (*lifecycleService)(nil)

// GetEntry reloads one entry from the upstream API.
func (s *lifecycleService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return s.gateway.GetEntry(ctx, entryID)
}

// PostEntry posts a draft. The entry is reloaded first, the server capability
// flag is checked, and the draft content is re-validated locally before the
// transition is requested, so obviously broken drafts never reach the server.
func (s *lifecycleService) PostEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.gateway.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.CanPost {
		return nil, fmt.Errorf("%w: entry %s cannot be posted while %s", apperrors.ErrTransitionNotAllowed, entryID, entry.Status)
	}

	catalog, err := s.catalog.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	builder := domain.NewBuilderFromEntry(entry, catalog)
	if errs := builder.Validate(); len(errs) > 0 {
		return nil, errs
	}

	posted, err := s.gateway.PostEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	logger.Info("Entry posted", slog.String("entry_id", entryID))
	return posted, nil
}

// CancelEntry cancels a posted entry and returns the refreshed entry.
func (s *lifecycleService) CancelEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.gateway.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.CanCancel {
		return nil, fmt.Errorf("%w: entry %s cannot be cancelled while %s", apperrors.ErrTransitionNotAllowed, entryID, entry.Status)
	}

	cancelled, err := s.gateway.CancelEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	logger.Info("Entry cancelled", slog.String("entry_id", entryID))
	return cancelled, nil
}

// DeleteEntry deletes a draft. Posted and cancelled entries are permanent
// records and are never deleted.
func (s *lifecycleService) DeleteEntry(ctx context.Context, entryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.gateway.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.Status != domain.Draft {
		return fmt.Errorf("%w: only draft entries can be deleted, entry %s is %s", apperrors.ErrTransitionNotAllowed, entryID, entry.Status)
	}

	if err := s.gateway.DeleteEntry(ctx, entryID); err != nil {
		return err
	}

	logger.Info("Entry deleted", slog.String("entry_id", entryID))
	return nil
}
