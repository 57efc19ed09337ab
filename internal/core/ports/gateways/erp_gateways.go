package gateways

import (
	"context"

	"github.com/erpmobile/stock_journal_engine/internal/core/domain"
)

// EntryReader reloads entries from the upstream ERP API. The returned entry,
// including its status and capability flags, is server ground truth.
type EntryReader interface {
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
}

// EntryWriter submits validated entry payloads. The server decides whether
// the result is a draft or an immediately posted entry based on the
// submission action.
type EntryWriter interface {
	CreateEntry(ctx context.Context, submission domain.EntrySubmission) (*domain.JournalEntry, error)
	UpdateEntry(ctx context.Context, entryID string, submission domain.EntrySubmission) (*domain.JournalEntry, error)
}

// EntryLifecycle performs the server-confirmed transitions. Post and cancel
// return the refreshed entry so callers never have to patch status locally.
type EntryLifecycle interface {
	PostEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	CancelEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	DeleteEntry(ctx context.Context, entryID string) error
}

// SubmissionGateway combines all upstream entry operations.
type SubmissionGateway interface {
	EntryReader
	EntryWriter
	EntryLifecycle
}

// ProductCatalog queries the upstream inventory service for the read-only
// product snapshot and for per-line product search.
type ProductCatalog interface {
	FetchCatalog(ctx context.Context) (domain.Catalog, error)
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)
}
