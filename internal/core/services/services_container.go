package services

import (
	"time"

	"github.com/erpmobile/stock_journal_engine/internal/core/ports/gateways"
	portsrepo "github.com/erpmobile/stock_journal_engine/internal/core/ports/repositories"
	portssvc "github.com/erpmobile/stock_journal_engine/internal/core/ports/services"
	"github.com/erpmobile/stock_journal_engine/pkg/scheduler"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	sessionRepo portsrepo.SessionRepository,
	gateway gateways.SubmissionGateway,
	catalog gateways.ProductCatalog,
	debouncer *scheduler.Debouncer,
	debounceInterval time.Duration,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Session = NewSessionService(sessionRepo, gateway, catalog, debouncer, debounceInterval)
	container.Lifecycle = NewLifecycleService(gateway, catalog)

	return container
}
