package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/erpmobile/stock_journal_engine/internal/core/ports/services"
	"github.com/erpmobile/stock_journal_engine/internal/middleware"
	"github.com/erpmobile/stock_journal_engine/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Setup API v1 routes with auth passthrough, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Every v1 route requires the caller's Authorization header; the upstream
	// ERP API validates the credential itself.
	v1 := r.Group("/api/v1", middleware.AuthPassthroughMiddleware())

	registerSessionRoutes(v1, services.Session)
	registerEntryRoutes(v1, services.Lifecycle)
	registerPurchaseOrderRoutes(v1)
}
