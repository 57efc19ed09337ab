package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erpmobile/stock_journal_engine/internal/dto"
	"github.com/erpmobile/stock_journal_engine/internal/middleware"
)

// previewPurchaseOrder computes per-line and order-level totals for a set of
// purchase order lines. The computation is pure; nothing is persisted.
func previewPurchaseOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.PurchaseOrderPreviewRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for previewPurchaseOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseOrderPreviewResponse(req.DomainLines()))
}

// registerPurchaseOrderRoutes registers purchase order preview routes
func registerPurchaseOrderRoutes(group *gin.RouterGroup) {
	orders := group.Group("/purchase-orders")
	{
		orders.POST("/preview", previewPurchaseOrder)
	}
}
