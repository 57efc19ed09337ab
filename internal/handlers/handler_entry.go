package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/erpmobile/stock_journal_engine/internal/core/ports/services"
	"github.com/erpmobile/stock_journal_engine/internal/dto"
	"github.com/erpmobile/stock_journal_engine/internal/middleware"
)

// entryHandler handles HTTP requests for journal entry lifecycle transitions.
type entryHandler struct {
	lifecycleService portssvc.LifecycleSvcFacade
}

// newEntryHandler creates a new entryHandler.
func newEntryHandler(lifecycleService portssvc.LifecycleSvcFacade) *entryHandler {
	return &entryHandler{
		lifecycleService: lifecycleService,
	}
}

// getEntry reloads one entry from the upstream API.
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.lifecycleService.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to load entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// postEntry posts a draft and returns the refreshed entry.
func (h *entryHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.lifecycleService.PostEntry(c.Request.Context(), entryID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// cancelEntry cancels a posted entry and returns the refreshed entry.
func (h *entryHandler) cancelEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.lifecycleService.CancelEntry(c.Request.Context(), entryID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to cancel entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// deleteEntry deletes a draft.
func (h *entryHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	if err := h.lifecycleService.DeleteEntry(c.Request.Context(), entryID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete entry")
		return
	}

	c.Status(http.StatusNoContent)
}

// registerEntryRoutes registers entry lifecycle routes
func registerEntryRoutes(group *gin.RouterGroup, lifecycleService portssvc.LifecycleSvcFacade) {
	handler := newEntryHandler(lifecycleService)

	entries := group.Group("/entries")
	{
		entries.GET("/:entryID", handler.getEntry)
		entries.POST("/:entryID/post", handler.postEntry)
		entries.POST("/:entryID/cancel", handler.cancelEntry)
		entries.DELETE("/:entryID", handler.deleteEntry)
	}
}
