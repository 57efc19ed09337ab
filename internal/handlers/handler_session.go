package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/erpmobile/stock_journal_engine/internal/core/ports/services"
	"github.com/erpmobile/stock_journal_engine/internal/dto"
	"github.com/erpmobile/stock_journal_engine/internal/middleware"
)

// sessionHandler handles HTTP requests for composition sessions.
type sessionHandler struct {
	sessionService portssvc.SessionSvcFacade
}

// newSessionHandler creates a new sessionHandler.
func newSessionHandler(sessionService portssvc.SessionSvcFacade) *sessionHandler {
	return &sessionHandler{
		sessionService: sessionService,
	}
}

// openSession starts a composition session for a new entry, or for editing an
// existing draft when an entry ID is provided.
func (h *sessionHandler) openSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.OpenSessionRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for openSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	session, err := h.sessionService.OpenSession(c.Request.Context(), req.DomainEntryType(), req.EntryID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to open session")
		return
	}

	c.JSON(http.StatusCreated, dto.ToSessionResponse(session))
}

// getSession returns the current session state.
func (h *sessionHandler) getSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")

	session, err := h.sessionService.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to load session")
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// closeSession abandons a session without submitting it.
func (h *sessionHandler) closeSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")

	if err := h.sessionService.CloseSession(c.Request.Context(), sessionID); err != nil {
		respondServiceError(c, logger, err, "Failed to close session")
		return
	}

	c.Status(http.StatusNoContent)
}

// updateHeader applies entry-level field changes.
func (h *sessionHandler) updateHeader(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")

	req := dto.UpdateHeaderRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateHeader", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	session, err := h.sessionService.UpdateHeader(c.Request.Context(), sessionID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update session header")
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// addLine appends an empty movement line.
func (h *sessionHandler) addLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")

	req := dto.AddLineRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addLine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	session, lineID, err := h.sessionService.AddLine(c.Request.Context(), sessionID, req.DomainSide())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to add line")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"lineID": lineID, "session": dto.ToSessionResponse(session)})
}

// updateLine applies last-write-wins field mutations to one line.
func (h *sessionHandler) updateLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")
	lineID := c.Param("lineID")

	req := dto.UpdateLineRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateLine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	session, err := h.sessionService.UpdateLine(c.Request.Context(), sessionID, lineID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update line")
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// removeLine removes a line from the session.
func (h *sessionHandler) removeLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")
	lineID := c.Param("lineID")

	session, err := h.sessionService.RemoveLine(c.Request.Context(), sessionID, lineID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to remove line")
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// searchProducts answers a per-line product search from the session snapshot.
func (h *sessionHandler) searchProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")
	lineID := c.Param("lineID")
	query := c.Query("q")

	products, err := h.sessionService.SearchProducts(c.Request.Context(), sessionID, lineID, query)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to search products")
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": dto.ToProductResponses(products)})
}

// validateSession runs the local pre-submission checks.
func (h *sessionHandler) validateSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")

	errs, err := h.sessionService.Validate(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to validate session")
		return
	}

	c.JSON(http.StatusOK, dto.ToValidationResponse(errs))
}

// submitSession validates the session and submits it to the upstream API.
func (h *sessionHandler) submitSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")

	req := dto.SubmitRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for submitSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.sessionService.Submit(c.Request.Context(), sessionID, req.DomainAction())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to submit entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// registerSessionRoutes registers composition session routes
func registerSessionRoutes(group *gin.RouterGroup, sessionService portssvc.SessionSvcFacade) {
	handler := newSessionHandler(sessionService)

	sessions := group.Group("/sessions")
	{
		sessions.POST("", handler.openSession)
		sessions.GET("/:sessionID", handler.getSession)
		sessions.DELETE("/:sessionID", handler.closeSession)
		sessions.PATCH("/:sessionID", handler.updateHeader)
		sessions.POST("/:sessionID/lines", handler.addLine)
		sessions.PATCH("/:sessionID/lines/:lineID", handler.updateLine)
		sessions.DELETE("/:sessionID/lines/:lineID", handler.removeLine)
		sessions.GET("/:sessionID/lines/:lineID/search", handler.searchProducts)
		sessions.POST("/:sessionID/validate", handler.validateSession)
		sessions.POST("/:sessionID/submit", handler.submitSession)
	}
}
