package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erpmobile/stock_journal_engine/internal/apperrors"
	"github.com/erpmobile/stock_journal_engine/internal/core/domain"
)

// respondServiceError translates a service error into an HTTP response.
// Validation failures carry the full collected error list; upstream rejection
// messages pass through verbatim.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var validationErrs domain.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		logger.Warn("Validation failed", slog.Int("error_count", len(validationErrs)))
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErrs.Error(), "validationErrors": validationErrs})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrEntryImmutable), errors.Is(err, apperrors.ErrTransitionNotAllowed):
		logger.Warn("Transition rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrSubmission):
		logger.Warn("Upstream rejected submission", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUpstreamUnavailable):
		logger.Error("Upstream unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream API is unavailable"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
