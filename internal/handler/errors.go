package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tereohoa/api/internal/gemini"
	"github.com/tereohoa/api/internal/service"
)

// writeServiceError maps service and gateway errors to transport responses.
// Gateway failures surface as 502 so clients can distinguish "our bug" from
// "the AI did not cooperate".
func writeServiceError(c *gin.Context, err error) {
	var progressErr *service.InsufficientProgressError
	switch {
	case errors.As(err, &progressErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  progressErr.Error(),
			"needed": progressErr.Needed,
		})
	case errors.Is(err, service.ErrEmptyText):
		c.JSON(http.StatusBadRequest, gin.H{"error": "text must not be empty"})
	case errors.Is(err, service.ErrDuplicateWord):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text already exists"})
	case errors.Is(err, service.ErrWordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "word not found"})
	case errors.Is(err, service.ErrNoWords):
		c.JSON(http.StatusNotFound, gin.H{"error": "no words in dictionary"})
	case errors.Is(err, service.ErrNoTranslation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "word has no translation to synthesize"})
	case errors.Is(err, service.ErrBatchTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"error": "batch size exceeds limit"})
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid progress status"})
	case errors.Is(err, service.ErrInsufficientPool):
		c.JSON(http.StatusBadRequest, gin.H{"error": "not enough learned words to build a question"})
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no pending question for this word"})
	case errors.Is(err, service.ErrInvalidChoiceIndex):
		c.JSON(http.StatusBadRequest, gin.H{"error": "chosen index is out of range"})
	case errors.Is(err, gemini.ErrInvalidJSON):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to parse AI response."})
	case errors.Is(err, gemini.ErrMalformedEnvelope),
		errors.Is(err, gemini.ErrUpstream),
		errors.Is(err, gemini.ErrUpstreamTimeout),
		errors.Is(err, gemini.ErrNoAPIKeys):
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI did not return a usable response."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
