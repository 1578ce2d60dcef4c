package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tereohoa/api/internal/middleware"
	"github.com/tereohoa/api/internal/service"
	"go.uber.org/zap"
)

type ProgressHandler struct {
	progress *service.ProgressService
	log      *zap.SugaredLogger
}

func NewProgressHandler(progress *service.ProgressService, log *zap.SugaredLogger) *ProgressHandler {
	return &ProgressHandler{progress: progress, log: log}
}

type markProgressRequest struct {
	WordID int64  `json:"word_id" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// Mark sets the learning status of a word for the authenticated user.
func (h *ProgressHandler) Mark(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req markProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "word_id and status are required"})
		return
	}

	progress, err := h.progress.Mark(c.Request.Context(), userID, req.WordID, req.Status)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// Stats returns per-status counts for the authenticated user.
func (h *ProgressHandler) Stats(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	stats, err := h.progress.Stats(c.Request.Context(), userID)
	if err != nil {
		h.log.Errorw("failed to load progress stats", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Learned lists the user's learned vocabulary as word/translation pairs.
func (h *ProgressHandler) Learned(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	learned, err := h.progress.LearnedWords(c.Request.Context(), userID)
	if err != nil {
		h.log.Errorw("failed to load learned words", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, learned)
}
