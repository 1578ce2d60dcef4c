package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tereohoa/api/internal/service"
	"go.uber.org/zap"
)

// TranslateHandler exposes ad-hoc translation without persisting a word.
type TranslateHandler struct {
	ai  service.Translator
	log *zap.SugaredLogger
}

func NewTranslateHandler(ai service.Translator, log *zap.SugaredLogger) *TranslateHandler {
	return &TranslateHandler{ai: ai, log: log}
}

type translateRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *TranslateHandler) Translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text must not be empty"})
		return
	}

	data, err := h.ai.Translate(c.Request.Context(), text)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}
