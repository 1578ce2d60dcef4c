package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tereohoa/api/internal/tts"
	"go.uber.org/zap"
)

type TTSHandler struct {
	tts *tts.Service
	log *zap.SugaredLogger
}

func NewTTSHandler(svc *tts.Service, log *zap.SugaredLogger) *TTSHandler {
	return &TTSHandler{tts: svc, log: log}
}

// Speak synthesizes arbitrary text on demand. Repeated requests for the same
// text and voice are served from the on-disk cache.
func (h *TTSHandler) Speak(c *gin.Context) {
	text := strings.TrimSpace(c.Query("text"))
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	if len(text) > tts.MaxTextLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is too long"})
		return
	}
	voice := c.Query("voice")

	audioURL, cached, err := h.tts.Generate(c.Request.Context(), text, voice)
	if err != nil {
		h.log.Errorw("tts synthesis failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "speech synthesis failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"audio_url": audioURL, "cached": cached})
}

// ClearCache deletes every cached synthesis file.
func (h *TTSHandler) ClearCache(c *gin.Context) {
	removed, err := h.tts.ClearCache()
	if err != nil {
		h.log.Errorw("failed to clear tts cache", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
