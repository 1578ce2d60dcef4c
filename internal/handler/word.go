package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tereohoa/api/internal/service"
	"go.uber.org/zap"
)

type WordHandler struct {
	words *service.WordService
	log   *zap.SugaredLogger
}

func NewWordHandler(words *service.WordService, log *zap.SugaredLogger) *WordHandler {
	return &WordHandler{words: words, log: log}
}

func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return offset, limit
}

// List returns dictionary entries ordered alphabetically.
func (h *WordHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	words, err := h.words.List(c.Request.Context(), offset, limit)
	if err != nil {
		h.log.Errorw("failed to list words", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, words)
}

// Search filters the dictionary by word substring or exact level. An empty
// result is a 404 so clients can show "nothing found" directly.
func (h *WordHandler) Search(c *gin.Context) {
	searchBy := c.DefaultQuery("search_by", "word")
	value := c.Query("value")
	if value == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value is required"})
		return
	}

	offset, limit := pagination(c)
	words, err := h.words.Search(c.Request.Context(), searchBy, value, offset, limit)
	if err != nil {
		h.log.Errorw("word search failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if len(words) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no words matched the search"})
		return
	}
	c.JSON(http.StatusOK, words)
}

// WordOfTheDay returns the word pinned for the current day.
func (h *WordHandler) WordOfTheDay(c *gin.Context) {
	word, err := h.words.WordOfTheDay(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, word)
}

// Get returns one word by id.
func (h *WordHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid word id"})
		return
	}

	word, err := h.words.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, word)
}

type addWordRequest struct {
	Text string `json:"text" binding:"required"`
}

// Add runs the full ingestion pipeline for one word. Audio failure does not
// fail the request; the created word simply has no audio_url yet.
func (h *WordHandler) Add(c *gin.Context) {
	var req addWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	result, err := h.words.AddWord(c.Request.Context(), req.Text)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result.Word)
}

type batchAddRequest struct {
	Texts []string `json:"texts" binding:"required"`
}

// BatchAdd ingests up to MaxBatchSize words, skipping the ones that fail.
func (h *WordHandler) BatchAdd(c *gin.Context) {
	var req batchAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "texts is required"})
		return
	}

	result, err := h.words.BatchAddWords(c.Request.Context(), req.Texts)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Update changes a word's display text.
func (h *WordHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid word id"})
		return
	}

	var req addWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	word, err := h.words.UpdateText(c.Request.Context(), id, req.Text)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, word)
}

// GenerateAudio synthesizes pronunciation audio for an existing word.
func (h *WordHandler) GenerateAudio(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid word id"})
		return
	}

	word, err := h.words.GenerateAudio(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, word)
}
