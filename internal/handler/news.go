package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tereohoa/api/internal/repository"
	"github.com/tereohoa/api/internal/scheduler"
	"github.com/tereohoa/api/internal/service"
	"go.uber.org/zap"
)

type NewsHandler struct {
	news  *service.NewsService
	sched *scheduler.Scheduler
	log   *zap.SugaredLogger
}

// NewNewsHandler wires the news endpoints. sched may be nil when the
// scheduler is disabled; refresh then runs directly against the service.
func NewNewsHandler(news *service.NewsService, sched *scheduler.Scheduler, log *zap.SugaredLogger) *NewsHandler {
	return &NewsHandler{news: news, sched: sched, log: log}
}

// Latest returns the most recent stories for the feed.
func (h *NewsHandler) Latest(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	items, err := h.news.Latest(c.Request.Context(), limit)
	if err != nil {
		h.log.Errorw("failed to load latest news", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// All pages through every stored story.
func (h *NewsHandler) All(c *gin.Context) {
	offset, limit := pagination(c)
	items, err := h.news.List(c.Request.Context(), offset, limit)
	if err != nil {
		h.log.Errorw("failed to list news", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// Refresh triggers an immediate news fetch outside the cron cadence.
func (h *NewsHandler) Refresh(c *gin.Context) {
	var (
		added int
		err   error
	)
	if h.sched != nil {
		added, err = h.sched.RunNow(c.Request.Context())
	} else {
		added, err = h.news.Refresh(c.Request.Context())
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}

// SchedulerStatus reports the cron state for the admin dashboard.
func (h *NewsHandler) SchedulerStatus(c *gin.Context) {
	if h.sched == nil {
		c.JSON(http.StatusOK, gin.H{"running": false})
		return
	}
	c.JSON(http.StatusOK, h.sched.GetStatus())
}

// Delete removes one story by id.
func (h *NewsHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid news id"})
		return
	}

	if err := h.news.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "news item not found"})
			return
		}
		h.log.Errorw("failed to delete news item", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
