package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tereohoa/api/internal/model"
	"github.com/tereohoa/api/internal/repository"
	"go.uber.org/zap"
)

// UserHandler exposes the admin-only account management endpoints.
type UserHandler struct {
	users *repository.UserRepository
	log   *zap.SugaredLogger
}

func NewUserHandler(users *repository.UserRepository, log *zap.SugaredLogger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

// List returns every registered account.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.log.Errorw("failed to list users", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, users)
}

type setRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// SetRole promotes or demotes an account between learner and admin.
func (h *UserHandler) SetRole(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role is required"})
		return
	}
	if req.Role != model.RoleLearner && req.Role != model.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be learner or admin"})
		return
	}

	user, err := h.users.SetRole(c.Request.Context(), id, req.Role)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.log.Errorw("failed to set role", "user_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, user)
}
