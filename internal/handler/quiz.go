package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tereohoa/api/internal/middleware"
	"github.com/tereohoa/api/internal/service"
	"go.uber.org/zap"
)

type QuizHandler struct {
	quiz *service.QuizService
	log  *zap.SugaredLogger
}

func NewQuizHandler(quiz *service.QuizService, log *zap.SugaredLogger) *QuizHandler {
	return &QuizHandler{quiz: quiz, log: log}
}

// questionResponse is the client view of a question. The correct index stays
// server side until the answer is submitted.
type questionResponse struct {
	WordID   int64    `json:"word_id"`
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
}

// Next issues a fresh multiple-choice question from the learned pool.
func (h *QuizHandler) Next(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	question, err := h.quiz.IssueQuestion(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, questionResponse{
		WordID:   question.WordID,
		Question: question.Question,
		Choices:  question.Choices,
	})
}

type answerRequest struct {
	WordID      int64 `json:"word_id" binding:"required"`
	ChosenIndex *int  `json:"chosen_index" binding:"required"`
}

// Answer consumes the pending question for the word and grades the choice.
func (h *QuizHandler) Answer(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "word_id and chosen_index are required"})
		return
	}

	result, err := h.quiz.SubmitAnswer(c.Request.Context(), userID, req.WordID, *req.ChosenIndex)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
