package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tereohoa/api/internal/model"
	"github.com/tereohoa/api/internal/session"
)

func quizFixture(t *testing.T, learnedCount int) (*QuizService, *fakeWordStore, int64) {
	t.Helper()
	store := newFakeWordStore()
	progress := newFakeProgressStore()
	userID := int64(1)

	for i := 0; i < learnedCount; i++ {
		word := &model.Word{
			Text:        fmt.Sprintf("word-%02d", i),
			Normalized:  fmt.Sprintf("word-%02d", i),
			Translation: fmt.Sprintf("kupu-%02d", i),
		}
		require.NoError(t, store.Create(context.Background(), word))
		progress.learned[userID] = append(progress.learned[userID], *word)
	}

	svc := NewQuizService(store, progress, session.NewMemoryStore(), testLogger())
	return svc, store, userID
}

func TestIssueQuestionInsufficientProgress(t *testing.T) {
	svc, _, userID := quizFixture(t, 6)

	_, err := svc.IssueQuestion(context.Background(), userID)

	var progressErr *InsufficientProgressError
	require.ErrorAs(t, err, &progressErr)
	assert.Equal(t, 4, progressErr.Needed)
}

func TestIssueQuestionNoProgressAtAll(t *testing.T) {
	svc, _, userID := quizFixture(t, 0)

	_, err := svc.IssueQuestion(context.Background(), userID)

	var progressErr *InsufficientProgressError
	require.ErrorAs(t, err, &progressErr)
	assert.Equal(t, MinLearnedForQuiz, progressErr.Needed)
}

func TestIssueQuestionShape(t *testing.T) {
	svc, store, userID := quizFixture(t, 12)

	question, err := svc.IssueQuestion(context.Background(), userID)
	require.NoError(t, err)

	require.Len(t, question.Choices, QuizChoices)
	assert.Contains(t, question.Question, "Māori translation")

	seen := make(map[string]bool)
	for _, c := range question.Choices {
		assert.False(t, seen[c], "duplicate choice %q", c)
		seen[c] = true
	}

	word, err := store.GetByID(context.Background(), question.WordID)
	require.NoError(t, err)
	require.GreaterOrEqual(t, question.CorrectIndex, 0)
	require.Less(t, question.CorrectIndex, QuizChoices)
	assert.Equal(t, word.Translation, question.Choices[question.CorrectIndex])
}

func TestSubmitAnswerCorrect(t *testing.T) {
	svc, store, userID := quizFixture(t, 10)

	question, err := svc.IssueQuestion(context.Background(), userID)
	require.NoError(t, err)

	result, err := svc.SubmitAnswer(context.Background(), userID, question.WordID, question.CorrectIndex)
	require.NoError(t, err)

	word, _ := store.GetByID(context.Background(), question.WordID)
	assert.True(t, result.Correct)
	assert.Equal(t, word.Translation, result.CorrectAnswer)
}

func TestSubmitAnswerIncorrectRevealsAnswer(t *testing.T) {
	svc, store, userID := quizFixture(t, 10)

	question, err := svc.IssueQuestion(context.Background(), userID)
	require.NoError(t, err)

	wrong := (question.CorrectIndex + 1) % QuizChoices
	result, err := svc.SubmitAnswer(context.Background(), userID, question.WordID, wrong)
	require.NoError(t, err)

	word, _ := store.GetByID(context.Background(), question.WordID)
	assert.False(t, result.Correct)
	assert.Equal(t, word.Translation, result.CorrectAnswer)
}

func TestSubmitAnswerConsumesSession(t *testing.T) {
	svc, _, userID := quizFixture(t, 10)

	question, err := svc.IssueQuestion(context.Background(), userID)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(context.Background(), userID, question.WordID, question.CorrectIndex)
	require.NoError(t, err)

	// The session is gone whatever the outcome was.
	_, err = svc.SubmitAnswer(context.Background(), userID, question.WordID, question.CorrectIndex)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSubmitAnswerInvalidIndex(t *testing.T) {
	svc, _, userID := quizFixture(t, 10)

	question, err := svc.IssueQuestion(context.Background(), userID)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(context.Background(), userID, question.WordID, QuizChoices)
	assert.ErrorIs(t, err, ErrInvalidChoiceIndex)

	// An out-of-range submission still consumed the session.
	_, err = svc.SubmitAnswer(context.Background(), userID, question.WordID, 0)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSubmitAnswerWithoutQuestion(t *testing.T) {
	svc, _, userID := quizFixture(t, 10)

	_, err := svc.SubmitAnswer(context.Background(), userID, 1, 0)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestReissueReplacesPendingSession(t *testing.T) {
	store := newFakeWordStore()
	progress := newFakeProgressStore()
	userID := int64(1)

	// A pool of exactly QuizChoices learned words but above the unlock
	// threshold, so the same correct word can recur.
	for i := 0; i < 10; i++ {
		word := &model.Word{
			Text:        fmt.Sprintf("w%d", i),
			Normalized:  fmt.Sprintf("w%d", i),
			Translation: fmt.Sprintf("t%d", i),
		}
		require.NoError(t, store.Create(context.Background(), word))
		progress.learned[userID] = append(progress.learned[userID], *word)
	}
	svc := NewQuizService(store, progress, session.NewMemoryStore(), testLogger())

	first, err := svc.IssueQuestion(context.Background(), userID)
	require.NoError(t, err)

	var second *Question
	for i := 0; i < 100; i++ {
		second, err = svc.IssueQuestion(context.Background(), userID)
		require.NoError(t, err)
		if second.WordID == first.WordID {
			break
		}
	}
	if second.WordID != first.WordID {
		t.Skip("random pick never repeated the word")
	}

	// Answering grades against the latest issued session.
	result, err := svc.SubmitAnswer(context.Background(), userID, second.WordID, second.CorrectIndex)
	require.NoError(t, err)
	assert.True(t, result.Correct)
}
