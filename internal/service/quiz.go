package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/tereohoa/api/internal/middleware"
	"github.com/tereohoa/api/internal/model"
	"github.com/tereohoa/api/internal/repository"
	"github.com/tereohoa/api/internal/session"
	"go.uber.org/zap"
)

const (
	// MinLearnedForQuiz is how many learned words unlock the quiz.
	MinLearnedForQuiz = 10
	// QuizChoices is the number of options per question: one correct answer
	// and three decoys.
	QuizChoices = 4
)

// Question is the full quiz question including the correct index. HTTP
// handlers strip CorrectIndex before responding; only the answer result
// reveals it to clients.
type Question struct {
	WordID       int64    `json:"word_id"`
	Question     string   `json:"question"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correct_index"`
}

type AnswerResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
}

// QuizService issues multiple-choice questions from a user's learned-word
// pool and validates each answer against the stored session exactly once.
type QuizService struct {
	words    WordStore
	progress ProgressStore
	sessions session.Store
	log      *zap.SugaredLogger
}

func NewQuizService(words WordStore, progress ProgressStore, sessions session.Store, log *zap.SugaredLogger) *QuizService {
	return &QuizService{words: words, progress: progress, sessions: sessions, log: log}
}

// IssueQuestion picks a learned word uniformly at random, samples three
// distinct decoys from the rest of the learned pool, shuffles and stores
// the choice list as the pending session for (user, word). Re-issuing a
// question for the same word replaces any unanswered session.
func (s *QuizService) IssueQuestion(ctx context.Context, userID int64) (*Question, error) {
	learned, err := s.progress.LearnedWords(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(learned) < MinLearnedForQuiz {
		return nil, &InsufficientProgressError{Needed: MinLearnedForQuiz - len(learned)}
	}
	if len(learned) < QuizChoices {
		return nil, ErrInsufficientPool
	}

	correct := learned[rand.Intn(len(learned))]

	decoyPool := make([]model.Word, 0, len(learned)-1)
	for _, w := range learned {
		if w.ID != correct.ID {
			decoyPool = append(decoyPool, w)
		}
	}
	if len(decoyPool) < QuizChoices-1 {
		return nil, ErrInsufficientPool
	}
	rand.Shuffle(len(decoyPool), func(i, j int) {
		decoyPool[i], decoyPool[j] = decoyPool[j], decoyPool[i]
	})

	choices := make([]string, 0, QuizChoices)
	for _, decoy := range decoyPool[:QuizChoices-1] {
		choices = append(choices, decoy.Translation)
	}
	choices = append(choices, correct.Translation)
	rand.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	correctIndex := 0
	for i, c := range choices {
		if c == correct.Translation {
			correctIndex = i
			break
		}
	}

	key := session.Key{UserID: userID, WordID: correct.ID}
	if err := s.sessions.Put(ctx, key, choices); err != nil {
		return nil, err
	}

	return &Question{
		WordID:       correct.ID,
		Question:     fmt.Sprintf("What is the Māori translation for '%s'?", correct.Text),
		Choices:      choices,
		CorrectIndex: correctIndex,
	}, nil
}

// SubmitAnswer consumes the pending session for (user, word) and checks the
// chosen option against the word's canonical translation. The session is
// gone after this call whatever the outcome, so a second submission sees
// ErrSessionNotFound.
func (s *QuizService) SubmitAnswer(ctx context.Context, userID, wordID int64, chosenIndex int) (*AnswerResult, error) {
	key := session.Key{UserID: userID, WordID: wordID}
	choices, ok, err := s.sessions.Consume(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSessionNotFound
	}

	if chosenIndex < 0 || chosenIndex >= len(choices) {
		return nil, ErrInvalidChoiceIndex
	}

	word, err := s.words.GetByID(ctx, wordID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWordNotFound
		}
		return nil, err
	}

	chosen := strings.TrimSpace(choices[chosenIndex])
	correct := strings.EqualFold(chosen, strings.TrimSpace(word.Translation))
	middleware.RecordQuizAnswer(correct)

	return &AnswerResult{
		Correct:       correct,
		CorrectAnswer: word.Translation,
	}, nil
}
