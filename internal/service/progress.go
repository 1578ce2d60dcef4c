package service

import (
	"context"
	"errors"

	"github.com/tereohoa/api/internal/model"
	"github.com/tereohoa/api/internal/repository"
	"go.uber.org/zap"
)

// ProgressService records per-user learning states and reports aggregates.
type ProgressService struct {
	words    WordStore
	progress ProgressStore
	log      *zap.SugaredLogger
}

func NewProgressService(words WordStore, progress ProgressStore, log *zap.SugaredLogger) *ProgressService {
	return &ProgressService{words: words, progress: progress, log: log}
}

// Mark sets the learning status of a word for a user, creating the progress
// row on first touch. Marking the same status twice is a no-op update.
func (s *ProgressService) Mark(ctx context.Context, userID, wordID int64, status string) (*model.UserWordProgress, error) {
	if !model.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	if _, err := s.words.GetByID(ctx, wordID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWordNotFound
		}
		return nil, err
	}

	return s.progress.Upsert(ctx, userID, wordID, status)
}

func (s *ProgressService) Stats(ctx context.Context, userID int64) (*model.ProgressStats, error) {
	return s.progress.Stats(ctx, userID)
}

// LearnedWords lists the learned vocabulary as compact word/translation pairs.
func (s *ProgressService) LearnedWords(ctx context.Context, userID int64) ([]model.LearnedWord, error) {
	words, err := s.progress.LearnedWords(ctx, userID)
	if err != nil {
		return nil, err
	}
	learned := make([]model.LearnedWord, 0, len(words))
	for _, w := range words {
		learned = append(learned, model.LearnedWord{Word: w.Text, Translation: w.Translation})
	}
	return learned, nil
}
