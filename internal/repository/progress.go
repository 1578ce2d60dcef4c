package repository

import (
	"context"
	"errors"
	"time"

	"github.com/tereohoa/api/internal/model"
	"gorm.io/gorm"
)

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Upsert writes the status for (user, word); last status wins and updated_at
// is refreshed on every write.
func (r *ProgressRepository) Upsert(ctx context.Context, userID, wordID int64, status string) (*model.UserWordProgress, error) {
	var entry model.UserWordProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND word_id = ?", userID, wordID).
		First(&entry).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		entry = model.UserWordProgress{
			UserID: userID,
			WordID: wordID,
			Status: status,
		}
		if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
			return nil, translateErr(err)
		}
		return &entry, nil
	}
	if err != nil {
		return nil, err
	}

	entry.Status = status
	entry.UpdatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Save(&entry).Error; err != nil {
		return nil, translateErr(err)
	}
	return &entry, nil
}

func (r *ProgressRepository) CountByStatus(ctx context.Context, userID int64, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserWordProgress{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) Stats(ctx context.Context, userID int64) (*model.ProgressStats, error) {
	stats := &model.ProgressStats{}

	var err error
	if stats.LearnedCount, err = r.CountByStatus(ctx, userID, model.StatusLearned); err != nil {
		return nil, err
	}
	if stats.ReviewCount, err = r.CountByStatus(ctx, userID, model.StatusReview); err != nil {
		return nil, err
	}
	if stats.StarredCount, err = r.CountByStatus(ctx, userID, model.StatusStarred); err != nil {
		return nil, err
	}
	if stats.UnlearnedCount, err = r.CountByStatus(ctx, userID, model.StatusUnlearned); err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&model.Word{}).Count(&stats.TotalWords).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// LearnedWords returns the full word rows the user has marked learned.
func (r *ProgressRepository) LearnedWords(ctx context.Context, userID int64) ([]model.Word, error) {
	var words []model.Word
	err := r.db.WithContext(ctx).
		Joins("JOIN user_word_progress p ON p.word_id = words.id").
		Where("p.user_id = ? AND p.status = ?", userID, model.StatusLearned).
		Find(&words).Error
	return words, err
}
