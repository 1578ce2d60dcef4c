package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/tereohoa/api/internal/model"
	"gorm.io/gorm"
)

type WordRepository struct {
	db *gorm.DB
}

func NewWordRepository(db *gorm.DB) *WordRepository {
	return &WordRepository{db: db}
}

func translateErr(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

func (r *WordRepository) Create(ctx context.Context, word *model.Word) error {
	if err := r.db.WithContext(ctx).Create(word).Error; err != nil {
		return translateErr(err)
	}
	return nil
}

func (r *WordRepository) GetByID(ctx context.Context, id int64) (*model.Word, error) {
	var word model.Word
	if err := r.db.WithContext(ctx).First(&word, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &word, nil
}

func (r *WordRepository) GetByNormalized(ctx context.Context, normalized string) (*model.Word, error) {
	var word model.Word
	err := r.db.WithContext(ctx).Where("normalized = ?", normalized).First(&word).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &word, nil
}

func (r *WordRepository) UpdateAudioURL(ctx context.Context, id int64, audioURL string) error {
	err := r.db.WithContext(ctx).Model(&model.Word{}).Where("id = ?", id).
		Update("audio_url", audioURL).Error
	return translateErr(err)
}

func (r *WordRepository) Update(ctx context.Context, word *model.Word) error {
	if err := r.db.WithContext(ctx).Save(word).Error; err != nil {
		return translateErr(err)
	}
	return nil
}

// List returns words ordered alphabetically.
func (r *WordRepository) List(ctx context.Context, offset, limit int) ([]model.Word, error) {
	var words []model.Word
	err := r.db.WithContext(ctx).Order("text ASC").Offset(offset).Limit(limit).Find(&words).Error
	return words, err
}

// Search filters words by partial text match or exact level.
// An unsupported searchBy or level value yields an empty result, not an error.
func (r *WordRepository) Search(ctx context.Context, searchBy, value string, offset, limit int) ([]model.Word, error) {
	q := r.db.WithContext(ctx).Model(&model.Word{})

	switch searchBy {
	case "word":
		q = q.Where("LOWER(text) LIKE ?", "%"+strings.ToLower(value)+"%")
	case "level":
		level := strings.ToLower(value)
		if level != "beginner" && level != "intermediate" {
			return nil, nil
		}
		q = q.Where("LOWER(level) = ?", level)
	default:
		return nil, nil
	}

	var words []model.Word
	err := q.Order("text ASC").Offset(offset).Limit(limit).Find(&words).Error
	return words, err
}

func (r *WordRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Word{}).Count(&count).Error
	return count, err
}

// Random returns one uniformly random word.
func (r *WordRepository) Random(ctx context.Context) (*model.Word, error) {
	var word model.Word
	err := r.db.WithContext(ctx).Order("RANDOM()").First(&word).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &word, nil
}
