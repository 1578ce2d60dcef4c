package repository

import (
	"context"

	"github.com/tereohoa/api/internal/model"
	"gorm.io/gorm"
)

type NewsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

func (r *NewsRepository) ExistsBySourceURL(ctx context.Context, sourceURL string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.NewsItem{}).
		Where("source_url = ?", sourceURL).
		Count(&count).Error
	return count > 0, err
}

func (r *NewsRepository) Create(ctx context.Context, item *model.NewsItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return translateErr(err)
	}
	return nil
}

// Latest returns the most recently published items.
func (r *NewsRepository) Latest(ctx context.Context, limit int) ([]model.NewsItem, error) {
	var items []model.NewsItem
	err := r.db.WithContext(ctx).Order("published_date DESC").Limit(limit).Find(&items).Error
	return items, err
}

func (r *NewsRepository) List(ctx context.Context, offset, limit int) ([]model.NewsItem, error) {
	var items []model.NewsItem
	err := r.db.WithContext(ctx).Order("published_date DESC").Offset(offset).Limit(limit).Find(&items).Error
	return items, err
}

func (r *NewsRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.NewsItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
