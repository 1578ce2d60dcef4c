package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/tereohoa/api/internal/middleware"
	"github.com/tereohoa/api/internal/model"
	"github.com/tereohoa/api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// MaxNewsPerRefresh caps how many items one refresh run may insert.
const MaxNewsPerRefresh = 10

// NewsService fetches positive news from the AI gateway and upserts it into
// the news store, deduplicating on source URL.
type NewsService struct {
	news NewsStore
	ai   NewsFetcher
	log  *zap.SugaredLogger

	now func() time.Time
}

func NewNewsService(news NewsStore, ai NewsFetcher, log *zap.SugaredLogger) *NewsService {
	return &NewsService{news: news, ai: ai, log: log, now: time.Now}
}

// Refresh fetches a fresh batch of stories and inserts the ones not seen
// before. Per-item failures are logged and skipped; only a failure of the
// whole fetch/parse is returned. The published date is server-assigned.
func (s *NewsService) Refresh(ctx context.Context) (int, error) {
	items, err := s.ai.PositiveNews(ctx)
	if err != nil {
		return 0, err
	}

	if len(items) > MaxNewsPerRefresh {
		items = items[:MaxNewsPerRefresh]
	}

	added := 0
	for _, item := range items {
		if item.Link == "" {
			continue
		}

		exists, err := s.news.ExistsBySourceURL(ctx, item.Link)
		if err != nil {
			s.log.Errorw("news dedup check failed", "url", item.Link, "error", err)
			continue
		}
		if exists {
			continue
		}

		news := &model.NewsItem{
			TitleEnglish:   item.Title,
			TitleMaori:     item.TitleMaori,
			SummaryEnglish: item.Content,
			SummaryMaori:   item.SummaryMaori,
			PublishedDate:  s.now().UTC(),
			SourceURL:      item.Link,
			Source:         "AI Generated",
			ImageURLs:      imageURLList(item.ImageURL),
		}

		if err := s.news.Create(ctx, news); err != nil {
			// A concurrent refresh may have inserted the same URL between the
			// existence check and the insert; treat that as a plain skip.
			if errors.Is(err, repository.ErrDuplicate) {
				continue
			}
			s.log.Errorw("failed to save news item", "url", item.Link, "error", err)
			continue
		}
		added++
	}

	middleware.RecordNewsAdded(added)
	return added, nil
}

func imageURLList(url string) datatypes.JSON {
	urls := []string{}
	if url != "" {
		urls = append(urls, url)
	}
	data, _ := json.Marshal(urls)
	return datatypes.JSON(data)
}

func (s *NewsService) Latest(ctx context.Context, limit int) ([]model.NewsItem, error) {
	return s.news.Latest(ctx, limit)
}

func (s *NewsService) List(ctx context.Context, offset, limit int) ([]model.NewsItem, error) {
	return s.news.List(ctx, offset, limit)
}

func (s *NewsService) Delete(ctx context.Context, id int64) error {
	return s.news.Delete(ctx, id)
}
