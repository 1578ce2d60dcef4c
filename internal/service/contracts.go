package service

import (
	"context"
	"time"

	"github.com/tereohoa/api/internal/gemini"
	"github.com/tereohoa/api/internal/model"
)

// Capability interfaces consumed by the services. The gorm repositories and
// the gemini client satisfy them in production; tests supply fakes.

type WordStore interface {
	Create(ctx context.Context, word *model.Word) error
	GetByID(ctx context.Context, id int64) (*model.Word, error)
	GetByNormalized(ctx context.Context, normalized string) (*model.Word, error)
	UpdateAudioURL(ctx context.Context, id int64, audioURL string) error
	Update(ctx context.Context, word *model.Word) error
	List(ctx context.Context, offset, limit int) ([]model.Word, error)
	Search(ctx context.Context, searchBy, value string, offset, limit int) ([]model.Word, error)
	Count(ctx context.Context) (int64, error)
	Random(ctx context.Context) (*model.Word, error)
}

type ProgressStore interface {
	Upsert(ctx context.Context, userID, wordID int64, status string) (*model.UserWordProgress, error)
	CountByStatus(ctx context.Context, userID int64, status string) (int64, error)
	Stats(ctx context.Context, userID int64) (*model.ProgressStats, error)
	LearnedWords(ctx context.Context, userID int64) ([]model.Word, error)
}

type NewsStore interface {
	ExistsBySourceURL(ctx context.Context, sourceURL string) (bool, error)
	Create(ctx context.Context, item *model.NewsItem) error
	Latest(ctx context.Context, limit int) ([]model.NewsItem, error)
	List(ctx context.Context, offset, limit int) ([]model.NewsItem, error)
	Delete(ctx context.Context, id int64) error
}

// Translator is the word-translation face of the AI gateway.
type Translator interface {
	Translate(ctx context.Context, text string) (gemini.WordData, error)
}

// NewsFetcher is the positive-news face of the AI gateway.
type NewsFetcher interface {
	PositiveNews(ctx context.Context) ([]gemini.NewsItemData, error)
}

// AudioGenerator synthesizes pronunciation audio for a word and returns its URL.
type AudioGenerator interface {
	GenerateWordAudio(ctx context.Context, text string, wordID int64) (string, error)
}

// WordOfTheDayCache pins the daily word so all users see the same one.
// A nil cache is tolerated; the service falls back to a fresh random pick.
type WordOfTheDayCache interface {
	GetWordOfTheDay(ctx context.Context, day time.Time) (int64, bool)
	SetWordOfTheDay(ctx context.Context, day time.Time, wordID int64) error
}
