package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/tereohoa/api/internal/gemini"
	"github.com/tereohoa/api/internal/model"
	"github.com/tereohoa/api/internal/repository"
	"go.uber.org/zap"
)

// MaxBatchSize caps how many words one batch_add call may carry.
const MaxBatchSize = 15

// Normalize returns the canonical dedup key for a word text. Idempotent.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// WordService runs the word ingestion pipeline: dedup pre-check, AI
// translation, persistence, then best-effort audio synthesis.
type WordService struct {
	words WordStore
	ai    Translator
	audio AudioGenerator
	wotd  WordOfTheDayCache
	log   *zap.SugaredLogger
	now   func() time.Time

	// Local pin for the word of the day, so the pick stays stable for the
	// rest of the calendar day even when Redis is down or was never there.
	mu       sync.Mutex
	localDay string
	localID  int64
}

func NewWordService(words WordStore, ai Translator, audio AudioGenerator, wotd WordOfTheDayCache, log *zap.SugaredLogger) *WordService {
	return &WordService{words: words, ai: ai, audio: audio, wotd: wotd, log: log, now: time.Now}
}

// AddWordResult reports a created word together with the outcome of the
// best-effort audio step. AudioErr is informational; the word row exists
// either way.
type AddWordResult struct {
	Word     *model.Word
	AudioErr error
}

// BatchResult collects the per-item outcomes of a batch add. Failed items
// land in Skipped with their original text; the batch never aborts early.
type BatchResult struct {
	Added   []model.Word `json:"added"`
	Skipped []string     `json:"skipped"`
}

// AddWord creates a dictionary entry for text. The dedup check runs before
// the AI call so a duplicate never wastes an upstream request. Audio
// synthesis failures are recorded on the result, not returned as errors.
func (s *WordService) AddWord(ctx context.Context, text string) (*AddWordResult, error) {
	normalized := Normalize(text)
	if normalized == "" {
		return nil, ErrEmptyText
	}

	if _, err := s.words.GetByNormalized(ctx, normalized); err == nil {
		return nil, ErrDuplicateWord
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	data, err := s.ai.Translate(ctx, strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}

	word := &model.Word{
		Text:        strings.TrimSpace(text),
		Normalized:  normalized,
		Translation: data.Translation,
		IPA:         data.IPA,
		Phonetic:    data.Phonetic,
		Level:       gemini.SanitizeLevel(data.Level),
		Type:        data.Type,
		Domain:      data.Domain,
		Example:     data.Example,
		Notes:       data.Notes,
	}

	if err := s.words.Create(ctx, word); err != nil {
		// A concurrent insert can beat the pre-check; the unique index on
		// normalized turns that race into "already exists".
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateWord
		}
		return nil, err
	}

	result := &AddWordResult{Word: word}
	if s.audio == nil || word.Translation == "" {
		return result, nil
	}

	audioURL, err := s.audio.GenerateWordAudio(ctx, word.Translation, word.ID)
	if err != nil {
		s.log.Warnw("audio generation failed, word kept without audio",
			"word", word.Text, "error", err)
		result.AudioErr = err
		return result, nil
	}
	if err := s.words.UpdateAudioURL(ctx, word.ID, audioURL); err != nil {
		s.log.Warnw("failed to store audio url", "word", word.Text, "error", err)
		result.AudioErr = err
		return result, nil
	}
	word.AudioURL = audioURL
	return result, nil
}

// BatchAddWords applies the AddWord sequence to each text independently.
// A failing item is skipped, never aborting the rest. Repeated occurrences
// of the same normalized text within one batch are skipped without touching
// the gateway or the database.
func (s *WordService) BatchAddWords(ctx context.Context, texts []string) (*BatchResult, error) {
	if len(texts) > MaxBatchSize {
		return nil, ErrBatchTooLarge
	}

	result := &BatchResult{Added: []model.Word{}, Skipped: []string{}}
	seen := make(map[string]bool, len(texts))

	for _, text := range texts {
		normalized := Normalize(text)
		if normalized == "" || seen[normalized] {
			result.Skipped = append(result.Skipped, text)
			continue
		}
		seen[normalized] = true

		added, err := s.AddWord(ctx, text)
		if err != nil {
			s.log.Infow("skipped word in batch", "word", text, "reason", err)
			result.Skipped = append(result.Skipped, text)
			continue
		}
		result.Added = append(result.Added, *added.Word)
	}
	return result, nil
}

// GenerateAudio synthesizes pronunciation audio for an existing word. Unlike
// the ingestion path, failure here is returned to the caller.
func (s *WordService) GenerateAudio(ctx context.Context, wordID int64) (*model.Word, error) {
	word, err := s.words.GetByID(ctx, wordID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWordNotFound
		}
		return nil, err
	}
	if word.Translation == "" {
		return nil, ErrNoTranslation
	}

	audioURL, err := s.audio.GenerateWordAudio(ctx, word.Translation, word.ID)
	if err != nil {
		return nil, err
	}
	if err := s.words.UpdateAudioURL(ctx, word.ID, audioURL); err != nil {
		return nil, err
	}
	word.AudioURL = audioURL
	return word, nil
}

// WordOfTheDay returns a random word that stays stable for a calendar day.
// Redis is consulted first so every instance agrees on the pick; the
// in-process pin covers the instance when Redis misses or is absent.
func (s *WordService) WordOfTheDay(ctx context.Context) (*model.Word, error) {
	today := s.now()
	day := today.Format("2006-01-02")

	if s.wotd != nil {
		if id, ok := s.wotd.GetWordOfTheDay(ctx, today); ok {
			if word, err := s.words.GetByID(ctx, id); err == nil {
				s.pinWordOfTheDay(day, word.ID)
				return word, nil
			}
		}
	}

	if id, ok := s.pinnedWordOfTheDay(day); ok {
		if word, err := s.words.GetByID(ctx, id); err == nil {
			return word, nil
		}
	}

	word, err := s.words.Random(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoWords
		}
		return nil, err
	}

	s.pinWordOfTheDay(day, word.ID)
	if s.wotd != nil {
		if err := s.wotd.SetWordOfTheDay(ctx, today, word.ID); err != nil {
			s.log.Warnw("failed to cache word of the day", "error", err)
		}
	}
	return word, nil
}

func (s *WordService) pinWordOfTheDay(day string, id int64) {
	s.mu.Lock()
	s.localDay, s.localID = day, id
	s.mu.Unlock()
}

func (s *WordService) pinnedWordOfTheDay(day string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.localDay != day {
		return 0, false
	}
	return s.localID, true
}

func (s *WordService) Get(ctx context.Context, id int64) (*model.Word, error) {
	word, err := s.words.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrWordNotFound
	}
	return word, err
}

func (s *WordService) List(ctx context.Context, offset, limit int) ([]model.Word, error) {
	return s.words.List(ctx, offset, limit)
}

func (s *WordService) Search(ctx context.Context, searchBy, value string, offset, limit int) ([]model.Word, error) {
	return s.words.Search(ctx, searchBy, value, offset, limit)
}

// UpdateText changes a word's display text and its normalized key.
func (s *WordService) UpdateText(ctx context.Context, id int64, text string) (*model.Word, error) {
	normalized := Normalize(text)
	if normalized == "" {
		return nil, ErrEmptyText
	}

	word, err := s.words.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWordNotFound
		}
		return nil, err
	}

	word.Text = strings.TrimSpace(text)
	word.Normalized = normalized
	if err := s.words.Update(ctx, word); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateWord
		}
		return nil, err
	}
	return word, nil
}
