package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/tereohoa/api/internal/gemini"
	"github.com/tereohoa/api/internal/model"
	"github.com/tereohoa/api/internal/repository"
)

// In-memory fakes standing in for the gorm repositories and the AI gateway.

type fakeWordStore struct {
	words  map[int64]*model.Word
	nextID int64
}

func newFakeWordStore() *fakeWordStore {
	return &fakeWordStore{words: make(map[int64]*model.Word), nextID: 1}
}

func (f *fakeWordStore) Create(_ context.Context, word *model.Word) error {
	for _, w := range f.words {
		if w.Normalized == word.Normalized {
			return repository.ErrDuplicate
		}
	}
	word.ID = f.nextID
	f.nextID++
	copied := *word
	f.words[word.ID] = &copied
	return nil
}

func (f *fakeWordStore) GetByID(_ context.Context, id int64) (*model.Word, error) {
	w, ok := f.words[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *w
	return &copied, nil
}

func (f *fakeWordStore) GetByNormalized(_ context.Context, normalized string) (*model.Word, error) {
	for _, w := range f.words {
		if w.Normalized == normalized {
			copied := *w
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeWordStore) UpdateAudioURL(_ context.Context, id int64, audioURL string) error {
	w, ok := f.words[id]
	if !ok {
		return repository.ErrNotFound
	}
	w.AudioURL = audioURL
	return nil
}

func (f *fakeWordStore) Update(_ context.Context, word *model.Word) error {
	for _, w := range f.words {
		if w.ID != word.ID && w.Normalized == word.Normalized {
			return repository.ErrDuplicate
		}
	}
	if _, ok := f.words[word.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *word
	f.words[word.ID] = &copied
	return nil
}

func (f *fakeWordStore) List(_ context.Context, offset, limit int) ([]model.Word, error) {
	out := f.sorted()
	if offset >= len(out) {
		return []model.Word{}, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (f *fakeWordStore) Search(_ context.Context, searchBy, value string, offset, limit int) ([]model.Word, error) {
	var out []model.Word
	for _, w := range f.sorted() {
		switch searchBy {
		case "word":
			if strings.Contains(strings.ToLower(w.Text), strings.ToLower(value)) {
				out = append(out, w)
			}
		case "level":
			if w.Level == value {
				out = append(out, w)
			}
		}
	}
	return out, nil
}

func (f *fakeWordStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.words)), nil
}

func (f *fakeWordStore) Random(_ context.Context) (*model.Word, error) {
	for _, w := range f.sorted() {
		copied := w
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeWordStore) sorted() []model.Word {
	out := make([]model.Word, 0, len(f.words))
	for _, w := range f.words {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Text < out[j].Text })
	return out
}

type fakeProgressStore struct {
	rows    map[[2]int64]*model.UserWordProgress
	learned map[int64][]model.Word
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{
		rows:    make(map[[2]int64]*model.UserWordProgress),
		learned: make(map[int64][]model.Word),
	}
}

func (f *fakeProgressStore) Upsert(_ context.Context, userID, wordID int64, status string) (*model.UserWordProgress, error) {
	key := [2]int64{userID, wordID}
	row, ok := f.rows[key]
	if !ok {
		row = &model.UserWordProgress{UserID: userID, WordID: wordID}
		f.rows[key] = row
	}
	row.Status = status
	copied := *row
	return &copied, nil
}

func (f *fakeProgressStore) CountByStatus(_ context.Context, userID int64, status string) (int64, error) {
	var n int64
	for key, row := range f.rows {
		if key[0] == userID && row.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeProgressStore) Stats(_ context.Context, userID int64) (*model.ProgressStats, error) {
	stats := &model.ProgressStats{}
	for key, row := range f.rows {
		if key[0] != userID {
			continue
		}
		switch row.Status {
		case model.StatusLearned:
			stats.LearnedCount++
		case model.StatusReview:
			stats.ReviewCount++
		case model.StatusStarred:
			stats.StarredCount++
		case model.StatusUnlearned:
			stats.UnlearnedCount++
		}
	}
	return stats, nil
}

func (f *fakeProgressStore) LearnedWords(_ context.Context, userID int64) ([]model.Word, error) {
	return f.learned[userID], nil
}

type fakeTranslator struct {
	data gemini.WordData
	err  error
	// calls records which texts reached the gateway.
	calls []string
}

func (f *fakeTranslator) Translate(_ context.Context, text string) (gemini.WordData, error) {
	f.calls = append(f.calls, text)
	if f.err != nil {
		return gemini.WordData{}, f.err
	}
	return f.data, nil
}

type fakeAudio struct {
	err   error
	calls int
}

func (f *fakeAudio) GenerateWordAudio(_ context.Context, text string, wordID int64) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "/static/audio/" + text + ".mp3", nil
}

type fakeNewsStore struct {
	items     []model.NewsItem
	existsErr error
	createErr error
}

func (f *fakeNewsStore) ExistsBySourceURL(_ context.Context, sourceURL string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	for _, item := range f.items {
		if item.SourceURL == sourceURL {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNewsStore) Create(_ context.Context, item *model.NewsItem) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.items {
		if existing.SourceURL == item.SourceURL {
			return repository.ErrDuplicate
		}
	}
	item.ID = int64(len(f.items) + 1)
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeNewsStore) Latest(_ context.Context, limit int) ([]model.NewsItem, error) {
	if limit > len(f.items) {
		limit = len(f.items)
	}
	return f.items[:limit], nil
}

func (f *fakeNewsStore) List(_ context.Context, offset, limit int) ([]model.NewsItem, error) {
	return f.items, nil
}

func (f *fakeNewsStore) Delete(_ context.Context, id int64) error {
	for i, item := range f.items {
		if item.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeNewsFetcher struct {
	items []gemini.NewsItemData
	err   error
}

func (f *fakeNewsFetcher) PositiveNews(_ context.Context) ([]gemini.NewsItemData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

var errBoom = errors.New("boom")
