package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tereohoa/api/internal/gemini"
	"github.com/tereohoa/api/internal/model"
	"github.com/tereohoa/api/internal/repository"
	"go.uber.org/zap"
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "kia ora", Normalize("  Kia Ora  "))
	assert.Equal(t, "", Normalize("   "))
	assert.Equal(t, Normalize("Hello"), Normalize(Normalize("Hello")))
}

func TestAddWord(t *testing.T) {
	store := newFakeWordStore()
	ai := &fakeTranslator{data: gemini.WordData{Translation: "kai", Level: "intermediate", Example: "He kai pai."}}
	audio := &fakeAudio{}
	svc := NewWordService(store, ai, audio, nil, testLogger())

	result, err := svc.AddWord(context.Background(), "  Food ")
	require.NoError(t, err)

	word := result.Word
	assert.Equal(t, "Food", word.Text)
	assert.Equal(t, "food", word.Normalized)
	assert.Equal(t, "kai", word.Translation)
	assert.Equal(t, "intermediate", word.Level)
	assert.NotZero(t, word.ID)
	assert.NotEmpty(t, word.AudioURL)
	assert.Nil(t, result.AudioErr)
}

func TestAddWordEmptyText(t *testing.T) {
	svc := NewWordService(newFakeWordStore(), &fakeTranslator{}, nil, nil, testLogger())

	_, err := svc.AddWord(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestAddWordDuplicateSkipsGateway(t *testing.T) {
	store := newFakeWordStore()
	ai := &fakeTranslator{data: gemini.WordData{Translation: "kai"}}
	svc := NewWordService(store, ai, nil, nil, testLogger())

	_, err := svc.AddWord(context.Background(), "food")
	require.NoError(t, err)

	// Dedup is case and whitespace insensitive, and the pre-check means the
	// duplicate never reaches the gateway.
	_, err = svc.AddWord(context.Background(), "  FOOD ")
	assert.ErrorIs(t, err, ErrDuplicateWord)
	assert.Len(t, ai.calls, 1)
}

func TestAddWordSanitizesLevel(t *testing.T) {
	store := newFakeWordStore()
	ai := &fakeTranslator{data: gemini.WordData{Translation: "kai", Level: "expert"}}
	svc := NewWordService(store, ai, nil, nil, testLogger())

	result, err := svc.AddWord(context.Background(), "food")
	require.NoError(t, err)
	assert.Equal(t, "beginner", result.Word.Level)
}

func TestAddWordAudioFailureIsNotFatal(t *testing.T) {
	store := newFakeWordStore()
	ai := &fakeTranslator{data: gemini.WordData{Translation: "kai"}}
	audio := &fakeAudio{err: errBoom}
	svc := NewWordService(store, ai, audio, nil, testLogger())

	result, err := svc.AddWord(context.Background(), "food")
	require.NoError(t, err)
	assert.ErrorIs(t, result.AudioErr, errBoom)
	assert.Empty(t, result.Word.AudioURL)

	// The word row exists despite the audio failure.
	saved, err := store.GetByNormalized(context.Background(), "food")
	require.NoError(t, err)
	assert.Equal(t, "kai", saved.Translation)
}

func TestAddWordGatewayFailure(t *testing.T) {
	store := newFakeWordStore()
	ai := &fakeTranslator{err: gemini.ErrUpstream}
	svc := NewWordService(store, ai, nil, nil, testLogger())

	_, err := svc.AddWord(context.Background(), "food")
	assert.ErrorIs(t, err, gemini.ErrUpstream)

	n, _ := store.Count(context.Background())
	assert.Zero(t, n)
}

func TestBatchAddWords(t *testing.T) {
	store := newFakeWordStore()
	ai := &fakeTranslator{data: gemini.WordData{Translation: "kupu"}}
	svc := NewWordService(store, ai, nil, nil, testLogger())

	_, err := svc.AddWord(context.Background(), "existing")
	require.NoError(t, err)

	result, err := svc.BatchAddWords(context.Background(), []string{"one", "existing", "two", "  "})
	require.NoError(t, err)

	assert.Len(t, result.Added, 2)
	assert.ElementsMatch(t, []string{"existing", "  "}, result.Skipped)
}

func TestBatchAddWordsRepeatedExistingWord(t *testing.T) {
	store := newFakeWordStore()
	ai := &fakeTranslator{data: gemini.WordData{Translation: "kupu"}}
	svc := NewWordService(store, ai, nil, nil, testLogger())

	_, err := svc.AddWord(context.Background(), "a")
	require.NoError(t, err)

	result, err := svc.BatchAddWords(context.Background(), []string{"a", "a", "b"})
	require.NoError(t, err)

	require.Len(t, result.Added, 1)
	assert.Equal(t, "b", result.Added[0].Text)
	assert.Equal(t, []string{"a", "a"}, result.Skipped)
}

func TestBatchAddWordsWithinBatchDedup(t *testing.T) {
	store := newFakeWordStore()
	ai := &fakeTranslator{data: gemini.WordData{Translation: "kupu"}}
	svc := NewWordService(store, ai, nil, nil, testLogger())

	result, err := svc.BatchAddWords(context.Background(), []string{"tree", "Tree", " TREE "})
	require.NoError(t, err)

	assert.Len(t, result.Added, 1)
	assert.Equal(t, []string{"Tree", " TREE "}, result.Skipped)
	// Only the first occurrence reached the gateway.
	assert.Len(t, ai.calls, 1)
}

func TestBatchAddWordsTooLarge(t *testing.T) {
	svc := NewWordService(newFakeWordStore(), &fakeTranslator{}, nil, nil, testLogger())

	texts := make([]string, MaxBatchSize+1)
	for i := range texts {
		texts[i] = "word"
	}
	_, err := svc.BatchAddWords(context.Background(), texts)
	assert.ErrorIs(t, err, ErrBatchTooLarge)
}

func TestBatchAddWordsContinuesPastFailures(t *testing.T) {
	store := newFakeWordStore()
	ai := &fakeTranslator{err: gemini.ErrUpstreamTimeout}
	svc := NewWordService(store, ai, nil, nil, testLogger())

	result, err := svc.BatchAddWords(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Empty(t, result.Added)
	assert.Equal(t, []string{"a", "b"}, result.Skipped)
}

func TestGenerateAudio(t *testing.T) {
	store := newFakeWordStore()
	ai := &fakeTranslator{data: gemini.WordData{Translation: "rakau"}}
	svc := NewWordService(store, ai, &fakeAudio{}, nil, testLogger())

	added, err := svc.AddWord(context.Background(), "tree")
	require.NoError(t, err)

	word, err := svc.GenerateAudio(context.Background(), added.Word.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, word.AudioURL)
}

func TestGenerateAudioMissingWord(t *testing.T) {
	svc := NewWordService(newFakeWordStore(), &fakeTranslator{}, &fakeAudio{}, nil, testLogger())

	_, err := svc.GenerateAudio(context.Background(), 999)
	assert.ErrorIs(t, err, ErrWordNotFound)
}

func TestGenerateAudioNoTranslation(t *testing.T) {
	store := newFakeWordStore()
	ai := &fakeTranslator{data: gemini.WordData{}}
	svc := NewWordService(store, ai, &fakeAudio{}, nil, testLogger())

	added, err := svc.AddWord(context.Background(), "mystery")
	require.NoError(t, err)

	_, err = svc.GenerateAudio(context.Background(), added.Word.ID)
	assert.ErrorIs(t, err, ErrNoTranslation)
}

func TestWordOfTheDayEmptyDictionary(t *testing.T) {
	svc := NewWordService(newFakeWordStore(), &fakeTranslator{}, nil, nil, testLogger())

	_, err := svc.WordOfTheDay(context.Background())
	assert.ErrorIs(t, err, ErrNoWords)
}

// cyclingWordStore draws a different word on every Random call, the way
// ORDER BY RANDOM() would across requests.
type cyclingWordStore struct {
	*fakeWordStore
	draws int
}

func (f *cyclingWordStore) Random(_ context.Context) (*model.Word, error) {
	words := f.sorted()
	if len(words) == 0 {
		return nil, repository.ErrNotFound
	}
	w := words[f.draws%len(words)]
	f.draws++
	return &w, nil
}

func seedCyclingStore(t *testing.T, texts ...string) *cyclingWordStore {
	t.Helper()
	store := &cyclingWordStore{fakeWordStore: newFakeWordStore()}
	for _, text := range texts {
		err := store.Create(context.Background(), &model.Word{Text: text, Normalized: Normalize(text), Translation: "kupu"})
		require.NoError(t, err)
	}
	return store
}

func TestWordOfTheDayStableWithoutCache(t *testing.T) {
	store := seedCyclingStore(t, "alpha", "bravo", "charlie")
	svc := NewWordService(store, &fakeTranslator{}, nil, nil, testLogger())
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }

	first, err := svc.WordOfTheDay(context.Background())
	require.NoError(t, err)

	second, err := svc.WordOfTheDay(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, store.draws)
}

func TestWordOfTheDayRollsOverAtMidnight(t *testing.T) {
	store := seedCyclingStore(t, "alpha", "bravo", "charlie")
	svc := NewWordService(store, &fakeTranslator{}, nil, nil, testLogger())

	day := time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day }

	first, err := svc.WordOfTheDay(context.Background())
	require.NoError(t, err)

	day = day.Add(2 * time.Hour)
	second, err := svc.WordOfTheDay(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, store.draws)
}

func TestUpdateTextDuplicate(t *testing.T) {
	store := newFakeWordStore()
	ai := &fakeTranslator{data: gemini.WordData{Translation: "kupu"}}
	svc := NewWordService(store, ai, nil, nil, testLogger())

	first, err := svc.AddWord(context.Background(), "alpha")
	require.NoError(t, err)
	_, err = svc.AddWord(context.Background(), "beta")
	require.NoError(t, err)

	_, err = svc.UpdateText(context.Background(), first.Word.ID, "Beta")
	assert.ErrorIs(t, err, ErrDuplicateWord)
}
