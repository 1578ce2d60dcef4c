package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tereohoa/api/internal/model"
)

func TestWordRepositoryCreateAndGet(t *testing.T) {
	repo := NewWordRepository(testDB(t))
	ctx := context.Background()

	word := &model.Word{Text: "Kai", Normalized: "kai", Translation: "food", Level: "beginner"}
	require.NoError(t, repo.Create(ctx, word))
	require.NotZero(t, word.ID)

	got, err := repo.GetByID(ctx, word.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kai", got.Text)

	got, err = repo.GetByNormalized(ctx, "kai")
	require.NoError(t, err)
	assert.Equal(t, word.ID, got.ID)
}

func TestWordRepositoryNotFound(t *testing.T) {
	repo := NewWordRepository(testDB(t))
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByNormalized(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Random(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWordRepositoryDuplicateNormalized(t *testing.T) {
	repo := NewWordRepository(testDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Word{Text: "Tree", Normalized: "tree"}))

	err := repo.Create(ctx, &model.Word{Text: "tree", Normalized: "tree"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestWordRepositoryListOrdered(t *testing.T) {
	repo := NewWordRepository(testDB(t))
	ctx := context.Background()

	for _, text := range []string{"zebra", "apple", "mango"} {
		require.NoError(t, repo.Create(ctx, &model.Word{Text: text, Normalized: text}))
	}

	words, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, words, 3)
	assert.Equal(t, "apple", words[0].Text)
	assert.Equal(t, "mango", words[1].Text)
	assert.Equal(t, "zebra", words[2].Text)

	words, err = repo.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "mango", words[0].Text)
}

func TestWordRepositorySearch(t *testing.T) {
	repo := NewWordRepository(testDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Word{Text: "Waterfall", Normalized: "waterfall", Level: "beginner"}))
	require.NoError(t, repo.Create(ctx, &model.Word{Text: "Fire", Normalized: "fire", Level: "intermediate"}))

	words, err := repo.Search(ctx, "word", "WATER", 0, 10)
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "Waterfall", words[0].Text)

	words, err = repo.Search(ctx, "level", "intermediate", 0, 10)
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "Fire", words[0].Text)

	// Unknown level and unknown search key both come back empty.
	words, err = repo.Search(ctx, "level", "advanced", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, words)

	words, err = repo.Search(ctx, "domain", "nature", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestWordRepositoryUpdateAudioURL(t *testing.T) {
	repo := NewWordRepository(testDB(t))
	ctx := context.Background()

	word := &model.Word{Text: "Bird", Normalized: "bird"}
	require.NoError(t, repo.Create(ctx, word))

	require.NoError(t, repo.UpdateAudioURL(ctx, word.ID, "/static/audio/1.mp3"))

	got, err := repo.GetByID(ctx, word.ID)
	require.NoError(t, err)
	assert.Equal(t, "/static/audio/1.mp3", got.AudioURL)
}

func TestWordRepositoryRandom(t *testing.T) {
	repo := NewWordRepository(testDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Word{Text: "Solo", Normalized: "solo"}))

	word, err := repo.Random(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Solo", word.Text)
}
