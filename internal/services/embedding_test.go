package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/mocks"
)

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 2, 3}, []float32{2, 4, 6}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{1, 0, 0}))
	assert.Equal(t, 0.0, CosineSimilarity([]float32{0, 0}, []float32{1, 0}))
	assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
}

func TestMeanVector(t *testing.T) {
	assert.Nil(t, meanVector(nil))
	assert.Equal(t, []float32{2, 3}, meanVector([][]float32{{1, 2}, {3, 4}}))
}

func TestHashingEmbedder(t *testing.T) {
	embedder := NewHashingEmbedder(128)
	ctx := context.Background()

	vectors, err := embedder.EmbedTexts(ctx, []string{"Go developer", "go DEVELOPER", "Registered nurse", ""})
	require.NoError(t, err)
	require.Len(t, vectors, 4)

	for _, v := range vectors {
		assert.Len(t, v, 128)
	}

	assert.Equal(t, vectors[0], vectors[1], "embedding is case-insensitive and deterministic")
	assert.InDelta(t, 1.0, CosineSimilarity(vectors[0], vectors[0]), 1e-6)
	assert.Less(t, CosineSimilarity(vectors[0], vectors[2]), 0.9)
	assert.Equal(t, make([]float32, 128), vectors[3])
	assert.Equal(t, "hashing:128", embedder.Name())
}

func TestHashingEmbedder_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHashingEmbedder(16).EmbedTexts(ctx, []string{"text"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEmbedText(t *testing.T) {
	provider := new(mocks.MockEmbeddingProvider)
	provider.On("EmbedTexts", mock.Anything, []string{"hello"}).Return([][]float32{{1, 2}}, nil).Once()
	provider.On("EmbedTexts", mock.Anything, []string{"empty"}).Return([][]float32{}, nil).Once()

	vec, err := EmbedText(context.Background(), provider, "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, vec)

	_, err = EmbedText(context.Background(), provider, "empty")
	assert.ErrorIs(t, err, ErrNoEmbeddings)

	provider.AssertExpectations(t)
}

func TestTruncateUTF8(t *testing.T) {
	assert.Equal(t, "short", truncateUTF8("short", 10))
	assert.Equal(t, "abc", truncateUTF8("abcdef", 3))
	// "é" is two bytes; cutting inside it backs off to the rune start
	assert.Equal(t, "a", truncateUTF8("aé", 2))
}

func TestCachedEmbedder_AllHitsSkipProvider(t *testing.T) {
	provider := new(mocks.MockEmbeddingProvider)
	cache := new(mocks.MockEmbeddingCache)
	texts := []string{"a", "b"}

	provider.On("Name").Return("test-model")
	cache.On("Lookup", mock.Anything, "test-model", texts).
		Return(map[int][]float32{0: {1}, 1: {2}}, nil)

	vectors, err := NewCachedEmbedder(provider, cache).EmbedTexts(context.Background(), texts)
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1}, {2}}, vectors)

	provider.AssertNotCalled(t, "EmbedTexts", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCachedEmbedder_PartialHitsEmbedOnlyMisses(t *testing.T) {
	provider := new(mocks.MockEmbeddingProvider)
	cache := new(mocks.MockEmbeddingCache)
	texts := []string{"a", "b", "c"}

	provider.On("Name").Return("test-model")
	cache.On("Lookup", mock.Anything, "test-model", texts).
		Return(map[int][]float32{1: {2}}, nil)
	provider.On("EmbedTexts", mock.Anything, []string{"a", "c"}).
		Return([][]float32{{1}, {3}}, nil)
	cache.On("Store", mock.Anything, "test-model", []string{"a", "c"}, [][]float32{{1}, {3}}).
		Return(nil)

	vectors, err := NewCachedEmbedder(provider, cache).EmbedTexts(context.Background(), texts)
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1}, {2}, {3}}, vectors)

	provider.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCachedEmbedder_CacheFailuresAreIgnored(t *testing.T) {
	provider := new(mocks.MockEmbeddingProvider)
	cache := new(mocks.MockEmbeddingCache)
	texts := []string{"a"}

	provider.On("Name").Return("test-model")
	cache.On("Lookup", mock.Anything, "test-model", texts).Return(nil, errors.New("qdrant down"))
	provider.On("EmbedTexts", mock.Anything, texts).Return([][]float32{{1}}, nil)
	cache.On("Store", mock.Anything, "test-model", texts, [][]float32{{1}}).Return(errors.New("qdrant down"))

	vectors, err := NewCachedEmbedder(provider, cache).EmbedTexts(context.Background(), texts)
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1}}, vectors)
}

func TestCachedEmbedder_ProviderErrorPropagates(t *testing.T) {
	provider := new(mocks.MockEmbeddingProvider)
	cache := new(mocks.MockEmbeddingCache)
	texts := []string{"a"}
	providerErr := errors.New("quota exceeded")

	provider.On("Name").Return("test-model")
	cache.On("Lookup", mock.Anything, "test-model", texts).Return(map[int][]float32{}, nil)
	provider.On("EmbedTexts", mock.Anything, texts).Return(nil, providerErr)

	_, err := NewCachedEmbedder(provider, cache).EmbedTexts(context.Background(), texts)
	assert.ErrorIs(t, err, providerErr)
}

func TestCachePointID(t *testing.T) {
	id := cachePointID("gemini:text-embedding-004", "python")

	assert.Equal(t, id, cachePointID("gemini:text-embedding-004", "python"))
	assert.NotEqual(t, id, cachePointID("hashing:768", "python"))
	assert.NotEqual(t, id, cachePointID("gemini:text-embedding-004", "golang"))
	assert.Len(t, id, 36)
	assert.Len(t, textDigest("python"), 64)
}
