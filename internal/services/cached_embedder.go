package services

import (
	"context"
	"log"
)

type cachedEmbedder struct {
	provider EmbeddingProvider
	cache    EmbeddingCache
}

// NewCachedEmbedder wraps provider with a read-through cache. Cache failures
// are logged and never fail an embedding call.
func NewCachedEmbedder(provider EmbeddingProvider, cache EmbeddingCache) EmbeddingProvider {
	return &cachedEmbedder{
		provider: provider,
		cache:    cache,
	}
}

func (c *cachedEmbedder) Name() string {
	return c.provider.Name()
}

func (c *cachedEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	model := c.provider.Name()

	hits, err := c.cache.Lookup(ctx, model, texts)
	if err != nil {
		log.Printf("⚠️  Embedding cache lookup failed: %v", err)
		hits = nil
	}

	vectors := make([][]float32, len(texts))
	var missing []int
	for i := range texts {
		if vec, ok := hits[i]; ok {
			vectors[i] = vec
			continue
		}
		missing = append(missing, i)
	}

	if len(missing) == 0 {
		return vectors, nil
	}

	missingTexts := make([]string, len(missing))
	for j, i := range missing {
		missingTexts[j] = texts[i]
	}

	fresh, err := c.provider.EmbedTexts(ctx, missingTexts)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(missing) {
		return nil, ErrNoEmbeddings
	}

	for j, i := range missing {
		vectors[i] = fresh[j]
	}

	if err := c.cache.Store(ctx, model, missingTexts, fresh); err != nil {
		log.Printf("⚠️  Embedding cache store failed: %v", err)
	}

	return vectors, nil
}
