package services

import (
	"context"
	"fmt"
	"log"

	"alfredoptarigan/resume-analyzer/internal/config"
)

// Models holds the process-wide providers. It is built once at startup and
// shared read-only between requests.
type Models struct {
	Embedder EmbeddingProvider
	Keywords *KeywordPolicy
	Chunker  TextChunker

	cache QdrantService
}

// LoadModels picks Gemini embeddings when an API key is configured and the
// local hashing embedder otherwise. A Qdrant cache is layered on top when
// QDRANT_URL is set; if Qdrant is unreachable the service runs without it.
func LoadModels(ctx context.Context, cfg *config.Config) (*Models, error) {
	var embedder EmbeddingProvider
	if cfg.GeminiEnabled() {
		gemini, err := NewGeminiEmbedder(ctx, cfg.Gemini.APIKey, cfg.Gemini.EmbedModel)
		if err != nil {
			return nil, fmt.Errorf("failed to load embedding model: %w", err)
		}
		embedder = gemini
	} else {
		log.Printf("ℹ️  GEMINI_API_KEY not set, using local hashing embeddings (%d dims)", cfg.Embedding.Dimensions)
		embedder = NewHashingEmbedder(cfg.Embedding.Dimensions)
	}

	var cache QdrantService
	if cfg.QdrantEnabled() {
		qdrantService, err := NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, cfg.Embedding.Dimensions)
		if err != nil {
			log.Printf("⚠️  Embedding cache disabled: %v", err)
		} else if err := qdrantService.InitCollection(ctx); err != nil {
			log.Printf("⚠️  Embedding cache disabled: %v", err)
			qdrantService.Close()
		} else {
			cache = qdrantService
			embedder = NewCachedEmbedder(embedder, cache)
		}
	}

	chunker := NewTextChunker()

	return &Models{
		Embedder: embedder,
		Keywords: NewKeywordPolicy(NewEmbeddingKeywordExtractor(embedder, chunker), NewNounChunker()),
		Chunker:  chunker,
		cache:    cache,
	}, nil
}

func (m *Models) Close() error {
	if m.cache != nil {
		return m.cache.Close()
	}
	return nil
}
