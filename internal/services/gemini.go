package services

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"
)

const (
	// ~10000 tokens, the embedding model's input limit
	maxEmbedInputBytes = 40000
	maxEmbedBatchSize  = 100
)

type geminiEmbedder struct {
	client     *genai.Client
	embedModel string
}

func NewGeminiEmbedder(ctx context.Context, apiKey, embedModel string) (EmbeddingProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	log.Printf("🔑 Gemini embeddings enabled (model: %s)", embedModel)

	return &geminiEmbedder{
		client:     client,
		embedModel: embedModel,
	}, nil
}

func (g *geminiEmbedder) Name() string {
	return "gemini:" + g.embedModel
}

// EmbedTexts implements EmbeddingProvider. Inputs are sent in batches of at
// most maxEmbedBatchSize.
func (g *geminiEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += maxEmbedBatchSize {
		end := min(start+maxEmbedBatchSize, len(texts))

		contents := make([]*genai.Content, 0, end-start)
		for _, text := range texts[start:end] {
			contents = append(contents, genai.Text(truncateUTF8(text, maxEmbedInputBytes))...)
		}

		result, err := g.client.Models.EmbedContent(ctx, g.embedModel, contents, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to generate embedding: %w", err)
		}

		if result == nil || len(result.Embeddings) != end-start {
			return nil, ErrNoEmbeddings
		}

		for _, embedding := range result.Embeddings {
			if embedding == nil || len(embedding.Values) == 0 {
				return nil, ErrNoEmbeddings
			}
			vectors = append(vectors, embedding.Values)
		}
	}

	return vectors, nil
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !isRuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
