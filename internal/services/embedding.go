package services

import (
	"context"
	"math"
)

// EmbeddingProvider turns texts into dense vectors. Implementations return
// exactly one vector per input, in input order.
type EmbeddingProvider interface {
	Name() string
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// EmbedText embeds a single text.
func EmbedText(ctx context.Context, provider EmbeddingProvider, text string) ([]float32, error) {
	vectors, err := provider.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, ErrNoEmbeddings
	}
	return vectors[0], nil
}

// CosineSimilarity returns 0 for mismatched or zero-length vectors.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func meanVector(vectors [][]float32) []float32 {
	if len(vectors) == 0 {
		return nil
	}

	mean := make([]float32, len(vectors[0]))
	for _, v := range vectors {
		for i := range mean {
			if i < len(v) {
				mean[i] += v[i]
			}
		}
	}
	for i := range mean {
		mean[i] /= float32(len(vectors))
	}
	return mean
}

func normalizeVector(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range v {
		v[i] /= norm
	}
}
