package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
)

type hashingEmbedder struct {
	dims int
}

// NewHashingEmbedder returns a local embedder built on signed feature hashing
// of word tokens and character trigrams. It needs no network access and is
// deterministic, so equal texts always map to equal vectors.
func NewHashingEmbedder(dims int) EmbeddingProvider {
	if dims <= 0 {
		dims = 768
	}
	return &hashingEmbedder{dims: dims}
}

func (h *hashingEmbedder) Name() string {
	return fmt.Sprintf("hashing:%d", h.dims)
}

func (h *hashingEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vectors[i] = h.embed(text)
	}
	return vectors, nil
}

func (h *hashingEmbedder) embed(text string) []float32 {
	vec := make([]float32, h.dims)

	for _, token := range tokenize(text) {
		h.addFeature(vec, "w:"+token, 1)

		runes := []rune("<" + token + ">")
		for i := 0; i+3 <= len(runes); i++ {
			h.addFeature(vec, "c:"+string(runes[i:i+3]), 0.5)
		}
	}

	normalizeVector(vec)
	return vec
}

func (h *hashingEmbedder) addFeature(vec []float32, feature string, weight float32) {
	hasher := fnv.New64a()
	hasher.Write([]byte(feature))
	sum := hasher.Sum64()

	if sum>>63 == 1 {
		weight = -weight
	}
	vec[sum%uint64(len(vec))] += weight
}

// tokenize lowercases text and returns runs of two or more letters, digits or
// underscores.
func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}
