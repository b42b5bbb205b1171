package services

import (
	"context"
	"errors"
	"sort"
	"strings"
)

const (
	defaultKeywordTopN = 10
	// documents longer than this are embedded chunk by chunk
	keywordChunkSize = 2000
)

type KeywordExtractor interface {
	Name() string
	ExtractKeywords(ctx context.Context, text string, topN int) ([]string, error)
}

type embeddingKeywordExtractor struct {
	embedder EmbeddingProvider
	chunker  TextChunker
}

// NewEmbeddingKeywordExtractor ranks 1-2 word candidate phrases by the cosine
// similarity of their embedding to the embedding of the whole document.
func NewEmbeddingKeywordExtractor(embedder EmbeddingProvider, chunker TextChunker) KeywordExtractor {
	return &embeddingKeywordExtractor{
		embedder: embedder,
		chunker:  chunker,
	}
}

func (e *embeddingKeywordExtractor) Name() string {
	return "embedding:" + e.embedder.Name()
}

// ExtractKeywords implements KeywordExtractor. Every provider failure is
// returned as an *ExtractionProviderError.
func (e *embeddingKeywordExtractor) ExtractKeywords(ctx context.Context, text string, topN int) ([]string, error) {
	if topN <= 0 {
		topN = defaultKeywordTopN
	}

	candidates := candidatePhrases(text)
	if len(candidates) == 0 {
		return []string{}, nil
	}

	chunks := e.chunker.ChunkText(text, keywordChunkSize, 0)
	if len(chunks) == 0 {
		chunks = []string{text}
	}

	inputs := make([]string, 0, len(chunks)+len(candidates))
	inputs = append(inputs, chunks...)
	inputs = append(inputs, candidates...)

	vectors, err := e.embedder.EmbedTexts(ctx, inputs)
	if err != nil {
		return nil, &ExtractionProviderError{Provider: e.Name(), Cause: err}
	}
	if len(vectors) != len(inputs) {
		return nil, &ExtractionProviderError{Provider: e.Name(), Cause: ErrNoEmbeddings}
	}

	docVector := meanVector(vectors[:len(chunks)])
	if docVector == nil {
		return nil, &ExtractionProviderError{Provider: e.Name(), Cause: errors.New("empty document embedding")}
	}

	type scoredPhrase struct {
		phrase string
		score  float64
	}

	scored := make([]scoredPhrase, len(candidates))
	for i, candidate := range candidates {
		scored[i] = scoredPhrase{
			phrase: candidate,
			score:  CosineSimilarity(docVector, vectors[len(chunks)+i]),
		}
	}

	// candidates are sorted, so ties keep alphabetical order
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	n := min(topN, len(scored))
	keywords := make([]string, n)
	for i := 0; i < n; i++ {
		keywords[i] = scored[i].phrase
	}

	return keywords, nil
}

// candidatePhrases returns the sorted, unique unigrams and bigrams of text.
// Stop words are removed before bigrams are formed.
func candidatePhrases(text string) []string {
	var tokens []string
	for _, token := range tokenize(text) {
		if _, stop := englishStopWords[token]; stop {
			continue
		}
		tokens = append(tokens, token)
	}

	seen := make(map[string]struct{}, len(tokens)*2)
	for i, token := range tokens {
		seen[token] = struct{}{}
		if i+1 < len(tokens) {
			seen[token+" "+tokens[i+1]] = struct{}{}
		}
	}

	phrases := make([]string, 0, len(seen))
	for phrase := range seen {
		phrases = append(phrases, phrase)
	}
	sort.Strings(phrases)

	return phrases
}

// normalizeKeyword lowercases and collapses inner whitespace.
func normalizeKeyword(keyword string) string {
	return strings.Join(strings.Fields(strings.ToLower(keyword)), " ")
}
