package services

import (
	"context"
	"errors"
	"log"
)

// KeywordPolicy runs the primary keyphrase extractor and switches to noun
// chunks when, and only when, the primary returns an error.
type KeywordPolicy struct {
	primary  KeywordExtractor
	fallback PhraseSegmenter
}

func NewKeywordPolicy(primary KeywordExtractor, fallback PhraseSegmenter) *KeywordPolicy {
	return &KeywordPolicy{
		primary:  primary,
		fallback: fallback,
	}
}

// Keywords never fails. It returns at most topN phrases.
func (p *KeywordPolicy) Keywords(ctx context.Context, text string, topN int) []string {
	if topN <= 0 {
		topN = defaultKeywordTopN
	}

	keywords, err := p.primary.ExtractKeywords(ctx, text, topN)
	if err == nil {
		if len(keywords) > topN {
			keywords = keywords[:topN]
		}
		return keywords
	}

	var providerErr *ExtractionProviderError
	if errors.As(err, &providerErr) {
		log.Printf("⚠️  %v; falling back to noun chunks", providerErr)
	} else {
		log.Printf("⚠️  Keyword extractor %s failed: %v; falling back to noun chunks", p.primary.Name(), err)
	}

	return p.fallbackKeywords(text, topN)
}

func (p *KeywordPolicy) fallbackKeywords(text string, topN int) (keywords []string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Noun chunk fallback panicked: %v", r)
			keywords = []string{}
		}
	}()

	chunks := p.fallback.NounChunks(text)
	if len(chunks) > topN {
		chunks = chunks[:topN]
	}
	if chunks == nil {
		chunks = []string{}
	}
	return chunks
}
