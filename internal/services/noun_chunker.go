package services

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// PhraseSegmenter splits text into noun-phrase spans.
type PhraseSegmenter interface {
	NounChunks(text string) []string
}

var (
	// words may carry inner punctuation (node.js, ci/cd, c++, c#)
	chunkTokenPattern = regexp.MustCompile(`[\p{L}\p{N}](?:[\p{L}\p{N}+#&'./_-]*[\p{L}\p{N}+#])?|[^\s\p{L}\p{N}]`)

	determiners = toSet([]string{
		"a", "an", "the", "this", "that", "these", "those", "my", "our", "your",
		"their", "his", "her", "its", "some", "any", "each", "every", "all",
		"several", "many", "few", "both", "another", "no",
	})

	phraseBreakers = toSet([]string{
		// pronouns
		"i", "me", "we", "us", "you", "he", "she", "it", "they", "them", "him",
		"who", "whom", "which", "what", "whose", "myself", "ourselves", "itself",
		// prepositions
		"in", "on", "at", "for", "with", "by", "from", "to", "of", "into", "onto",
		"over", "under", "about", "across", "through", "during", "within",
		"without", "between", "among", "via", "per", "as", "than", "like",
		"after", "before", "since", "until", "upon", "toward", "towards",
		"against", "around", "behind", "beyond", "throughout",
		// conjunctions
		"and", "or", "but", "nor", "so", "yet", "if", "because", "while",
		"although", "though", "whereas", "when", "where", "then", "also",
		// auxiliaries and common verbs
		"is", "are", "was", "were", "be", "been", "being", "am", "have", "has",
		"had", "do", "does", "did", "will", "would", "shall", "should", "can",
		"could", "may", "might", "must", "led", "lead", "leads", "manage",
		"develop", "design", "build", "create", "work", "worked", "use", "used",
		"using", "seeking", "looking", "including", "responsible",
		// adverbs
		"not", "very", "just", "only", "well", "too", "really", "more", "most",
	})

	// tokens after which a new clause starts
	clauseBoundaries = toSet([]string{".", "!", "?", ";", ":", "•", "-", "–", "—", "*", "|"})
)

type nounChunker struct{}

// NewNounChunker returns a rule-based segmenter. A phrase is a maximal run of
// content words, optionally led by a determiner. Verbs, pronouns,
// prepositions, conjunctions and punctuation end a phrase.
func NewNounChunker() PhraseSegmenter {
	return &nounChunker{}
}

// NounChunks returns phrases in document order, deduplicated
// case-insensitively.
func (n *nounChunker) NounChunks(text string) []string {
	chunks := []string{}
	seen := make(map[string]struct{})

	emit := func(words []string, hasContent bool) {
		if !hasContent {
			return
		}
		phrase := strings.Join(words, " ")
		key := normalizeKeyword(phrase)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		chunks = append(chunks, phrase)
	}

	for _, line := range strings.Split(text, "\n") {
		var (
			words      []string
			hasContent bool
		)
		flush := func() {
			emit(words, hasContent)
			words = nil
			hasContent = false
		}

		clauseStart := true
		for _, token := range chunkTokenPattern.FindAllString(line, -1) {
			lower := strings.ToLower(token)

			switch {
			case !isWordToken(token):
				flush()
				_, boundary := clauseBoundaries[token]
				clauseStart = clauseStart || boundary
				continue
			case isDeterminer(lower):
				flush()
				words = append(words, token)
			case isVerbLike(lower, clauseStart) || isBreaker(lower):
				flush()
			default:
				words = append(words, token)
				hasContent = true
			}
			clauseStart = false
		}
		flush()
	}

	return chunks
}

func isWordToken(token string) bool {
	r, _ := utf8.DecodeRuneInString(token)
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDeterminer(lower string) bool {
	_, ok := determiners[lower]
	return ok
}

func isBreaker(lower string) bool {
	_, ok := phraseBreakers[lower]
	return ok
}

// isVerbLike reports action verbs anywhere, and -ed/-ing forms that open a
// clause, as in resume bullets.
func isVerbLike(lower string, clauseStart bool) bool {
	if _, ok := actionVerbSet[lower]; ok {
		return true
	}
	if !clauseStart || len(lower) < 5 {
		return false
	}
	return strings.HasSuffix(lower, "ed") || strings.HasSuffix(lower, "ing")
}
