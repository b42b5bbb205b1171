package services

import (
	"strings"
	"unicode/utf8"
)

type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText packs lines of normalized text into chunks of at most maxChunkSize
// runes. Lines that do not fit are split into sentences, and sentences that
// still do not fit are cut hard. Each new chunk starts with the last overlap
// runes of the previous one.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen == 0 {
			return
		}
		chunks = append(chunks, current.String())
		current.Reset()
		currentLen = 0

		if tail := getLastNChars(chunks[len(chunks)-1], overlap); tail != "" {
			current.WriteString(tail)
			currentLen = utf8.RuneCountInString(tail)
		}
	}

	appendPiece := func(piece string, sep string) {
		pieceLen := utf8.RuneCountInString(piece)
		if currentLen > 0 && currentLen+len(sep)+pieceLen > maxChunkSize {
			flush()
			if currentLen+len(sep)+pieceLen > maxChunkSize {
				current.Reset()
				currentLen = 0
			}
		}
		if currentLen > 0 {
			current.WriteString(sep)
			currentLen += len(sep)
		}
		current.WriteString(piece)
		currentLen += pieceLen
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if utf8.RuneCountInString(line) <= maxChunkSize {
			appendPiece(line, "\n")
			continue
		}

		// Line too long: fall back to sentences, then to fixed windows.
		for _, sentence := range splitIntoSentences(line) {
			for _, piece := range splitByRunes(sentence, maxChunkSize-overlap-1) {
				appendPiece(piece, " ")
			}
		}
	}

	if currentLen > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

func splitIntoSentences(text string) []string {
	// Simple sentence splitter
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var result []string
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s != "" {
			result = append(result, s)
		}
	}
	return result
}

func splitByRunes(text string, size int) []string {
	if size <= 0 {
		size = 1
	}

	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}

	var parts []string
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		parts = append(parts, string(runes[start:end]))
	}
	return parts
}

func getLastNChars(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[len(runes)-n:])
}
