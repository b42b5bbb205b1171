package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestChunkText_ShortTextIsOneChunk(t *testing.T) {
	chunks := NewTextChunker().ChunkText("Experience\nSkills", 100, 0)
	assert.Equal(t, []string{"Experience\nSkills"}, chunks)
}

func TestChunkText_Empty(t *testing.T) {
	assert.Empty(t, NewTextChunker().ChunkText("", 100, 10))
	assert.Empty(t, NewTextChunker().ChunkText("\n  \n", 100, 10))
}

func TestChunkText_RespectsMaxSize(t *testing.T) {
	var lines []string
	for i := 0; i < 50; i++ {
		lines = append(lines, "Designed and delivered data pipelines for analytics teams")
	}
	lines = append(lines, strings.Repeat("Long sentence without a break ", 20)+". Another one follows here.")
	text := strings.Join(lines, "\n")

	for _, overlap := range []int{0, 20} {
		chunks := NewTextChunker().ChunkText(text, 200, overlap)

		assert.Greater(t, len(chunks), 1)
		for _, chunk := range chunks {
			assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 200)
			assert.NotEmpty(t, strings.TrimSpace(chunk))
		}
	}
}

func TestChunkText_Overlap(t *testing.T) {
	text := strings.Repeat("a", 60) + "\n" + strings.Repeat("b", 60)
	chunks := NewTextChunker().ChunkText(text, 80, 10)

	assert.Len(t, chunks, 2)
	assert.True(t, strings.HasPrefix(chunks[1], strings.Repeat("a", 10)+"\n"))
}

func TestSplitIntoSentences(t *testing.T) {
	assert.Equal(t, []string{"Led a team", "Built APIs", "Why"}, splitIntoSentences("Led a team. Built APIs! Why?"))
}

func TestSplitByRunes(t *testing.T) {
	assert.Equal(t, []string{"abc", "def", "g"}, splitByRunes("abcdefg", 3))
	assert.Equal(t, []string{"ab"}, splitByRunes("ab", 3))
}
