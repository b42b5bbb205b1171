package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"resume.pdf", "pdf"},
		{"Resume.PDF", "pdf"},
		{"cv.final.docx", "docx"},
		{"notes", ""},
		{"job.TXT", "txt"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, NewDocument(tt.filename, nil).Extension())
		})
	}
}

func TestSectionPresenceCount(t *testing.T) {
	presence := SectionPresence{"experience": true, "education": false, "skills": true}
	assert.Equal(t, 2, presence.Count())
	assert.Equal(t, 0, SectionPresence{}.Count())
}
