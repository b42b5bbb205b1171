package models

import (
	"path/filepath"
	"strings"
)

// Document is an uploaded file held in memory for the duration of one request.
type Document struct {
	Filename string
	Data     []byte
}

func NewDocument(filename string, data []byte) Document {
	return Document{Filename: filename, Data: data}
}

// Extension returns the lower-cased file extension without the leading dot.
func (d Document) Extension() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(d.Filename)), ".")
}
