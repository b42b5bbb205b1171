package services

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename string, data []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["file"][0]
}

func TestValidateFilename(t *testing.T) {
	uploads := NewUploadService(1024)

	for _, name := range []string{"cv.pdf", "CV.PDF", "cv.doc", "cv.docx", "notes.txt"} {
		assert.NoError(t, uploads.ValidateFilename(name), name)
	}
	for _, name := range []string{"cv.exe", "cv", "cv.pdf.zip", "archive.tar.gz"} {
		assert.ErrorIs(t, uploads.ValidateFilename(name), ErrUnsupportedFileType, name)
	}
}

func TestReadUpload(t *testing.T) {
	uploads := NewUploadService(16)

	doc, err := uploads.ReadUpload(fileHeader(t, "cv.txt", []byte("Experience")))
	require.NoError(t, err)
	assert.Equal(t, "cv.txt", doc.Filename)
	assert.Equal(t, []byte("Experience"), doc.Data)

	_, err = uploads.ReadUpload(fileHeader(t, "cv.txt", bytes.Repeat([]byte("a"), 17)))
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = uploads.ReadUpload(fileHeader(t, "cv.png", []byte("img")))
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	uploads := NewUploadService(16)

	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, data, 0o600))
		return path
	}

	doc, err := uploads.ReadFile(write("resume.txt", []byte("Skills: Go")))
	require.NoError(t, err)
	assert.Equal(t, "resume.txt", doc.Filename)
	assert.Equal(t, []byte("Skills: Go"), doc.Data)

	_, err = uploads.ReadFile(write("large.txt", bytes.Repeat([]byte("a"), 17)))
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = uploads.ReadFile(write("resume.exe", []byte("MZ")))
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	_, err = uploads.ReadFile(filepath.Join(dir, "missing.pdf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
