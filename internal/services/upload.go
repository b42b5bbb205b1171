package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"alfredoptarigan/resume-analyzer/internal/models"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

// AllowedExtensions lists the upload formats the analyzer accepts.
var AllowedExtensions = []string{"pdf", "doc", "docx", "txt"}

type UploadService interface {
	ReadUpload(file *multipart.FileHeader) (models.Document, error)
	ReadFile(path string) (models.Document, error)
	ValidateFilename(filename string) error
}

type uploadService struct {
	maxFileSize int64
}

func NewUploadService(maxFileSize int64) UploadService {
	return &uploadService{
		maxFileSize: maxFileSize,
	}
}

func (s *uploadService) ValidateFilename(filename string) error {
	ext := models.Document{Filename: filename}.Extension()
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFileType, filename)
}

// ReadUpload validates an uploaded file and reads it into memory. Uploads are
// never written to disk.
func (s *uploadService) ReadUpload(file *multipart.FileHeader) (models.Document, error) {
	if err := s.ValidateFilename(file.Filename); err != nil {
		return models.Document{}, err
	}

	if file.Size > s.maxFileSize {
		return models.Document{}, fmt.Errorf("%w: %s exceeds %d bytes", ErrFileTooLarge, file.Filename, s.maxFileSize)
	}

	src, err := file.Open()
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := s.readLimited(src, file.Filename)
	if err != nil {
		return models.Document{}, err
	}

	return models.NewDocument(file.Filename, data), nil
}

// ReadFile applies the upload rules to a file on disk.
func (s *uploadService) ReadFile(path string) (models.Document, error) {
	filename := filepath.Base(path)
	if err := s.ValidateFilename(filename); err != nil {
		return models.Document{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.Size() > s.maxFileSize {
		return models.Document{}, fmt.Errorf("%w: %s exceeds %d bytes", ErrFileTooLarge, filename, s.maxFileSize)
	}

	data, err := s.readLimited(f, filename)
	if err != nil {
		return models.Document{}, err
	}

	return models.NewDocument(filename, data), nil
}

// readLimited reads one byte past the limit so an understated size is caught.
func (s *uploadService) readLimited(r io.Reader, filename string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if int64(len(data)) > s.maxFileSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrFileTooLarge, filename, s.maxFileSize)
	}
	return data, nil
}
